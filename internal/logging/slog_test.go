package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestErrWithNilError(t *testing.T) {
	attr := Err(nil)
	if attr.Value.Kind() != slog.KindGroup {
		t.Errorf("Expected empty group for nil error, got %v", attr.Value.Kind())
	}
	if len(attr.Value.Group()) != 0 {
		t.Errorf("Expected empty group contents for nil error")
	}
}

func TestErrWithError(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError {
		t.Errorf("Expected key %q, got %q", KeyError, attr.Key)
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Expected value 'boom', got %q", attr.Value.String())
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"empty token", "", "<empty>"},
		{"short token", "abc", "[token:3 chars]"},
		{"long token", "eyJhbGciOiJIUzI1NiJ9.payload.sig", "[token:32 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToken(tt.token); got != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.expected)
			}
		})
	}
}

func TestAttributeHelpers(t *testing.T) {
	if Board("b1").Key != KeyBoard {
		t.Errorf("Board attribute has wrong key")
	}
	if Item("i1").Key != KeyItem {
		t.Errorf("Item attribute has wrong key")
	}
	if Tool("miro_create_items").Key != KeyTool {
		t.Errorf("Tool attribute has wrong key")
	}
	if Status(StatusSuccess).Value.String() != "success" {
		t.Errorf("Status attribute has wrong value")
	}
}
