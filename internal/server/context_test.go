package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boardtools/miro-mcp/internal/miro"
)

func newTestMiroClient(t *testing.T) *miro.Client {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(ts.Close)

	client, err := miro.NewClient(miro.Config{
		AccessToken: "test-token",
		BaseURL:     ts.URL,
	})
	if err != nil {
		t.Fatalf("failed to create miro client: %v", err)
	}
	return client
}

func TestNewServerContext(t *testing.T) {
	client := newTestMiroClient(t)

	sc, err := NewServerContext(context.Background(), client)
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.Client() != client {
		t.Error("expected context to hold the provided client")
	}
	if sc.IsShutdown() {
		t.Error("new context should not be shutdown")
	}
	if sc.Context() == nil {
		t.Error("expected non-nil context")
	}
}

func TestNewServerContext_RequiresClient(t *testing.T) {
	_, err := NewServerContext(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), newTestMiroClient(t))
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("expected context to be shutdown")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("expected context to be cancelled after shutdown")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}
