package instrumentation

import "testing"

func TestBatchSizeBucket(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{-1, "0"},
		{0, "0"},
		{1, "1"},
		{2, "2-5"},
		{5, "2-5"},
		{6, "6-20"},
		{20, "6-20"},
		{21, ">20"},
		{100, ">20"},
	}

	for _, tt := range tests {
		if got := BatchSizeBucket(tt.n); got != tt.expected {
			t.Errorf("BatchSizeBucket(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}

func TestStatusCodeClass(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{404, "4xx"},
		{500, "5xx"},
		{99, "unknown"},
		{600, "unknown"},
	}

	for _, tt := range tests {
		if got := StatusCodeClass(tt.code); got != tt.expected {
			t.Errorf("StatusCodeClass(%d) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}
