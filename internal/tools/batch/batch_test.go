package batch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(s string) string { return s }

func TestProcessAllSucceed(t *testing.T) {
	items := []string{"a", "b", "c"}

	calls := 0
	outcomes, err := Process(items, identity, func(s string) (string, error) {
		calls++
		return "created " + s, nil
	})
	require.NoError(t, err)

	// Output length and order match the input exactly.
	require.Len(t, outcomes, len(items))
	assert.Equal(t, len(items), calls)
	for i, o := range outcomes {
		assert.Equal(t, items[i], o.Key)
		assert.Equal(t, "success", o.Status)
		assert.Equal(t, "created "+items[i], o.Result)
	}
}

func TestProcessRejectsOversizedBatch(t *testing.T) {
	items := make([]string, MaxBatchSize+1)
	for i := range items {
		items[i] = fmt.Sprintf("item-%d", i)
	}

	calls := 0
	outcomes, err := Process(items, identity, func(s string) (string, error) {
		calls++
		return "", nil
	})

	// Fails fast with the fixed size error before any call is issued.
	require.Error(t, err)
	assert.True(t, IsTooLarge(err))
	assert.Nil(t, outcomes)
	assert.Zero(t, calls)
}

func TestProcessAcceptsExactlyMaxBatchSize(t *testing.T) {
	items := make([]string, MaxBatchSize)
	for i := range items {
		items[i] = fmt.Sprintf("item-%d", i)
	}

	outcomes, err := Process(items, identity, func(s string) (string, error) {
		return s, nil
	})
	require.NoError(t, err)
	assert.Len(t, outcomes, MaxBatchSize)
}

func TestProcessEmptyInput(t *testing.T) {
	calls := 0
	outcomes, err := Process(nil, identity, func(s string) (string, error) {
		calls++
		return "", nil
	})
	require.NoError(t, err)
	assert.Empty(t, outcomes)
	assert.Zero(t, calls)
}

func TestProcessIsolatesFailures(t *testing.T) {
	items := []string{"A", "B", "C"}

	outcomes, err := Process(items, identity, func(s string) (string, error) {
		if s == "B" {
			return "", fmt.Errorf("remote rejected %s", s)
		}
		return "ok " + s, nil
	})
	require.NoError(t, err)

	// One outcome per element in input order; the failure is recorded,
	// not dropped, and the successes preserve their relative order.
	require.Len(t, outcomes, 3)
	assert.Equal(t, "success", outcomes[0].Status)
	assert.Equal(t, "A", outcomes[0].Key)
	assert.Equal(t, "error", outcomes[1].Status)
	assert.Equal(t, "B", outcomes[1].Key)
	assert.Contains(t, outcomes[1].Error, "remote rejected B")
	assert.Equal(t, "success", outcomes[2].Status)
	assert.Equal(t, "C", outcomes[2].Key)

	summary := Summarize(outcomes)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestProcessContinuesAfterFailure(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	var seen []string
	_, err := Process(items, identity, func(s string) (string, error) {
		seen = append(seen, s)
		return "", fmt.Errorf("always fails")
	})
	require.NoError(t, err)

	// Every element is attempted even when all of them fail.
	assert.Equal(t, items, seen)
}

func TestProcessIDs(t *testing.T) {
	outcomes, err := ProcessIDs([]string{"i1", "i2"}, func(id string) (string, error) {
		return "deleted " + id, nil
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "i1", outcomes[0].Key)
}

func TestFormatOutcomes(t *testing.T) {
	outcomes := []Outcome{
		{Key: "a", Status: "success", Result: "ok"},
		{Key: "b", Status: "error", Error: "boom"},
	}

	formatted := FormatOutcomes(outcomes)
	assert.Contains(t, formatted, `"total": 2`)
	assert.Contains(t, formatted, `"succeeded": 1`)
	assert.Contains(t, formatted, `"failed": 1`)
	assert.Contains(t, formatted, `"boom"`)
}

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected []string
		wantErr  bool
	}{
		{"nil", nil, nil, true},
		{"single string", "id-1", []string{"id-1"}, false},
		{"empty string", "", nil, true},
		{"array", []interface{}{"id-1", "id-2"}, []string{"id-1", "id-2"}, false},
		{"json-encoded array", `["id-1", "id-2"]`, []string{"id-1", "id-2"}, false},
		{"malformed json array", `["id-1"`, nil, true},
		{"array with non-string", []interface{}{"id-1", 7}, nil, true},
		{"array with empty string", []interface{}{""}, nil, true},
		{"wrong type", 42, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseStringOrArray(tt.input, "ids")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseObjectArray(t *testing.T) {
	input := []interface{}{
		map[string]interface{}{"content": "A"},
		map[string]interface{}{"content": "B"},
	}

	objects, err := ParseObjectArray(input, "items")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "A", objects[0]["content"])

	_, err = ParseObjectArray("not an array", "items")
	assert.Error(t, err)

	_, err = ParseObjectArray([]interface{}{"not an object"}, "items")
	assert.Error(t, err)

	objects, err = ParseObjectArray(`[{"content":"A"},{"content":"B"}]`, "items")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "B", objects[1]["content"])
}
