package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/boardtools/miro-mcp/internal/logging"
)

// MaxBatchSize is the maximum number of operations accepted in one batch.
const MaxBatchSize = 20

// ErrTooLarge is returned when a batch exceeds MaxBatchSize. It is raised
// synchronously before any remote call, so it is always distinguishable
// from remote failures.
var ErrTooLarge = fmt.Errorf("batch exceeds the maximum of %d operations", MaxBatchSize)

// Outcome represents the result of a single operation in a batch.
type Outcome struct {
	Key    string `json:"key"`
	Status string `json:"status"` // "success" or "error"
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Summary represents the aggregated results of a batch operation.
type Summary struct {
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// CheckSize validates a batch length against MaxBatchSize.
func CheckSize(n int) error {
	if n > MaxBatchSize {
		return ErrTooLarge
	}
	return nil
}

// Process executes fn on each item strictly sequentially, in input order.
// keyFn derives the identifying key logged and reported for each element
// (item id, item type, or connector endpoints).
//
// The whole batch is rejected up front with ErrTooLarge when it exceeds
// MaxBatchSize; no remote call is issued in that case. An empty input is
// accepted and yields an empty outcome list without any call. A failing
// element is logged and recorded as an error outcome; it never escalates
// to abort the remaining elements and is never retried.
func Process[T any](items []T, keyFn func(T) string, fn func(T) (string, error)) ([]Outcome, error) {
	if err := CheckSize(len(items)); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(items))
	for _, item := range items {
		key := keyFn(item)
		result, err := fn(item)
		if err != nil {
			slog.Warn("batch element failed",
				slog.String("key", key),
				logging.Err(err),
			)
			outcomes = append(outcomes, Outcome{
				Key:    key,
				Status: "error",
				Error:  err.Error(),
			})
			continue
		}
		outcomes = append(outcomes, Outcome{
			Key:    key,
			Status: "success",
			Result: result,
		})
	}

	return outcomes, nil
}

// ProcessIDs is a convenience wrapper for batches whose elements are bare
// identifiers, such as bulk delete.
func ProcessIDs(ids []string, fn func(id string) (string, error)) ([]Outcome, error) {
	return Process(ids, func(id string) string { return id }, fn)
}

// Summarize aggregates outcomes into totals.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{
		Total:    len(outcomes),
		Outcomes: outcomes,
	}
	for _, o := range outcomes {
		if o.Status == "success" {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// FormatOutcomes creates a formatted JSON string from batch outcomes.
func FormatOutcomes(outcomes []Outcome) string {
	jsonBytes, _ := json.MarshalIndent(Summarize(outcomes), "", "  ")
	return string(jsonBytes)
}

// IsTooLarge reports whether err is the batch size-limit error.
func IsTooLarge(err error) bool {
	return errors.Is(err, ErrTooLarge)
}

// ParseStringOrArray parses a parameter that can be a single string, an
// array of strings, or a JSON-encoded array of strings.
func ParseStringOrArray(param interface{}, paramName string) ([]string, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	var result []string

	switch v := param.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		if strings.HasPrefix(strings.TrimSpace(v), "[") {
			if err := json.Unmarshal([]byte(v), &result); err != nil {
				return nil, fmt.Errorf("%s is not a valid JSON array of strings: %w", paramName, err)
			}
			break
		}
		result = []string{v}
	case []interface{}:
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
			}
			if str == "" {
				return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
			}
			result = append(result, str)
		}
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}

	return result, nil
}

// ParseObjectArray parses a parameter expected to be an array of JSON
// objects, either native or JSON-encoded, as used by the bulk
// create/update tools.
func ParseObjectArray(param interface{}, paramName string) ([]map[string]interface{}, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	if s, ok := param.(string); ok {
		var result []map[string]interface{}
		if err := json.Unmarshal([]byte(s), &result); err != nil {
			return nil, fmt.Errorf("%s is not a valid JSON array of objects: %w", paramName, err)
		}
		return result, nil
	}

	raw, ok := param.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an array of objects", paramName)
	}

	result := make([]map[string]interface{}, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be an object", paramName, i)
		}
		result = append(result, obj)
	}

	return result, nil
}
