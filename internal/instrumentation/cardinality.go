package instrumentation

import "strconv"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics derived from request payloads.

// BatchSizeBucket reduces a batch element count to a small fixed set of
// bucket labels so batch metrics stay low-cardinality.
//
// Example:
//
//	BatchSizeBucket(1)   // "1"
//	BatchSizeBucket(4)   // "2-5"
//	BatchSizeBucket(12)  // "6-20"
//	BatchSizeBucket(50)  // ">20"
func BatchSizeBucket(n int) string {
	switch {
	case n <= 0:
		return "0"
	case n == 1:
		return "1"
	case n <= 5:
		return "2-5"
	case n <= 20:
		return "6-20"
	default:
		return ">20"
	}
}

// StatusCodeClass reduces an HTTP status code to its class ("2xx", "4xx", ...)
// for metrics that do not need exact codes.
func StatusCodeClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

// Common operation types for Miro API metrics.
// Status and Resource constants are defined in config.go.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
	OperationCopy   = "copy"
	OperationShare  = "share"
	OperationAttach = "attach"
	OperationDetach = "detach"
)
