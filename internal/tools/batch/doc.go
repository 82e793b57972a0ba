// Package batch provides the bounded batch executor shared by all bulk
// MCP tools.
//
// A batch is an ordered list of up to MaxBatchSize independent create,
// update, or delete operations. Batches exceeding the cap are rejected
// before any remote call is issued. Elements are executed strictly
// sequentially in input order; a failing element is logged and recorded
// as a structured outcome, never retried, and never aborts the rest of
// the batch. Callers receive one outcome per element in input order so
// partial failures are distinguishable from total success.
package batch
