// Package miro provides a client for the Miro REST API v2.
//
// The client is a pure translation layer: each method issues exactly one
// authenticated HTTP request and decodes the JSON response into a typed
// result. There is no caching, no retry, and no backoff; calling a
// mutation twice after a failure may create duplicate remote objects.
//
// Responses with HTTP status 204, and all DELETE requests, are normalized
// to an empty success because the remote service returns empty bodies for
// deletions inconsistently. Any non-2xx response is surfaced as an
// *APIError carrying the status code, status text, and raw body so callers
// can distinguish client-side validation failures (4xx) from service
// failures (5xx).
package miro
