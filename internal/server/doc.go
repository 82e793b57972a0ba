// Package server provides the MCP server context, health endpoints,
// and the dedicated metrics server for the miro-mcp application.
//
// # Key Components
//
// ServerContext holds the shared dependencies for all tool handlers:
// the Miro REST client, the metrics recorder, and the audit logger.
// It owns a cancellable context that is torn down on shutdown.
//
// HealthChecker exposes Kubernetes-style probes:
//   - /healthz: liveness, always OK while the process runs
//   - /readyz: readiness, checks client configuration and shutdown state
//   - /healthz/detailed: readiness plus uptime
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated
// from the MCP transport so operational metrics are never exposed on the
// tool-serving endpoint.
package server
