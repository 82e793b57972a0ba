// Package webhook_tools provides MCP tools for webhook subscriptions on
// board item events.
package webhook_tools
