// Package connector_tools provides MCP tools for connectors between board items.
package connector_tools
