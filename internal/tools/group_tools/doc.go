// Package group_tools provides MCP tools for grouping board items.
package group_tools
