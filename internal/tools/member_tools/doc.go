// Package member_tools provides MCP tools for board membership: sharing a
// board by email, listing members, and managing member roles.
package member_tools
