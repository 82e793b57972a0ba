// Package tag_tools provides MCP tools for board tags: creating, updating,
// and deleting tags, and attaching or detaching them on items.
package tag_tools
