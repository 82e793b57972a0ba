// Package cmd implements the command-line interface for miro-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide Miro whiteboard tools for AI assistants
//   - version: Display version information
package cmd
