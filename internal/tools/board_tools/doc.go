// Package board_tools provides MCP (Model Context Protocol) tools for Miro board operations.
//
// This package exposes board management through a standardized MCP interface,
// allowing AI assistants to list, create, copy, update, and delete boards.
// Write operations are only registered when the server runs with writes enabled.
package board_tools
