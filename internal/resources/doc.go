// Package resources provides MCP resources for exposing board data.
// Resources are read-only data sources that MCP clients can fetch without
// invoking a tool, such as the set of boards reachable with the configured
// access token.
package resources
