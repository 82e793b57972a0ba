// Package logging provides slog helpers and shared attribute keys so log
// records use consistent field names across the codebase.
package logging
