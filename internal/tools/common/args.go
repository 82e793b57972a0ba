package common

import "fmt"

// RequiredString extracts a required string argument.
// Returns an error if the argument is missing, not a string, or empty.
func RequiredString(args map[string]interface{}, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return val, nil
}

// OptionalString extracts an optional string argument.
// Returns the empty string if the argument is missing or not a string.
func OptionalString(args map[string]interface{}, key string) string {
	val, _ := args[key].(string)
	return val
}

// OptionalFloat extracts an optional numeric argument as a *float64.
// JSON numbers arrive as float64 through the MCP layer.
// Returns nil if the argument is missing or not a number.
func OptionalFloat(args map[string]interface{}, key string) *float64 {
	if val, ok := args[key].(float64); ok {
		return &val
	}
	return nil
}

// OptionalInt extracts an optional numeric argument as an int.
// Returns the given default if the argument is missing or not a number.
func OptionalInt(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	return defaultValue
}

// OptionalBool extracts an optional boolean argument.
// Returns the given default if the argument is missing or not a boolean.
func OptionalBool(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}
