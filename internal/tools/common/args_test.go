package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredString(t *testing.T) {
	args := map[string]interface{}{
		"board_id": "b1",
		"empty":    "",
		"number":   42.0,
	}

	val, err := RequiredString(args, "board_id")
	require.NoError(t, err)
	assert.Equal(t, "b1", val)

	_, err = RequiredString(args, "empty")
	assert.Error(t, err)

	_, err = RequiredString(args, "missing")
	assert.Error(t, err)

	_, err = RequiredString(args, "number")
	assert.Error(t, err)
}

func TestOptionalHelpers(t *testing.T) {
	args := map[string]interface{}{
		"name":  "My Board",
		"x":     12.5,
		"limit": 20.0,
		"flag":  true,
	}

	assert.Equal(t, "My Board", OptionalString(args, "name"))
	assert.Equal(t, "", OptionalString(args, "missing"))

	x := OptionalFloat(args, "x")
	require.NotNil(t, x)
	assert.Equal(t, 12.5, *x)
	assert.Nil(t, OptionalFloat(args, "missing"))

	assert.Equal(t, 20, OptionalInt(args, "limit", 50))
	assert.Equal(t, 50, OptionalInt(args, "missing", 50))

	assert.True(t, OptionalBool(args, "flag", false))
	assert.False(t, OptionalBool(args, "missing", false))
}
