package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListResponse(t *testing.T) {
	resp := CreateListResponse("renewals", []string{"a", "b"}, 2)

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, data["renewals"])
	assert.Equal(t, 2, data["count"])
}

func TestCreateErrorResponse(t *testing.T) {
	resp := CreateErrorResponse("NOT_FOUND", "no such policy")

	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "no such policy", resp.Error.Message)
}
