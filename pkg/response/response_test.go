package response

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	resp := Success("done", map[string]int{"count": 3})

	assert.True(t, resp.Success)
	assert.Equal(t, "done", resp.Message)
	assert.Nil(t, resp.Errors)

	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
}

func TestError(t *testing.T) {
	resp := Error("validation failed", map[string]string{"email": "is required"})

	assert.False(t, resp.Success)
	assert.Equal(t, "is required", resp.Errors["email"])
}

func TestEnvelopeOmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(Error("nope", nil))
	require.NoError(t, err)

	assert.NotContains(t, string(raw), `"data"`)
	assert.NotContains(t, string(raw), `"errors"`)
	assert.Contains(t, string(raw), `"success":false`)
}
