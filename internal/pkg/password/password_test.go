package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("supersecret")
	require.NoError(t, err)

	assert.NotEqual(t, "supersecret", hash)
	assert.True(t, Verify("supersecret", hash))
	assert.False(t, Verify("wrongpassword", hash))
	assert.False(t, Verify("supersecret", "not-a-hash"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("supersecret")
	require.NoError(t, err)
	second, err := Hash("supersecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("12345678"))
	assert.False(t, Valid("1234567"))
	assert.False(t, Valid(""))
}
