package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	token, err := Sign("user-123", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestParseExpiredToken(t *testing.T) {
	token, err := Sign("user-123", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not.a.token")
	assert.Error(t, err)
}

func TestSecretMismatch(t *testing.T) {
	defer SetSecret(defaultSecret)

	token, err := Sign("user-123", time.Hour)
	require.NoError(t, err)

	SetSecret("a-different-secret")
	_, err = Parse(token)
	assert.Error(t, err, "token signed under the old secret must not verify")
}
