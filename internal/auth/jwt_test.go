package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Sign(secret, 42, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := Sign([]byte("secret-a"), 1, time.Hour)
	require.NoError(t, err)

	_, err = Parse([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := Sign(secret, 1, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(secret, token)
	assert.Error(t, err)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("test-secret"), "not-a-token")
	assert.Error(t, err)
}
