package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(42, secret, time.Hour)
	require.NoError(t, err)

	userID, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(42, []byte("one"), time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, []byte("two"))
	require.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateJWT(42, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, secret)
	require.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, err := ParseJWT("not-a-token", []byte("s"))
	require.Error(t, err)
}
