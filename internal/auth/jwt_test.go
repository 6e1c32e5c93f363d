package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, expiresAt, err := GenerateToken("session-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "session-1", claims.SessionID)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, _, err := GenerateToken("session-1")
	require.NoError(t, err)

	now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	t.Cleanup(func() { now = time.Now })

	_, err = ValidateToken(token)
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	token, _, err := GenerateToken("session-1")
	require.NoError(t, err)

	Configure("", "", "someone-else", 0)
	t.Cleanup(func() { Configure("", "", "country-explorer-clients", 0) })

	_, err = ValidateToken(token)
	require.Error(t, err)
}
