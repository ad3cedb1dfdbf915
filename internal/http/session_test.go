package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := issueSessionToken(42, secret, time.Hour)
	require.NoError(t, err)

	userID, err := userIDFromSessionToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestSessionToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := issueSessionToken(1, secret, -1*time.Second)
	require.NoError(t, err)

	_, err = userIDFromSessionToken(tok, secret)
	require.Error(t, err)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := issueSessionToken(1, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = userIDFromSessionToken(tok, []byte("wrong-secret"))
	require.Error(t, err)
}

func TestSessionToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := userIDFromSessionToken("not.a.jwt", []byte("k"))
	require.Error(t, err)
}

func TestSessionToken_ZeroUserID(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := issueSessionToken(0, secret, time.Hour)
	require.NoError(t, err)

	_, err = userIDFromSessionToken(tok, secret)
	require.ErrorIs(t, err, errInvalidSessionToken)
}
