package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	a, err := NewAuthenticator("test-signing-key", time.Hour, map[string]string{
		"alice": hash,
	})
	require.NoError(t, err)
	return a
}

func TestLoginAndVerify(t *testing.T) {
	a := newTestAuthenticator(t)

	token, err := a.Login("alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := a.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newTestAuthenticator(t)

	_, err := a.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Login("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	a := newTestAuthenticator(t)

	other, err := NewAuthenticator("different-key", time.Hour, nil)
	require.NoError(t, err)
	forged, err := other.IssueToken("alice")
	require.NoError(t, err)

	_, err = a.VerifyToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewAuthenticatorRequiresSecret(t *testing.T) {
	_, err := NewAuthenticator("", time.Hour, nil)
	assert.Error(t, err)
}
