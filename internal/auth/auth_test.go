package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret")
	userID := uuid.New()

	token, err := m.NewAccessToken(userID, "user@example.com")
	require.NoError(t, err)

	parsed, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret")
	userID := uuid.New()

	token, err := m.NewRefreshToken(userID)
	require.NoError(t, err)

	parsed, err := m.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret")
	userID := uuid.New()

	access, err := m.NewAccessToken(userID, "user@example.com")
	require.NoError(t, err)
	refresh, err := m.NewRefreshToken(userID)
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret")
	other := NewManager("different", "different")

	token, err := m.NewAccessToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret")
	_, err := m.ParseAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}
