package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-signing"

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateAccessToken(userID, "admin@example.com", "admin", testSecret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateTokenFailures(t *testing.T) {
	userID := uuid.New()

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateAccessToken(userID, "a@b.com", "admin", testSecret, time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken(token, "a-different-secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateAccessToken(userID, "a@b.com", "admin", testSecret, -time.Minute)
		require.NoError(t, err)

		_, err = ValidateToken(token, testSecret)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateRefreshToken(userID, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestAccessTokenNotValidAsRefresh(t *testing.T) {
	// Access and refresh tokens are signed with different secrets in
	// production config; crossing them must fail.
	userID := uuid.New()

	token, err := GenerateAccessToken(userID, "a@b.com", "admin", "access-secret", time.Minute)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(token, "refresh-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
