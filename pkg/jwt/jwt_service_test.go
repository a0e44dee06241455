package jwt

import (
	"kitchenpal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTokenRoundTrip(t *testing.T) {
	svc := NewJWTService()

	token := svc.GenerateTokenUser("user-123", domain.RoleUser)
	require.NotEmpty(t, token)

	id, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", id)
	assert.Equal(t, domain.RoleUser, role)
}

func TestGetUserIDByTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService()

	_, _, err := svc.GetUserIDByToken("not-a-token")

	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerifyEmailTokenRoundTrip(t *testing.T) {
	svc := NewJWTService()

	token, err := svc.GenerateTokenVerifyEmail(map[string]any{"user_id": "user-123"}, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateTokenVerifyEmail(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
}

func TestVerifyEmailTokenExpired(t *testing.T) {
	svc := NewJWTService()

	token, err := svc.GenerateTokenVerifyEmail(map[string]any{"user_id": "user-123"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateTokenVerifyEmail(token)

	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
