package auth

import (
	"testing"
	"time"

	"github.com/nortia/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &model.User{ID: "u1", Email: "admin@example.com", Role: model.RoleAdmin}

	token, err := SignToken("secret", user, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	user := &model.User{ID: "u1", Email: "admin@example.com", Role: model.RoleAdmin}

	token, err := SignToken("secret", user, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	user := &model.User{ID: "u1", Email: "admin@example.com", Role: model.RoleAdmin}

	token, err := SignToken("secret", user, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}
