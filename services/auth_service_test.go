package services

import (
	"testing"

	"github.com/mitlacherp/local-contract-manager/config"
	"github.com/mitlacherp/local-contract-manager/models"
	"github.com/mitlacherp/local-contract-manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateUserReturnsUserAndToken(t *testing.T) {
	config.DB = newTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	seeded := models.User{Name: "Jo", Email: "jo@example.com", Password: hash, Role: models.RoleEmployee}
	mustCreate(t, config.DB, &seeded)

	user, token, err := AuthenticateUser("jo@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user, "the handler builds its response from this user")
	assert.Equal(t, seeded.ID, user.ID)
	assert.Equal(t, models.RoleEmployee, user.Role)
	assert.NotEmpty(t, token)
}

func TestAuthenticateUserRejectsBadCredentials(t *testing.T) {
	config.DB = newTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	mustCreate(t, config.DB, &models.User{Name: "Jo", Email: "jo@example.com", Password: hash})

	user, token, err := AuthenticateUser("jo@example.com", "wrong")
	assert.Error(t, err)
	assert.Nil(t, user)
	assert.Empty(t, token)

	user, _, err = AuthenticateUser("nobody@example.com", "secret123")
	assert.Error(t, err)
	assert.Nil(t, user)
}
