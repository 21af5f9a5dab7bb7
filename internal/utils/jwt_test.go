package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/unibites/campus-bites/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    "8f14e45f-ea3a-4c2b-9d1e-000000000001",
		Email: "student@example.com",
		Role:  models.RoleUser,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	user := testUser()

	token, err := GenerateToken(user, "test-secret", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, user.ID, claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testUser(), "test-secret", time.Hour)
	assert.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := GenerateToken(testUser(), "test-secret", -time.Minute)
	assert.NoError(t, err)

	_, err = ValidateToken(token, "test-secret")
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "test-secret")
	assert.Error(t, err)
}
