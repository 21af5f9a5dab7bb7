package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces a bcrypt hash", func(t *testing.T) {
		hash, err := HashPassword("MySecurePassword123")
		assert.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.True(t, strings.HasPrefix(hash, "$2"))
	})

	t.Run("same password yields different hashes", func(t *testing.T) {
		hash1, err := HashPassword("MySecurePassword123")
		assert.NoError(t, err)
		hash2, err := HashPassword("MySecurePassword123")
		assert.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := HashPassword("")
		assert.Error(t, err)
	})
}

func TestVerifyPassword(t *testing.T) {
	password := "MySecurePassword123"
	hash, err := HashPassword(password)
	assert.NoError(t, err)

	t.Run("accepts the correct password", func(t *testing.T) {
		valid, err := VerifyPassword(password, hash)
		assert.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("rejects a wrong password without error", func(t *testing.T) {
		valid, err := VerifyPassword("WrongPassword", hash)
		assert.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("errors on a malformed hash", func(t *testing.T) {
		valid, err := VerifyPassword(password, "not-a-bcrypt-hash")
		assert.Error(t, err)
		assert.False(t, valid)
	})
}
