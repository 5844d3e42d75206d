package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { PasswordCost = bcrypt.DefaultCost })

	h1, err := HashPassword("senha123")
	require.NoError(t, err)
	h2, err := HashPassword("senha123")
	require.NoError(t, err)

	assert.NotEqual(t, "senha123", h1)
	assert.NotEqual(t, h1, h2, "salted")
	assert.True(t, CheckPassword("senha123", h1))
	assert.False(t, CheckPassword("senha124", h1))
	assert.False(t, CheckPassword("senha123", "not-a-hash"))
}

func TestHashPassword_TooLong(t *testing.T) {
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	_, err := HashPassword(string(long))
	require.Error(t, err)
}

func TestNewID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewID())
}
