package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!Pass", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordLen+1))
	assert.Error(t, err)
}

func TestComparePassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	assert.NoError(t, ComparePassword(hash, "Str0ng!Pass"))
	assert.Error(t, ComparePassword(hash, "WrongPass1!"))
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	h1, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)
	h2, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}
