package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestHashAndCheck(t *testing.T) {
	hashed, err := HashPassword("123456")
	require.NoError(t, err)
	assert.True(t, IsHashed(hashed))

	ok, rehash, err := CheckPassword(hashed, "123456")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, rehash)

	ok, _, err = CheckPassword(hashed, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckLegacyPlaintext(t *testing.T) {
	ok, rehash, err := CheckPassword("123456", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, rehash)

	ok, rehash, err = CheckPassword("123456", "654321")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, rehash)
}

func TestCheckMissingPassword(t *testing.T) {
	for _, candidate := range []string{"", "123456"} {
		ok, rehash, err := CheckPassword("", candidate)
		require.NoError(t, err)
		assert.False(t, ok, "candidate %q", candidate)
		assert.False(t, rehash)
	}
}
