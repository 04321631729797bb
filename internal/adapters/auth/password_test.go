package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_Roundtrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, 64) // 32 random bytes, hex encoded

	hash, err := hasher.Hash(salt, "Melody@2025!")
	require.NoError(t, err)
	assert.NotEqual(t, "Melody@2025!", hash)

	require.NoError(t, hasher.Compare(hash, salt, "Melody@2025!"))
	require.Error(t, hasher.Compare(hash, salt, "wrong"))
	require.Error(t, hasher.Compare(hash, "other-salt", "Melody@2025!"))
}

func TestBcryptHasher_SaltsAreUnique(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	a, err := hasher.GenerateSalt()
	require.NoError(t, err)
	b, err := hasher.GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	// The SHA256 pre-hash keeps the bcrypt input fixed-size, so passwords
	// beyond bcrypt's 72-byte limit still roundtrip.
	hasher := NewBcryptHasher(bcrypt.MinCost)
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}

	salt, err := hasher.GenerateSalt()
	require.NoError(t, err)
	hash, err := hasher.Hash(salt, string(long))
	require.NoError(t, err)
	require.NoError(t, hasher.Compare(hash, salt, string(long)))
}
