package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyMatch(t *testing.T) {
	encoded, err := HashPassword("secret1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := VerifyPassword("secret1", encoded)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	encoded, err := HashPassword("secret1")
	require.NoError(t, err)

	ok, err := VerifyPassword("secret2", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("secret1", "not-an-argon2-hash")
	require.ErrorIs(t, err, ErrInvalidHash)

	_, err = VerifyPassword("secret1", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
	require.ErrorIs(t, err, ErrInvalidHash)
}
