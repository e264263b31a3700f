package cryptox_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wirraway/authgate/pkg/cryptox"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	t.Run("verifies original password", func(t *testing.T) {
		require.NoError(t, cryptox.VerifyPassword("correct horse battery staple", hash))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		err := cryptox.VerifyPassword("Tr0ub4dor&3", hash)
		require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
	})

	t.Run("salts differ between hashes", func(t *testing.T) {
		other, err := cryptox.HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.NotEqual(t, hash, other)
	})
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=12288,t=3,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=12288,t=3,p=1$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=12288,t=3,p=1$c2FsdA"},
		{"bad salt encoding", "$argon2id$v=19$m=12288,t=3,p=1$!!!$aGFzaA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := cryptox.VerifyPassword("whatever", tc.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, cryptox.ErrPasswordMismatch)
		})
	}
}
