package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSecret_RoundTrip(t *testing.T) {
	encoded, err := HashSecret([]byte("s3cret"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	require.NoError(t, VerifySecret([]byte("s3cret"), encoded))
	require.ErrorIs(t, VerifySecret([]byte("wrong"), encoded), ErrMismatch)
}

func TestHashSecret_SaltsDiffer(t *testing.T) {
	a, err := HashSecret([]byte("same"))
	require.NoError(t, err)
	b, err := HashSecret([]byte("same"))
	require.NoError(t, err)
	require.NotEqual(t, a, b, "each hash must use a fresh salt")
}

func TestVerifySecret_MalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not phc", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifySecret([]byte("x"), tc.encoded)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrMismatch)
		})
	}
}

func TestWipeByteArray(t *testing.T) {
	b := []byte{1, 2, 3}
	WipeByteArray(b)
	require.Equal(t, []byte{0, 0, 0}, b)
}
