// Package cryptox hashes account secrets. Secrets are never stored in the
// clear: registration produces a salted argon2id digest and login verifies a
// candidate against it in constant time.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 16
	iterations  = 1
	memory      = 64 * 1024
	parallelism = 4
	keyLength   = 32
)

var ErrMismatch = errors.New("secret does not match")

// HashSecret derives an argon2id digest from the secret with a fresh random
// salt and returns it in PHC form:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func HashSecret(secret []byte) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey(secret, salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifySecret re-derives the digest of a candidate secret using the salt and
// parameters embedded in encoded, and compares in constant time. Returns
// ErrMismatch when the secret is wrong; any other error means the stored
// value is malformed.
func VerifySecret(secret []byte, encoded string) error {
	parts := strings.Split(encoded, "$")
	// Expected: ["", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash]
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return errors.New("invalid secret hash format")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("invalid secret hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid secret hash salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid secret hash digest: %w", err)
	}

	got := argon2.IDKey(secret, salt, iters, mem, par, uint32(len(want)))

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

// WipeByteArray zeroes a secret buffer once it is no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
