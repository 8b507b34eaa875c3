// Package secrets provides the cryptographic primitives for session token handling:
// CSPRNG string generation, one-way secret hashing, and constant-time comparison.
//
// Token secrets are bearer credentials. They are never persisted in plaintext;
// only the SHA-256 digest produced by HashSecret is stored, and the stored digest
// is only ever compared with ConstantTimeEqual. A short-circuiting comparison
// (==, bytes.Equal) leaks timing proportional to the common prefix length and
// must not be used on secret material.
package secrets

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// DefaultByteLength is the entropy of generated identifiers and secrets:
// 32 random bytes, rendered as 64 hex characters.
const DefaultByteLength = 32

// ErrRandomSource is returned when the system CSPRNG fails.
var ErrRandomSource = errors.New("secrets: failed to read random bytes")

// NewRandomString draws n cryptographically secure random bytes and returns
// them hex-encoded (n bytes -> 2n characters).
func NewRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrRandomSource, err)
	}
	return hex.EncodeToString(b), nil
}

// HashSecret returns the SHA-256 digest of the secret. The digest, not the
// secret, is what gets persisted server-side.
func HashSecret(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// ConstantTimeEqual reports whether a and b are equal without leaking, through
// timing, the position at which they first differ. It returns early only on
// length mismatch, which is not secret-dependent for fixed-length digests.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
