package secrets_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querypad/querypad/pkg/secrets"
)

func TestNewRandomString(t *testing.T) {
	t.Parallel()

	t.Run("returns hex of requested byte length", func(t *testing.T) {
		t.Parallel()

		s, err := secrets.NewRandomString(secrets.DefaultByteLength)
		require.NoError(t, err)
		assert.Len(t, s, 64)

		raw, err := hex.DecodeString(s)
		require.NoError(t, err)
		assert.Len(t, raw, 32)
	})

	t.Run("successive values differ", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{})
		for range 100 {
			s, err := secrets.NewRandomString(16)
			require.NoError(t, err)
			_, dup := seen[s]
			require.False(t, dup, "CSPRNG produced a duplicate value")
			seen[s] = struct{}{}
		}
	})
}

func TestHashSecret(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		a := secrets.HashSecret("some-secret")
		b := secrets.HashSecret("some-secret")
		assert.Equal(t, a, b)
		assert.Len(t, a, 32)
	})

	t.Run("distinct inputs produce distinct digests", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, secrets.HashSecret("secret-a"), secrets.HashSecret("secret-b"))
	})

	t.Run("known vector", func(t *testing.T) {
		t.Parallel()

		// sha256("abc")
		want, _ := hex.DecodeString("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad")
		assert.Equal(t, want, secrets.HashSecret("abc"))
	})
}

func TestConstantTimeEqual(t *testing.T) {
	t.Parallel()

	t.Run("equal digests", func(t *testing.T) {
		t.Parallel()

		h := secrets.HashSecret("token-secret")
		assert.True(t, secrets.ConstantTimeEqual(h, secrets.HashSecret("token-secret")))
	})

	t.Run("mismatch in first byte", func(t *testing.T) {
		t.Parallel()

		a := secrets.HashSecret("token-secret")
		b := append([]byte(nil), a...)
		b[0] ^= 0xff
		assert.False(t, secrets.ConstantTimeEqual(a, b))
	})

	t.Run("mismatch in last byte", func(t *testing.T) {
		t.Parallel()

		a := secrets.HashSecret("token-secret")
		b := append([]byte(nil), a...)
		b[len(b)-1] ^= 0xff
		assert.False(t, secrets.ConstantTimeEqual(a, b))
	})

	t.Run("length mismatch", func(t *testing.T) {
		t.Parallel()

		a := secrets.HashSecret("token-secret")
		assert.False(t, secrets.ConstantTimeEqual(a, a[:31]))
	})

	t.Run("both empty", func(t *testing.T) {
		t.Parallel()

		assert.True(t, secrets.ConstantTimeEqual(nil, []byte{}))
	})
}
