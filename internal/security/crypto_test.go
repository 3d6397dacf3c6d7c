package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novelforge-server/internal/models"
)

func TestNewGuard(t *testing.T) {
	t.Run("EmptySecret", func(t *testing.T) {
		_, err := NewGuard("")
		require.Error(t, err)
	})

	t.Run("AnySecretLength", func(t *testing.T) {
		for _, secret := range []string{"x", "short", "a-much-longer-secret-key-with-plenty-of-entropy"} {
			_, err := NewGuard(secret)
			require.NoError(t, err)
		}
	})
}

func TestGuardRoundTrip(t *testing.T) {
	guard, err := NewGuard("test-secret")
	require.NoError(t, err)

	for _, plaintext := range []string{"sk-1234567890", "короткий ключ", "a"} {
		encrypted, err := guard.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, encrypted)

		decrypted, err := guard.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestGuardEmptyPassThrough(t *testing.T) {
	guard, err := NewGuard("test-secret")
	require.NoError(t, err)

	encrypted, err := guard.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", encrypted)

	decrypted, err := guard.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", decrypted)
}

func TestGuardEncryptNotDeterministic(t *testing.T) {
	guard, err := NewGuard("test-secret")
	require.NoError(t, err)

	first, err := guard.Encrypt("same input")
	require.NoError(t, err)
	second, err := guard.Encrypt("same input")
	require.NoError(t, err)

	// Случайный nonce дает разные шифртексты при одинаковом входе
	assert.NotEqual(t, first, second)
}

func TestGuardDecryptFailures(t *testing.T) {
	guard, err := NewGuard("test-secret")
	require.NoError(t, err)

	t.Run("NotBase64", func(t *testing.T) {
		_, err := guard.Decrypt("не шифртекст!")
		require.ErrorIs(t, err, models.ErrDecryptFailed)
	})

	t.Run("TooShort", func(t *testing.T) {
		_, err := guard.Decrypt("YWJj")
		require.ErrorIs(t, err, models.ErrDecryptFailed)
	})

	t.Run("Tampered", func(t *testing.T) {
		encrypted, err := guard.Encrypt("sk-1234567890")
		require.NoError(t, err)

		tampered := []byte(encrypted)
		last := len(tampered) - 1
		if tampered[last] == 'A' {
			tampered[last] = 'B'
		} else {
			tampered[last] = 'A'
		}
		_, err = guard.Decrypt(string(tampered))
		require.ErrorIs(t, err, models.ErrDecryptFailed)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, err := NewGuard("another-secret")
		require.NoError(t, err)

		encrypted, err := guard.Encrypt("sk-1234567890")
		require.NoError(t, err)

		_, err = other.Decrypt(encrypted)
		require.ErrorIs(t, err, models.ErrDecryptFailed)
	})
}
