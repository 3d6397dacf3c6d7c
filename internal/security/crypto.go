package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"novelforge-server/internal/models"
)

// Guard выполняет обратимое шифрование API-ключей для хранения в БД.
// Ключ шифрования выводится из процессного секрета один раз при старте;
// ротация секрета делает ранее зашифрованные значения нечитаемыми.
type Guard struct {
	gcm cipher.AEAD
}

// NewGuard создает Guard на основе процессного секрета.
// Секрет нормализуется через SHA-256 до 256-битного ключа AES.
func NewGuard(secret string) (*Guard, error) {
	if secret == "" {
		return nil, fmt.Errorf("encryption secret is empty")
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Guard{gcm: gcm}, nil
}

// Encrypt шифрует строку. Пустой вход возвращается как есть - это намеренное
// поведение, а не ошибка: отсутствующий ключ не шифруется.
func (g *Guard) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return plaintext, nil
	}

	nonce := make([]byte, g.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// nonce дописывается перед шифртекстом: blob = nonce ‖ ciphertext.
	sealed := g.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt расшифровывает значение, полученное из Encrypt. Пустой вход
// возвращается как есть. Данные, зашифрованные другим секретом или вовсе
// не являющиеся шифртекстом, дают ошибку models.ErrDecryptFailed - никогда
// не "мусорный" результат.
func (g *Guard) Decrypt(encrypted string) (string, error) {
	if encrypted == "" {
		return encrypted, nil
	}

	blob, err := base64.RawURLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("%w: invalid encoding", models.ErrDecryptFailed)
	}

	nonceSize := g.gcm.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", models.ErrDecryptFailed)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := g.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrDecryptFailed, err)
	}

	return string(plaintext), nil
}
