package card

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
)

var errCiphertextTooShort = errors.New("ciphertext demasiado corto")

// cipherBox seals card numbers and CVVs with AES-GCM. The key is derived
// from the configured secret so restarts keep stored cards readable.
type cipherBox struct {
	aead cipher.AEAD
}

func newCipherBox(secret string) (*cipherBox, error) {
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &cipherBox{aead: aead}, nil
}

func (b *cipherBox) seal(plaintext string) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return b.aead.Seal(nonce, nonce, []byte(plaintext), nil), nil
}

func (b *cipherBox) open(ciphertext []byte) (string, error) {
	if len(ciphertext) < b.aead.NonceSize() {
		return "", errCiphertextTooShort
	}
	nonce, sealed := ciphertext[:b.aead.NonceSize()], ciphertext[b.aead.NonceSize():]
	plain, err := b.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
