package idcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the required size of the master key (AES-256).
	KeySize = 32

	// ShortIDThreshold is the length above which a requested tenant value is
	// treated as an opaque encrypted token rather than a raw id or code.
	ShortIDThreshold = 24

	// saltInfo provides HKDF domain separation so the derived key cannot be
	// reused by other consumers of the same master key.
	saltInfo = "templekit-idcipher-v1"
)

// Cipher reversibly obfuscates tenant identifiers for use in URLs and headers
// where the raw identifier should not be exposed. It uses AES-256-GCM with a
// key derived from the master key via HKDF, so decryption doubles as an
// integrity check: a forged or truncated token never decrypts.
type Cipher struct {
	aead cipher.AEAD
}

// New creates a Cipher from a 32-byte master key.
func New(masterKey []byte) (*Cipher, error) {
	if len(masterKey) != KeySize {
		return nil, ErrInvalidKey
	}

	derived := make([]byte, KeySize)
	kdf := hkdf.New(sha256.New, masterKey, nil, []byte(saltInfo))
	if _, err := io.ReadFull(kdf, derived); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	return &Cipher{aead: aead}, nil
}

// GenerateKey creates a new random 32-byte master key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// Encrypt obfuscates an identifier into an opaque base64url token.
// Ciphertext layout: nonce + encrypted data + tag.
func (c *Cipher) Encrypt(identifier string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(identifier), nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt recovers the identifier from an opaque token. Failure is
// recoverable by contract: the caller logs it and treats the token as
// "no match" rather than propagating a fatal error.
func (c *Cipher) Decrypt(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrInvalidToken
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}

	return string(plaintext), nil
}

// IsOpaque reports whether a requested tenant value looks like an encrypted
// token rather than a raw id or code.
func (c *Cipher) IsOpaque(value string) bool {
	return len(value) > ShortIDThreshold
}
