package idcipher

import "errors"

var (
	// ErrInvalidKey is returned when the encryption key has the wrong length.
	ErrInvalidKey = errors.New("encryption key must be 32 bytes")

	// ErrInvalidToken is returned when a token is not valid base64url or is
	// too short to contain a nonce.
	ErrInvalidToken = errors.New("invalid identifier token")

	// ErrEncryptionFailed is returned when identifier encryption fails.
	ErrEncryptionFailed = errors.New("identifier encryption failed")

	// ErrDecryptionFailed is returned when a token fails authenticated
	// decryption. Callers treat this as "no match", not a fatal error.
	ErrDecryptionFailed = errors.New("identifier decryption failed")
)
