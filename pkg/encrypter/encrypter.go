// Package encrypter holds the secret-handling primitives: AEAD encryption of
// credentials at rest, key derivation, content hashing and the constant-time
// HMAC checks used by webhook verification.
package encrypter

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the size in bytes of the symmetric key.
const KeySize = chacha20poly1305.KeySize

// NonceSize is the size in bytes of the per-record nonce (96 bits).
const NonceSize = chacha20poly1305.NonceSize

var (
	// ErrDecrypt is returned for every decryption failure. It deliberately does
	// not say whether the key, nonce or ciphertext was at fault.
	ErrDecrypt = errors.New("encrypter: decryption failed")

	ErrInvalidKey = errors.New("encrypter: key must be 32 bytes")
)

// Encrypter encrypts and decrypts secret material with a fixed key.
//
//go:generate mockery --name Encrypter
type Encrypter interface {
	Encrypt(plaintext []byte) (ciphertextHex string, nonceHex string, err error)
	Decrypt(ciphertextHex string, nonceHex string) ([]byte, error)
}

type implEncrypter struct {
	key []byte
}

var _ Encrypter = (*implEncrypter)(nil)

// New creates an Encrypter bound to key, which must be KeySize bytes.
func New(key []byte) (Encrypter, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	k := make([]byte, KeySize)
	copy(k, key)
	return &implEncrypter{key: k}, nil
}

func (e *implEncrypter) Encrypt(plaintext []byte) (string, string, error) {
	return EncryptAEAD(e.key, plaintext)
}

func (e *implEncrypter) Decrypt(ciphertextHex, nonceHex string) ([]byte, error) {
	return DecryptAEAD(e.key, ciphertextHex, nonceHex)
}

// EncryptAEAD seals plaintext with ChaCha20-Poly1305 under a fresh random nonce.
// Both outputs are hex encoded.
func EncryptAEAD(key, plaintext []byte) (string, string, error) {
	if len(key) != KeySize {
		return "", "", ErrInvalidKey
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", "", fmt.Errorf("encrypter: creating cipher: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", "", fmt.Errorf("encrypter: generating nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), hex.EncodeToString(nonce), nil
}

// DecryptAEAD opens a ciphertext produced by EncryptAEAD. Any malformed input or
// authentication failure yields ErrDecrypt.
func DecryptAEAD(key []byte, ciphertextHex, nonceHex string) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrDecrypt
	}

	nonce, err := hex.DecodeString(nonceHex)
	if err != nil || len(nonce) != NonceSize {
		return nil, ErrDecrypt
	}
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil || len(ciphertext) < chacha20poly1305.Overhead {
		return nil, ErrDecrypt
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, ErrDecrypt
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
