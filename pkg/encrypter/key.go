package encrypter

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// hkdfInfo separates credential keys from any other use of the same secret.
// Changing it invalidates every stored ciphertext.
var hkdfInfo = []byte("buildhook.credentials.v1")

// DeriveKey turns an operator-supplied secret into a KeySize key with
// HKDF-SHA256. It is meant for high-entropy secrets from the environment and
// is not a password hash.
func DeriveKey(secret string) []byte {
	key := make([]byte, KeySize)
	reader := hkdf.New(sha256.New, []byte(secret), nil, hkdfInfo)
	// HKDF-SHA256 can emit up to 255*32 bytes, 32 never fails.
	if _, err := io.ReadFull(reader, key); err != nil {
		panic("encrypter: hkdf: " + err.Error())
	}
	return key
}
