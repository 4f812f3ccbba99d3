package encrypter

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

// SignaturePrefix is the algorithm tag GitHub puts in front of the hex digest.
const SignaturePrefix = "sha256="

// Hash returns the hex BLAKE3-256 digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HMAC returns HMAC-SHA256(key, data).
func HMAC(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// HMACHex returns the hex encoding of HMAC-SHA256(key, data).
func HMACHex(key, data []byte) string {
	return hex.EncodeToString(HMAC(key, data))
}

// VerifyHMACSignature checks a "sha256=<hex>" signature over body. It returns
// false for an empty secret, a missing or different prefix, bad hex, or a
// mismatch. The digest comparison runs in constant time.
func VerifyHMACSignature(secret []byte, signature string, body []byte) bool {
	if len(secret) == 0 || !strings.HasPrefix(signature, SignaturePrefix) {
		return false
	}

	given, err := hex.DecodeString(signature[len(SignaturePrefix):])
	if err != nil {
		return false
	}

	return hmac.Equal(given, HMAC(secret, body))
}

// VerifyTokenHMAC checks a presented shared token against the stored
// HMAC(pepper, token) digest. The token itself is never stored.
func VerifyTokenHMAC(pepper []byte, storedHMACHex string, token string) bool {
	if len(pepper) == 0 || token == "" {
		return false
	}

	stored, err := hex.DecodeString(storedHMACHex)
	if err != nil {
		return false
	}

	computed := HMAC(pepper, []byte(token))
	// Both sides are fixed-size digests, so a length mismatch only happens for
	// corrupt stored data and reveals nothing about the token.
	return subtle.ConstantTimeCompare(stored, computed) == 1
}

// GenerateSecret returns n random bytes hex-encoded, for webhook shared secrets.
func GenerateSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
