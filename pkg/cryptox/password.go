package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. These match the encoding of every hash already in
// the users table, so they must not change without a migration that
// rehashes on next login.
const (
	saltLength = 16
	iterations = 100_000
	keyLength  = 32
)

// HashPassword derives a PBKDF2-HMAC-SHA256 key from the password under a
// fresh random salt and returns it encoded as "hexsalt$base64key".
//
// The hex-encoded salt string itself (not the raw bytes) is fed to the KDF,
// which keeps stored hashes verifiable across every version of this service.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hexSalt := hex.EncodeToString(salt)
	key := pbkdf2.Key([]byte(password), []byte(hexSalt), iterations, keyLength, sha256.New)

	return hexSalt + "$" + base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// Any malformed encoding verifies as false; comparison is constant time.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 2 {
		return false
	}
	salt, stored := parts[0], parts[1]

	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	computed := base64.StdEncoding.EncodeToString(key)

	return subtle.ConstantTimeCompare([]byte(computed), []byte(stored)) == 1
}
