package cryptox

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Encoding is "hexsalt$base64key"
			parts := strings.Split(hash, "$")
			require.Len(t, parts, 2, "hash should have exactly one separator")

			salt, err := hex.DecodeString(parts[0])
			require.NoError(t, err, "salt should be hex encoded")
			require.Len(t, salt, saltLength)

			key, err := base64.StdEncoding.DecodeString(parts[1])
			require.NoError(t, err, "key should be standard base64")
			require.Len(t, key, keyLength)
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)

	hash2, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")

	require.True(t, VerifyPassword(password, hash1))
	require.True(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_KnownVector(t *testing.T) {
	// Fixed-salt PBKDF2-HMAC-SHA256(100k, 32) vector; guards the encoding
	// against parameter drift that would orphan stored hashes.
	const encoded = "000102030405060708090a0b0c0d0e0f$IVEHqR+g/6Th9HCVW7eu67zMfRs+DngoxrK+gb3uY8Q="

	require.True(t, VerifyPassword("secret1", encoded))
	require.False(t, VerifyPassword("secret2", encoded))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"truncated", "correct-passwor"},
		{"very long", strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, VerifyPassword(tt.wrongPassword, hash))
		})
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"no separator", "deadbeefcafebabe"},
		{"two separators", "aa$bb$cc"},
		{"only separator", "$"},
		{"bcrypt-shaped", "$2b$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, VerifyPassword("any-password", tt.invalidHash),
				"malformed hashes must fail closed")
		})
	}
}
