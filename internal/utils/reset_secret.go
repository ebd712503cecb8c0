package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// resetSecretLen is the number of random bytes in a password reset secret.
const resetSecretLen = 32

// NewResetSecret generates a one-time password reset secret.
//
// It returns the hex encoded secret, which is mailed to the user, and its
// SHA-256 hex digest, which is the only form ever stored.
func NewResetSecret() (secret, secretHash string, err error) {
	buf := make([]byte, resetSecretLen)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("error generating reset secret: %w", err)
	}

	secret = hex.EncodeToString(buf)
	return secret, HashResetSecret(secret), nil
}

// HashResetSecret returns the SHA-256 hex digest of secret.
func HashResetSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
