package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecureToken reads lengthInBytes random bytes and returns them URL-safe
// base64 encoded without padding, after prefix. 32 bytes give a 43 character body.
func GenerateSecureToken(prefix string, lengthInBytes int) (string, error) {
	if lengthInBytes < 16 {
		return "", fmt.Errorf("lengthInBytes must be at least 16")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return prefix + base64.RawURLEncoding.EncodeToString(b), nil
}
