package util

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateUUID returns a random (version 4) UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateAPIKey returns a random 32-byte key, hex encoded
func GenerateAPIKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing leaves no safe fallback
		panic(err)
	}
	return hex.EncodeToString(b)
}
