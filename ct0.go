package xapi

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateCT0 generates a random 32-byte hex string for use as a ct0 CSRF
// token when the login flow does not set one.
func GenerateCT0() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "0000000000000000000000000000000000000000000000000000000000000000"
	}
	return hex.EncodeToString(b)
}
