package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashTokenSHA256 returns the hex-encoded SHA256 of a bearer token. Cache keys
// use this digest so raw credentials never land in Redis.
func HashTokenSHA256(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
