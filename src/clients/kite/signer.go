package kite

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum computes the request signature the Kite session-token endpoint
// verifies server-side: lowercase hex SHA-256 over the exact byte
// concatenation apiKey + requestToken + apiSecret, UTF-8, no delimiter.
// Any deviation in order or encoding makes the exchange fail.
func Checksum(apiKey, requestToken, apiSecret string) string {
	digest := sha256.Sum256([]byte(apiKey + requestToken + apiSecret))
	return hex.EncodeToString(digest[:])
}
