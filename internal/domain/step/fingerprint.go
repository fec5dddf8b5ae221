package step

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintLength is the width of a hex-encoded fingerprint.
const FingerprintLength = sha256.Size * 2

// Fingerprint returns the lowercase hex SHA-256 digest of content.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
