package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 of data as a 64-character hex string. Circuit
// designs are hashed this way to key artifact and firmware cache entries.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced cache key from arbitrary parts. The parts
// are JSON-encoded before hashing so "ab"+"c" and "a"+"bc" never collide,
// and the full 256-bit hash is kept so distinct prompts cannot share a key.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}
