package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for sense-lookup memoization
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for a word lookup in a given language
func Key(language, word string) string {
	hash := sha256.Sum256([]byte(language + ":" + word))
	return "varlex:v1:" + hex.EncodeToString(hash[:])
}
