package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"sync"
	"time"
)

// FingerprintCache remembers content hashes keyed by path, reusing a hash
// while the file's ModTime and size are unchanged.
type FingerprintCache struct {
	mu      sync.RWMutex
	entries map[string]fingerprintEntry
}

type fingerprintEntry struct {
	modTime time.Time
	size    int64
	hash    string
}

// NewFingerprintCache creates an empty cache
func NewFingerprintCache() *FingerprintCache {
	return &FingerprintCache{entries: make(map[string]fingerprintEntry)}
}

// Fingerprint returns the SHA256 of the file at path
func (c *FingerprintCache) Fingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	if ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		return entry.hash, nil
	}

	hash, err := hashFile(path)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[path] = fingerprintEntry{
		modTime: info.ModTime(),
		size:    info.Size(),
		hash:    hash,
	}
	c.mu.Unlock()

	return hash, nil
}

// Len returns the number of cached entries
func (c *FingerprintCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ShortFingerprint returns the first 8 chars of a fingerprint for display
func ShortFingerprint(hash string) string {
	if len(hash) >= 8 {
		return hash[:8]
	}
	return hash
}
