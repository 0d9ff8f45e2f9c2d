package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache provides a simple file-based cache with a TTL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// file maps a key to its SHA256-named file.
func (c *Cache) file(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.path, fmt.Sprintf("%x", hash))
}

// Get returns the cached bytes when present and younger than the TTL.
func (c *Cache) Get(key string) ([]byte, bool) {
	filePath := c.file(key)

	info, err := os.Stat(filePath)
	if err != nil || time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data under key.
func (c *Cache) Set(key string, data []byte) error {
	if err := os.WriteFile(c.file(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// GetOrFetch returns the cached value for key or calls fetch and caches
// its result. hit reports whether the cache answered.
func (c *Cache) GetOrFetch(key string, fetch func() ([]byte, error)) (data []byte, hit bool, err error) {
	if data, ok := c.Get(key); ok {
		return data, true, nil
	}
	data, err = fetch()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(key, data); err != nil {
		return data, false, err
	}
	return data, false, nil
}
