// Package blobcache is a process-lifetime, in-memory cache for blob contents,
// keyed by a hash of the decoded blob path. Entries expire a fixed TTL after
// they are written (absolute, not sliding).
package blobcache

import (
	"crypto/md5"
	"encoding/hex"
	"sync"
	"time"
)

type entry struct {
	data        []byte
	contentType string
	expiresAt   time.Time
}

// Cache is safe for concurrent use. The clock is injectable so tests can
// drive expiry deterministically.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewWithClock is New with a caller-supplied clock, for tests.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	c := New(ttl)
	c.now = now
	return c
}

// Key returns the cache key for a decoded blob path.
func Key(decodedPath string) string {
	sum := md5.Sum([]byte(decodedPath))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached bytes and content type for key. A stale entry is
// evicted and reported as a miss.
func (c *Cache) Get(key string) ([]byte, string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, "", false
	}
	if c.now().Before(e.expiresAt) {
		return e.data, e.contentType, true
	}

	// Stale. Re-check under the write lock so we never evict an entry a
	// concurrent Set just refreshed.
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok = c.entries[key]; ok && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
	}
	return nil, "", false
}

// Set stores bytes and content type under key with a fresh TTL.
func (c *Cache) Set(key string, data []byte, contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		data:        data,
		contentType: contentType,
		expiresAt:   c.now().Add(c.ttl),
	}
}

// PurgeExpired drops all stale entries and returns how many were removed.
// The background sweep calls this so memory is not held hostage by blobs
// nobody fetches again.
func (c *Cache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently held, stale or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
