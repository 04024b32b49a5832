package cache

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultTTL is how long a catalog response stays readable
const DefaultTTL = 5 * time.Minute

// Entry is one cached payload with the time it was stored and how long it lives
type Entry struct {
	Value    json.RawMessage
	StoredAt time.Time
	TTL      time.Duration
}

// expired reports whether the entry is past storedAt+ttl at the given time
func (e Entry) expired(now time.Time) bool {
	return !now.Before(e.StoredAt.Add(e.TTL))
}

// Stats holds hit/miss counters for the response cache
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// ResponseCache memoizes raw catalog responses by request key
// Capacity is unbounded; entries are only removed when read after expiry or on Clear
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time

	hits      int64
	misses    int64
	evictions int64
}

// NewResponseCache creates an empty cache using the wall clock
func NewResponseCache() *ResponseCache {
	return NewResponseCacheWithClock(time.Now)
}

// NewResponseCacheWithClock creates an empty cache that reads time from now
func NewResponseCacheWithClock(now func() time.Time) *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]Entry),
		now:     now,
	}
}

// Set stores value under key, replacing any previous entry
func (c *ResponseCache) Set(key string, value json.RawMessage, ttl time.Duration) {
	// Copy so later mutation of the caller's slice can't leak into the cache
	stored := make(json.RawMessage, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Value: stored, StoredAt: c.now(), TTL: ttl}
}

// Get returns the value stored under key if it has not expired
// An expired entry is evicted as a side effect
func (c *ResponseCache) Get(key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if entry.expired(c.now()) {
		delete(c.entries, key)
		c.evictions++
		c.misses++
		return nil, false
	}

	c.hits++
	return entry.Value, true
}

// Clear drops every entry
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

// Len returns the number of stored entries, expired ones included
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the counters
func (c *ResponseCache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.entries),
	}
}
