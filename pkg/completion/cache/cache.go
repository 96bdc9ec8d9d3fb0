// Package cache is the in-process completion result cache: TTL-bounded,
// size-bounded, safe for concurrent use.
package cache

import (
	"crypto/md5"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Key hashing only sees the code nearest the cursor. Edits far from the
// cursor should not invalidate an otherwise identical completion.
const (
	keyBeforeChars = 256
	keyAfterChars  = 128
)

type entry struct {
	value     string
	createdAt time.Time
	expiresAt time.Time
}

// Cache stores cleaned completions keyed by their request fingerprint.
// Expired entries are dropped lazily on read; when the cache is full, the
// oldest quartile is evicted in one batch so inserts stay cheap.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func New(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Key builds the fingerprint for a completion request.
func Key(lang, mode, before, after, filePath string) string {
	if len(before) > keyBeforeChars {
		before = before[len(before)-keyBeforeChars:]
	}
	if len(after) > keyAfterChars {
		after = after[:keyAfterChars]
	}
	raw := fmt.Sprintf("%s|%s|%s|%s|%s", lang, mode, before, after, filePath)
	return fmt.Sprintf("%x", md5.Sum([]byte(raw)))
}

// Get returns the cached completion if present and not expired. An expired
// entry is removed on the spot.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

// Put stores a completion. Empty values are not worth a slot. At the size
// ceiling the oldest quarter of entries is evicted first.
func (c *Cache) Put(key, value string) {
	if value == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	now := c.now()
	c.entries[key] = entry{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
	}
}

// Len reports the current entry count, expired entries included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// evictOldest removes the quarter of entries with the earliest creation
// times. Caller holds the lock.
func (c *Cache) evictOldest() {
	type aged struct {
		key       string
		createdAt time.Time
	}

	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, createdAt: e.createdAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].createdAt.Before(all[j].createdAt)
	})

	drop := len(all) / 4
	if drop < 1 {
		drop = 1
	}
	for _, a := range all[:drop] {
		delete(c.entries, a.key)
	}
}
