package network

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// defaultTTL applies to cached pages whose response carried no
// explicit freshness information.
const defaultTTL = 5 * time.Minute

// cacheEntry is a fetched page plus the freshness data from its
// response headers.
type cacheEntry struct {
	page      *Page
	maxAge    time.Duration
	hasMaxAge bool // max-age was explicitly set, including max-age=0
	expires   time.Time
	cachedAt  time.Time
}

// isExpired reports whether the entry is past its freshness lifetime.
func (e *cacheEntry) isExpired() bool {
	if e.hasMaxAge {
		return time.Since(e.cachedAt) > e.maxAge
	}
	if !e.expires.IsZero() {
		return time.Now().After(e.expires)
	}
	return time.Since(e.cachedAt) > defaultTTL
}

// Cache keeps recently fetched pages in memory so back/forward
// navigation is instant. Keys are normalized URLs.
type Cache struct {
	entries map[string]*cacheEntry
	maxSize int
	mu      sync.RWMutex
}

// NewCache creates a cache holding at most maxSize pages.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Cache{
		entries: make(map[string]*cacheEntry),
		maxSize: maxSize,
	}
}

// Get returns a fresh cached page for the key, or nil.
func (c *Cache) Get(key string) *Page {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || entry.isExpired() {
		return nil
	}
	return entry.page
}

// Set stores a page under key, honoring Cache-Control no-store and
// max-age and the Expires header. The oldest entry is evicted at
// capacity.
func (c *Cache) Set(key string, page *Page, headers http.Header) {
	cacheControl := headers.Get("Cache-Control")
	if hasDirective(cacheControl, "no-store") {
		return
	}

	entry := &cacheEntry{
		page:     page,
		cachedAt: time.Now(),
	}
	entry.maxAge, entry.hasMaxAge = parseMaxAge(cacheControl)

	if !entry.hasMaxAge {
		if expires := headers.Get("Expires"); expires != "" {
			if t, err := http.ParseTime(expires); err == nil {
				entry.expires = t
			}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = entry
}

// Delete removes the entry for key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Size returns the number of cached pages.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldest removes the oldest entry. Must be called with c.mu held.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.cachedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.cachedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// parseMaxAge extracts the max-age directive from a Cache-Control
// header value.
func parseMaxAge(value string) (time.Duration, bool) {
	for _, directive := range strings.Split(value, ",") {
		directive = strings.TrimSpace(directive)
		if rest, ok := strings.CutPrefix(directive, "max-age="); ok {
			seconds, err := strconv.Atoi(rest)
			if err != nil || seconds < 0 {
				continue
			}
			return time.Duration(seconds) * time.Second, true
		}
	}
	return 0, false
}

// hasDirective reports whether a Cache-Control header contains the
// given directive.
func hasDirective(cacheControl, directive string) bool {
	for _, d := range strings.Split(cacheControl, ",") {
		if strings.TrimSpace(d) == directive {
			return true
		}
	}
	return false
}
