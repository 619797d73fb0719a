package domain

import "time"

// CacheEntry is a single browser cache record reduced to what classification needs.
type CacheEntry struct {
	URL      string
	LastUsed time.Time
}

// CacheSnapshot is one complete read of the cache index.
// Hash is only meaningful for comparing two reads taken moments apart.
type CacheSnapshot struct {
	Entries []CacheEntry
	Hash    uint64
}
