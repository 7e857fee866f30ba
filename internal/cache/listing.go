// Package cache provides the in-memory listing cache backing gallery reads.
// It is a wrapper over hashicorp/golang-lru/v2/expirable keyed by caller.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"photovault/internal/gallery"
)

// ListingCache caches per-caller file listings and quota lookups with a
// TTL. Entries are written only after the backing registry acknowledged
// the data, so a hit never serves values the registry has not seen.
type ListingCache struct {
	files  *expirable.LRU[string, []gallery.FileRecord]
	quotas *expirable.LRU[string, int64]
}

// NewListingCache creates a cache holding at most maxEntries callers,
// each entry expiring ttl after it was added.
func NewListingCache(maxEntries int, ttl time.Duration) *ListingCache {
	return &ListingCache{
		files:  expirable.NewLRU[string, []gallery.FileRecord](maxEntries, nil, ttl),
		quotas: expirable.NewLRU[string, int64](maxEntries, nil, ttl),
	}
}

// Files returns the cached listing for caller, or (nil, false) on a miss.
// The returned slice is a copy; callers may reorder or filter it freely.
func (c *ListingCache) Files(caller string) ([]gallery.FileRecord, bool) {
	records, ok := c.files.Get(caller)
	if !ok {
		return nil, false
	}
	out := make([]gallery.FileRecord, len(records))
	copy(out, records)
	return out, true
}

// SetFiles stores the listing for caller. The cache keeps its own copy.
func (c *ListingCache) SetFiles(caller string, files []gallery.FileRecord) {
	records := make([]gallery.FileRecord, len(files))
	copy(records, files)
	c.files.Add(caller, records)
}

// QuotaBytes returns the cached quota for caller, or (0, false) on a miss.
func (c *ListingCache) QuotaBytes(caller string) (int64, bool) {
	return c.quotas.Get(caller)
}

// SetQuotaBytes stores the quota for caller.
func (c *ListingCache) SetQuotaBytes(caller string, quota int64) {
	c.quotas.Add(caller, quota)
}

// Invalidate drops all cached entries for caller. Other callers' entries
// are untouched.
func (c *ListingCache) Invalidate(caller string) {
	c.files.Remove(caller)
	c.quotas.Remove(caller)
}

var _ gallery.ListingCache = (*ListingCache)(nil)
