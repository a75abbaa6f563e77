package inkpress

import (
	"sync"
	"time"
)

// TagCache is an in-memory cache of the tag ledger with TTL, used by the
// sidebar tag cloud so listing pages don't hit the tags table on every
// request. Staleness is tolerated; writes invalidate.
type TagCache struct {
	mu      sync.RWMutex
	tags    []Tag
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewTagCache creates a TagCache backed by the given Store.
func NewTagCache(s *Store, ttl time.Duration) *TagCache {
	return &TagCache{store: s, ttl: ttl}
}

func (c *TagCache) valid() bool {
	return c.tags != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *TagCache) Invalidate() {
	c.mu.Lock()
	c.tags = nil
	c.mu.Unlock()
}

// ListTags returns the cached tag ledger, reloading it when stale.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *TagCache) ListTags() ([]Tag, error) {
	c.mu.RLock()
	if c.valid() {
		tags := c.tags
		c.mu.RUnlock()
		return tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.tags, nil
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []Tag{}
	}
	c.tags = tags
	c.fetched = time.Now()
	return c.tags, nil
}

// CommentCounts caches per-entry comment totals. The cache is best-effort:
// a posted comment bumps the cached value, a miss triggers a bounded
// recount, and readers must treat the result as possibly stale.
type CommentCounts struct {
	mu        sync.Mutex
	counts    map[int64]commentCount
	store     *Store
	scanLimit int
}

type commentCount struct {
	count int
	exact bool
}

// NewCommentCounts creates a CommentCounts cache. scanLimit bounds how many
// comments a recount will scan before reporting an inexact total.
func NewCommentCounts(s *Store, scanLimit int) *CommentCounts {
	return &CommentCounts{
		counts:    make(map[int64]commentCount),
		store:     s,
		scanLimit: scanLimit,
	}
}

// Get returns the comment count for an entry and whether it is exact,
// recounting from the store on a cache miss.
func (c *CommentCounts) Get(entryIndex int64) (int, bool, error) {
	c.mu.Lock()
	if cc, ok := c.counts[entryIndex]; ok {
		c.mu.Unlock()
		return cc.count, cc.exact, nil
	}
	c.mu.Unlock()

	count, exact, err := c.store.CountComments(entryIndex, c.scanLimit)
	if err != nil {
		return 0, false, err
	}
	c.mu.Lock()
	c.counts[entryIndex] = commentCount{count: count, exact: exact}
	c.mu.Unlock()
	return count, exact, nil
}

// Bump records a newly posted comment. Entries not yet cached are left
// alone; their first read recounts anyway.
func (c *CommentCounts) Bump(entryIndex int64) {
	c.mu.Lock()
	if cc, ok := c.counts[entryIndex]; ok {
		cc.count++
		c.counts[entryIndex] = cc
	}
	c.mu.Unlock()
}

// Invalidate drops the cached count for an entry.
func (c *CommentCounts) Invalidate(entryIndex int64) {
	c.mu.Lock()
	delete(c.counts, entryIndex)
	c.mu.Unlock()
}
