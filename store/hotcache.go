package store

import (
	"sync/atomic"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Builditluc/wiki-tui/page"
)

// hotCacheSize bounds how many pages the hot cache holds in front of the
// full cache map. It is a working-set bound, not an eviction policy
// for the persisted cache: an entry falling out of the hot cache is still
// in s.cache and on disk.
const hotCacheSize = 32

// hotCache is a small bounded LRU in front of the full page cache, with a
// running count of misses.
type hotCache struct {
	lru       *lru.Cache[uuid.UUID, *page.Page]
	missCount uint64
}

func newHotCache(size int) *hotCache {
	l, err := lru.New[uuid.UUID, *page.Page](size)
	if err != nil {
		// Only returns an error for a non-positive size.
		panic(err)
	}
	return &hotCache{lru: l}
}

func (h *hotCache) Get(id uuid.UUID) (*page.Page, bool) {
	p, ok := h.lru.Get(id)
	if !ok {
		atomic.AddUint64(&h.missCount, 1)
	}
	return p, ok
}

func (h *hotCache) Add(p *page.Page) {
	h.lru.Add(p.ID, p)
}

// MissCount returns the number of misses since the last call, resetting
// the counter.
func (h *hotCache) MissCount() uint64 {
	return atomic.SwapUint64(&h.missCount, 0)
}
