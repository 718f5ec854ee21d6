package document

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache holds one Document per canonical path.
//
// Entries are created lazily on first request and never evicted: documents
// are assumed immutable once loaded. Concurrent first requests for the same
// canonical path share a single parse.
//
// Thread-safety: All methods are safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	docs  map[string]*Document
	group singleflight.Group
	loads atomic.Int64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{docs: make(map[string]*Document)}
}

// GetOrLoad returns the Document for path, parsing it on first request.
//
// Fails with a CodeNotFound Error when the path does not resolve or cannot
// be read, and with a CodeMalformed Error when parsing fails. Failures are
// not cached; a later call retries.
func (c *Cache) GetOrLoad(path string) (*Document, error) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return nil, err
	}

	if d, ok := c.lookup(canonical); ok {
		return d, nil
	}

	v, err, _ := c.group.Do(canonical, func() (any, error) {
		// A caller that missed the first lookup may arrive after the
		// winning load was stored and the flight closed.
		if d, ok := c.lookup(canonical); ok {
			return d, nil
		}

		d, err := load(canonical)
		c.loads.Add(1)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.docs[canonical] = d
		c.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Document), nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// Loads returns how many parse attempts the cache has made.
func (c *Cache) Loads() int64 {
	return c.loads.Load()
}

func (c *Cache) lookup(canonical string) (*Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.docs[canonical]
	return d, ok
}
