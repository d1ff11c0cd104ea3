package cache

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/aidtrace/internal/model"
)

// MemoryStore implements run-scoped in-memory caching
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a memory store whose entries never expire
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a document from the cache
func (c *MemoryStore) Get(key string) (model.CachedDocument, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(model.CachedDocument), true
	}
	return model.CachedDocument{}, false
}

// Put stores a document
func (c *MemoryStore) Put(key string, doc model.CachedDocument) error {
	c.cache.Set(key, doc, gocache.NoExpiration)
	return nil
}

// Delete removes a document from the cache
func (c *MemoryStore) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all documents from the cache
func (c *MemoryStore) Clear() error {
	c.cache.Flush()
	return nil
}
