package cache

import "github.com/ppiankov/aidtrace/internal/model"

// LayeredStore implements a two-layer cache (memory + disk)
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore creates a memory layer over a disk store at diskDir
func NewLayeredStore(diskDir string) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(),
		disk:   NewDiskStore(diskDir),
	}
}

// Get checks memory first, then disk
func (c *LayeredStore) Get(key string) (model.CachedDocument, bool) {
	if doc, found := c.memory.Get(key); found {
		return doc, true
	}

	if doc, found := c.disk.Get(key); found {
		// Promote to memory
		_ = c.memory.Put(key, doc)
		return doc, true
	}

	return model.CachedDocument{}, false
}

// Put stores a document in both layers
func (c *LayeredStore) Put(key string, doc model.CachedDocument) error {
	if err := c.memory.Put(key, doc); err != nil {
		return err
	}
	return c.disk.Put(key, doc)
}

// Delete removes a document from both layers
func (c *LayeredStore) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear removes all documents from both layers
func (c *LayeredStore) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}

// New returns the store for a cache configuration
func New(cfg model.CacheConfig) Store {
	if !cfg.Enabled || cfg.Dir == "" {
		return NopStore{}
	}
	return NewLayeredStore(cfg.Dir)
}
