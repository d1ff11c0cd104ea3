// Package cache stores fetched documents and redirect mappings keyed by a
// content address of the requested URL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ppiankov/aidtrace/internal/model"
)

// Store defines the interface for document caching. Entries are immutable
// once written; writing the same key twice stores the same content.
type Store interface {
	Get(key string) (model.CachedDocument, bool)
	Put(key string, doc model.CachedDocument) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a URL
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}

// RedirectKey generates the key of a search redirect mapping
func RedirectKey(searchURL string) string {
	return CacheKey("redirect:" + searchURL)
}

// NopStore never stores anything
type NopStore struct{}

func (NopStore) Get(string) (model.CachedDocument, bool) { return model.CachedDocument{}, false }
func (NopStore) Put(string, model.CachedDocument) error  { return nil }
func (NopStore) Delete(string) error                     { return nil }
func (NopStore) Clear() error                            { return nil }
