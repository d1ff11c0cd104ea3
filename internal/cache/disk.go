package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/aidtrace/internal/model"
)

// DiskStore implements persistent caching with one JSON file per key
type DiskStore struct {
	dir string
}

// NewDiskStore creates a disk store rooted at dir. The directory is
// created on first write.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Dir returns the cache directory
func (c *DiskStore) Dir() string {
	return c.dir
}

// Get retrieves a document. Unreadable or corrupt files are misses.
func (c *DiskStore) Get(key string) (model.CachedDocument, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return model.CachedDocument{}, false
	}

	var doc model.CachedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.CachedDocument{}, false
	}
	if doc.Kind == "" {
		return model.CachedDocument{}, false
	}

	return doc, true
}

// Put writes a document atomically via a temp file and rename
func (c *DiskStore) Put(key string, doc model.CachedDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close cache file: %w", err)
	}
	if err := os.Rename(tmpName, c.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename cache file: %w", err)
	}

	return nil
}

// Delete removes a document
func (c *DiskStore) Delete(key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes all cached files
func (c *DiskStore) Clear() error {
	return os.RemoveAll(c.dir)
}

// path generates the file path for a cache key
func (c *DiskStore) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}
