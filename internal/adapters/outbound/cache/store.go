package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vnupipe/vnupipe/internal/domain"
)

// Store is a file-based implementation of domain.CacheStore.
type Store struct{}

var _ domain.CacheStore = (*Store)(nil)

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads the validation cache from disk. Returns (nil, nil) if no cache exists.
func (s *Store) Load(projectPath string) (*domain.ValidationCache, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var cache domain.ValidationCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("decoding cache: %w", err)
	}
	if cache.Passed == nil {
		cache.Passed = make(map[string]string)
	}
	return &cache, nil
}

// Save writes the validation cache to disk, creating directories as needed.
func (s *Store) Save(cache *domain.ValidationCache) error {
	if err := os.MkdirAll(cacheDir(cache.ProjectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}

	tmp := cachePath(cache.ProjectPath) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, cachePath(cache.ProjectPath))
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".vnupipe", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "passed.json")
}
