package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// ValidationCache records content hashes of files that passed under a given
// validator configuration.
type ValidationCache struct {
	ProjectPath string            `json:"project_path"`
	OptionsHash string            `json:"options_hash"`
	Passed      map[string]string `json:"passed"`
}

// NewValidationCache returns an empty cache bound to optionsHash.
func NewValidationCache(projectPath, optionsHash string) *ValidationCache {
	return &ValidationCache{
		ProjectPath: projectPath,
		OptionsHash: optionsHash,
		Passed:      make(map[string]string),
	}
}

func (c *ValidationCache) IsInvalidated(optionsHash string) bool {
	return c.OptionsHash != optionsHash
}

// Has reports whether path passed with exactly these contents.
func (c *ValidationCache) Has(path string, contents []byte) bool {
	h, ok := c.Passed[path]
	return ok && h == ContentHash(contents)
}

func (c *ValidationCache) Mark(path string, contents []byte) {
	if c.Passed == nil {
		c.Passed = make(map[string]string)
	}
	c.Passed[path] = ContentHash(contents)
}

func (c *ValidationCache) Forget(path string) {
	delete(c.Passed, path)
}

// ContentHash returns the hex sha256 of data.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
