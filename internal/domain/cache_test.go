package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vnupipe/vnupipe/internal/domain"
)

func TestValidationCache_IsInvalidated(t *testing.T) {
	cache := domain.NewValidationCache("/p", "abc123")

	t.Run("same hash", func(t *testing.T) {
		assert.False(t, cache.IsInvalidated("abc123"))
	})

	t.Run("different hash", func(t *testing.T) {
		assert.True(t, cache.IsInvalidated("changed"))
	})
}

func TestValidationCache_MarkHasForget(t *testing.T) {
	cache := &domain.ValidationCache{}
	contents := []byte("<!DOCTYPE html><title>x</title>")

	assert.False(t, cache.Has("a.html", contents))

	cache.Mark("a.html", contents)
	assert.True(t, cache.Has("a.html", contents))
	assert.False(t, cache.Has("a.html", []byte("changed")))

	cache.Forget("a.html")
	assert.False(t, cache.Has("a.html", contents))
}

func TestContentHash_Stable(t *testing.T) {
	assert.Equal(t, domain.ContentHash([]byte("x")), domain.ContentHash([]byte("x")))
	assert.Len(t, domain.ContentHash(nil), 64)
}
