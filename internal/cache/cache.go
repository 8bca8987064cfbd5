// Package cache provides a thread-safe generic map and the process-wide caches built on it.
package cache

import (
	"html/template"
	"sync"
)

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

// GetOrCompute returns the cached value for key, calling compute on a miss.
// compute runs under the write lock, so concurrent misses compute once.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.items[key]; ok {
		return v
	}
	v := compute()
	c.items[key] = v
	return v
}

// Rendered post bodies, keyed by content hash and syntax theme.
var renderedMarkdownCache = NewCache[string, template.HTML]()

func renderedKey(contentHash, syntaxTheme string) string {
	return contentHash + ":" + syntaxTheme
}

func GetRenderedMarkdown(contentHash, syntaxTheme string) (template.HTML, bool) {
	return renderedMarkdownCache.Get(renderedKey(contentHash, syntaxTheme))
}

func SetRenderedMarkdown(contentHash, syntaxTheme string, html template.HTML) {
	renderedMarkdownCache.Set(renderedKey(contentHash, syntaxTheme), html)
}

func RenderMarkdownOnce(contentHash, syntaxTheme string, render func() template.HTML) template.HTML {
	return renderedMarkdownCache.GetOrCompute(renderedKey(contentHash, syntaxTheme), render)
}

func ClearRenderedMarkdownCache() {
	renderedMarkdownCache.Clear()
}
