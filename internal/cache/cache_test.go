package cache

import (
	"fmt"
	"html/template"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewCache(t *testing.T) {
	cache := NewCache[string, string]()
	if cache == nil {
		t.Fatal("Expected non-nil cache")
	}
	if cache.items == nil {
		t.Fatal("Expected items map to be initialized")
	}
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache, got %d items", cache.Len())
	}
}

func TestCache_BasicOperations(t *testing.T) {
	cache := NewCache[string, string]()

	t.Run("Set and Get", func(t *testing.T) {
		cache.Set("test-key", "test-value")

		got, exists := cache.Get("test-key")
		if !exists {
			t.Error("Expected key to exist")
		}
		if got != "test-value" {
			t.Errorf("Expected %q, got %q", "test-value", got)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		if _, exists := cache.Get("non-existent"); exists {
			t.Error("Expected key to not exist")
		}
	})

	t.Run("Overwrite existing key", func(t *testing.T) {
		cache.Set("overwrite-key", "value1")
		cache.Set("overwrite-key", "value2")

		if got, _ := cache.Get("overwrite-key"); got != "value2" {
			t.Errorf("Expected %q, got %q", "value2", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		cache.Set("delete-key", "v")
		cache.Delete("delete-key")
		cache.Delete("never-there")

		if _, exists := cache.Get("delete-key"); exists {
			t.Error("Expected key to be deleted")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		cache.Set("a", "1")
		cache.Clear()
		if cache.Len() != 0 {
			t.Errorf("Expected empty cache after Clear, got %d items", cache.Len())
		}
	})
}

func TestCache_GetOrCompute(t *testing.T) {
	cache := NewCache[int, string]()
	var calls atomic.Int32

	compute := func() string {
		calls.Add(1)
		return "computed"
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := cache.GetOrCompute(1, compute); got != "computed" {
				t.Errorf("Expected 'computed', got %q", got)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("Expected compute to run once, ran %d times", calls.Load())
	}
}

func TestCache_Concurrency(t *testing.T) {
	cache := NewCache[string, int]()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", id, j)
				cache.Set(key, j)
				cache.Get(key)
				if j%10 == 0 {
					cache.Delete(key)
				}
			}
		}(i)
	}
	wg.Wait()

	if cache.Len() != 20*90 {
		t.Errorf("Expected %d items, got %d", 20*90, cache.Len())
	}
}

func TestRenderedMarkdownCache(t *testing.T) {
	ClearRenderedMarkdownCache()

	t.Run("Keyed by hash and theme", func(t *testing.T) {
		SetRenderedMarkdown("hash", "github", template.HTML("<p>github</p>"))
		SetRenderedMarkdown("hash", "monokai", template.HTML("<p>monokai</p>"))

		got1, found1 := GetRenderedMarkdown("hash", "github")
		got2, found2 := GetRenderedMarkdown("hash", "monokai")
		if !found1 || !found2 {
			t.Fatal("Expected both theme variants to be cached")
		}
		if got1 == got2 {
			t.Error("Expected different HTML per theme")
		}
	})

	t.Run("RenderMarkdownOnce", func(t *testing.T) {
		calls := 0
		render := func() template.HTML {
			calls++
			return "<p>once</p>"
		}
		RenderMarkdownOnce("once", "github", render)
		got := RenderMarkdownOnce("once", "github", render)

		if calls != 1 {
			t.Errorf("Expected one render, got %d", calls)
		}
		if got != "<p>once</p>" {
			t.Errorf("Unexpected cached HTML %q", got)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		ClearRenderedMarkdownCache()
		if _, found := GetRenderedMarkdown("hash", "github"); found {
			t.Error("Expected cache to be cleared")
		}
	})
}

func TestStaticAndSyntaxCaches(t *testing.T) {
	SetStaticHash("/static/app.js", "abc")
	if hash, ok := GetStaticHash("/static/app.js"); !ok || hash != "abc" {
		t.Errorf("Expected static hash 'abc', got %q (found=%v)", hash, ok)
	}

	SetSyntaxCSS("test-theme", ".chroma{}")
	if css, ok := GetSyntaxCSS("test-theme"); !ok || css != ".chroma{}" {
		t.Errorf("Expected syntax CSS, got %q (found=%v)", css, ok)
	}
}

func BenchmarkRenderedMarkdownCache_Get(b *testing.B) {
	for i := 0; i < 1000; i++ {
		SetRenderedMarkdown(fmt.Sprintf("hash-%d", i), "github", "<p>x</p>")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GetRenderedMarkdown(fmt.Sprintf("hash-%d", i%1000), "github")
	}
}
