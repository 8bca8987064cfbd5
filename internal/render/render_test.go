package render

import (
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/debemdeboas/folio/internal/cache"
	"github.com/debemdeboas/folio/internal/model"
	"github.com/debemdeboas/folio/internal/util"
)

func post(id int64, title, category string, day int) model.Post {
	return model.Post{
		ID:       model.PostID(id),
		Title:    title,
		Content:  "Content of " + title,
		Category: category,
		Date:     model.NewTimestamp(time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)),
	}
}

func TestListing(t *testing.T) {
	posts := []model.Post{
		post(3, "Third", "CSS", 15),
		post(2, "Second", "Tutorial", 10),
		post(1, "First", "CSS", 5),
	}

	items := Listing(posts)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	for i, item := range items {
		if item.ID != posts[i].ID {
			t.Errorf("Item %d: expected id %d, got %d", i, posts[i].ID, item.ID)
		}
		if item.Featured != (i == 0) {
			t.Errorf("Item %d: featured=%v", i, item.Featured)
		}
	}
	if items[0].Date != "January 15, 2025" {
		t.Errorf("Unexpected date %q", items[0].Date)
	}

	if len(Listing(nil)) != 0 {
		t.Error("Expected empty listing")
	}
}

func TestListingExcerpt(t *testing.T) {
	p := post(1, "Long", "CSS", 1)
	p.Content = strings.Repeat("word ", 200)

	item := Listing([]model.Post{p})[0]
	if len([]rune(item.Excerpt)) > ExcerptLength+1 {
		t.Errorf("Excerpt too long: %d runes", len([]rune(item.Excerpt)))
	}
	if !strings.HasSuffix(item.Excerpt, "…") {
		t.Errorf("Expected ellipsis, got %q", item.Excerpt)
	}
}

func TestCategories(t *testing.T) {
	posts := []model.Post{
		post(5, "a", "Tutorial", 5),
		post(4, "b", "CSS", 4),
		post(3, "c", "Tutorial", 3),
		post(2, "d", "Web Design", 2),
		post(1, "e", "CSS", 1),
	}

	got := Categories(posts)
	want := []CategoryCount{
		{"Tutorial", 2},
		{"CSS", 2},
		{"Web Design", 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if Categories(nil) != nil {
		t.Error("Expected no categories for no posts")
	}
}

func TestRecent(t *testing.T) {
	posts := []model.Post{
		post(5, "a", "x", 5),
		post(4, "b", "x", 4),
		post(3, "c", "x", 3),
		post(2, "d", "x", 2),
	}

	tests := []struct {
		name string
		in   []model.Post
		n    int
		want []model.PostID
	}{
		{"default count", posts, 0, []model.PostID{5, 4, 3}},
		{"explicit count", posts, 2, []model.PostID{5, 4}},
		{"fewer posts than n", posts[:1], 3, []model.PostID{5}},
		{"empty", nil, 3, []model.PostID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recent(tt.in, tt.n)
			ids := []model.PostID{}
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, ids)
			}
		})
	}

	t.Run("Result is a copy", func(t *testing.T) {
		got := Recent(posts, 1)
		got[0].Title = "changed"
		if posts[0].Title == "changed" {
			t.Error("Recent must not alias its input")
		}
	})
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC), "January 5, 2025"},
		{time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC), "December 31, 2024"},
		{time.Date(2025, time.March, 1, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)), "February 28, 2025"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	cache.ClearRenderedMarkdownCache()

	tests := []struct {
		name     string
		content  string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis",
			content:  "Some *markdown* here",
			contains: []string{"<em>markdown</em>"},
		},
		{
			name:     "raw html is dropped",
			content:  "Hello <script>alert('xss')</script> world\n\n<div onclick=\"x()\">block</div>",
			contains: []string{"Hello"},
			excludes: []string{"<script", "onclick"},
		},
		{
			name:     "code block is highlighted",
			content:  "```go\nfunc main() {}\n```",
			contains: []string{`class="highlight"`, "chroma"},
		},
		{
			name:     "code is escaped",
			content:  "```\n<b>bold</b>\n```",
			contains: []string{"&lt;"},
			excludes: []string{"<b>bold</b>"},
		},
		{
			name:     "javascript links are not followed",
			content:  "[click](javascript:alert(1))",
			excludes: []string{`href="javascript:`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Markdown(tt.content, "github"))
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Expected output to contain %q, got %q", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Expected output not to contain %q, got %q", s, got)
				}
			}
		})
	}
}

func TestMarkdownCached(t *testing.T) {
	cache.ClearRenderedMarkdownCache()
	content := "# Cached\n\nbody"

	first := Markdown(content, "github")
	cached, ok := cache.GetRenderedMarkdown(util.ContentHashString(content), "github")
	if !ok {
		t.Fatal("Expected rendered markdown to be cached")
	}
	if cached != first {
		t.Errorf("Cached value mismatch: %q vs %q", cached, first)
	}

	if _, ok := cache.GetRenderedMarkdown(util.ContentHashString(content), "monokai"); ok {
		t.Error("Expected cache entries to be per syntax theme")
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Markdown(content, "github"); got != first {
				t.Errorf("Concurrent render mismatch")
			}
		}()
	}
	wg.Wait()
}

func TestHighlightCode(t *testing.T) {
	got := HighlightCode("package main", "go", "monokai")
	if !strings.Contains(got, "chroma") {
		t.Errorf("Expected chroma markup, got %q", got)
	}

	plain := HighlightCode("<tag>", "no-such-language", "monokai")
	if strings.Contains(plain, "<tag>") {
		t.Errorf("Expected escaped output, got %q", plain)
	}
}
