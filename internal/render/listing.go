package render

import (
	"time"

	"github.com/debemdeboas/folio/internal/model"
	"github.com/debemdeboas/folio/internal/util"
)

const (
	DateLayout = "January 2, 2006"

	DefaultRecentCount = 3
	ExcerptLength      = 280
)

// ListingItem is one card of the blog listing.
type ListingItem struct {
	model.Post
	// Featured marks the first card of the listing.
	Featured bool
	Date     string
	Excerpt  string
	Index    int
}

// Listing builds the cards for posts in their current order. The first
// card is the featured one.
func Listing(posts []model.Post) []ListingItem {
	items := make([]ListingItem, 0, len(posts))
	for i, p := range posts {
		items = append(items, ListingItem{
			Post:     p,
			Featured: i == 0,
			Date:     FormatDate(p.Date.Time),
			Excerpt:  util.Excerpt(p.Content, ExcerptLength),
			Index:    i,
		})
	}
	return items
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories counts posts per category, ordered by first appearance.
func Categories(posts []model.Post) []CategoryCount {
	var out []CategoryCount
	index := make(map[string]int)
	for _, p := range posts {
		if i, ok := index[p.Category]; ok {
			out[i].Count++
			continue
		}
		index[p.Category] = len(out)
		out = append(out, CategoryCount{Name: p.Category, Count: 1})
	}
	return out
}

// Recent returns the first n posts. n <= 0 means DefaultRecentCount.
func Recent(posts []model.Post, n int) []model.Post {
	if n <= 0 {
		n = DefaultRecentCount
	}
	if len(posts) < n {
		n = len(posts)
	}
	out := make([]model.Post, n)
	copy(out, posts[:n])
	return out
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
