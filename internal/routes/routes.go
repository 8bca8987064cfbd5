// Package routes defines HTTP route constants for the application.
package routes

const (
	RobotsPath = "/robots.txt"
	RootPath   = "/{$}"

	// Theme
	ThemeToggle    = "/theme/toggle"
	SyntaxThemeGet = "/syntax-theme/{theme}"

	// SSE
	EventsPath = "/events"

	// Pages
	BlogPath     = "/blog"
	BlogPostPath = "/blog/posts/{id}"

	// Form bridge
	BlogPosts      = "/blog/posts"
	BlogPostEdit   = "/blog/posts/{id}/edit"
	BlogPostDelete = "/blog/posts/{id}/delete"

	ContactPath = "/contact"

	// API
	APIPosts      = "/api/posts"
	APIPost       = "/api/posts/{id}"
	APICategories = "/api/categories"
)

// PostPath is the page of a single post.
func PostPath(id string) string {
	return BlogPosts + "/" + id
}
