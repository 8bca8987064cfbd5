package model

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/debemdeboas/folio/internal/config"
	"github.com/debemdeboas/folio/internal/theme"
)

type PageData struct {
	SiteName string
	Owner    string
	Tagline  string

	PageURL string

	Theme     string
	ThemeIcon template.HTML

	SyntaxCSS   template.CSS
	SyntaxTheme string

	// Milliseconds before a notification is dismissed by the page script.
	DismissAfterMs int

	Flash *Flash
}

// Flash is a one-shot notification carried across a redirect.
type Flash struct {
	Message string
	Kind    string
}

func NewPageData(r *http.Request, cfg *config.Config) *PageData {
	currentTheme := theme.GetThemeFromRequest(r, cfg.Theme)
	syntaxTheme := theme.GetSyntaxThemeFromRequest(r, cfg.Theme)
	return &PageData{
		SiteName:       cfg.Site.Name,
		Owner:          cfg.Site.Owner,
		Tagline:        cfg.Site.Tagline,
		PageURL:        r.URL.Path,
		Theme:          currentTheme,
		ThemeIcon:      template.HTML(theme.GetThemeIcon(currentTheme)),
		SyntaxTheme:    syntaxTheme,
		SyntaxCSS:      theme.GenerateSyntaxCSS(syntaxTheme),
		DismissAfterMs: cfg.Notify.DismissAfterMs,
	}
}

// IsActive reports whether the navigation link for section should be highlighted.
func (pd *PageData) IsActive(section string) bool {
	if section == "/" {
		return pd.PageURL == "/"
	}
	return strings.HasPrefix(pd.PageURL, section)
}
