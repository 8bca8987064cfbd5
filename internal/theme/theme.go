// Package theme handles the light/dark preference, syntax highlighting styles and CSS generation.
package theme

import (
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/debemdeboas/folio/internal/cache"
	"github.com/debemdeboas/folio/internal/config"
)

// Normalize maps anything but the two supported themes to fallback.
func Normalize(theme, fallback string) string {
	switch theme {
	case config.LightTheme, config.DarkTheme:
		return theme
	}
	if fallback == config.DarkTheme {
		return config.DarkTheme
	}
	return config.LightTheme
}

func GetThemeFromRequest(r *http.Request, cfg config.ThemeConfig) string {
	if cookie, err := r.Cookie(config.CookieTheme); err == nil {
		return Normalize(cookie.Value, cfg.Default)
	}
	return Normalize(cfg.Default, config.DefaultTheme)
}

// Toggle returns the opposite of theme.
func Toggle(theme string) string {
	if theme == config.DarkTheme {
		return config.LightTheme
	}
	return config.DarkTheme
}

func GetDefaultSyntaxTheme(theme string, cfg config.ThemeConfig) string {
	return map[string]string{
		config.LightTheme: cfg.SyntaxHighlighting.DefaultLight,
		config.DarkTheme:  cfg.SyntaxHighlighting.DefaultDark,
	}[theme]
}

func GetSyntaxThemeFromRequest(r *http.Request, cfg config.ThemeConfig) string {
	if cookie, err := r.Cookie(config.CookieSyntaxTheme); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return GetDefaultSyntaxTheme(GetThemeFromRequest(r, cfg), cfg)
}

func GetSyntaxThemes() []string {
	styleNames := styles.Names()
	slices.Sort(styleNames)
	return styleNames
}

func GetFormatter() *html.Formatter {
	return html.New(
		html.WithClasses(true),
		html.TabWidth(4),
		html.WrapLongLines(true),
	)
}

// GenerateSyntaxCSS returns the chroma stylesheet for theme, falling back to
// chroma's default style for unknown names.
func GenerateSyntaxCSS(theme string) template.CSS {
	if css, ok := cache.GetSyntaxCSS(theme); ok {
		return css
	}

	var buf strings.Builder
	style := styles.Get(theme)

	bg := style.Get(chroma.Background)
	if !bg.Colour.IsSet() {
		// Chroma leaves the text colour unset for some light styles
		luminance := (0.299*float64(bg.Background.Red()) +
			0.587*float64(bg.Background.Green()) +
			0.114*float64(bg.Background.Blue())) / 255
		if luminance > 0.5 {
			buf.WriteString(".chroma { color: #181818; }\n")
		}
	}

	if err := GetFormatter().WriteCSS(&buf, style); err != nil {
		return ""
	}
	css := template.CSS(buf.String())
	cache.SetSyntaxCSS(theme, css)
	return css
}

// GetThemeIcon returns the toggle icon shown while theme is active.
func GetThemeIcon(theme string) string {
	if theme == config.DarkTheme {
		return config.DarkThemeIcon
	}
	return config.LightThemeIcon
}
