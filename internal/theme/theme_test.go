package theme

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/debemdeboas/folio/internal/cache"
	"github.com/debemdeboas/folio/internal/config"
)

var testThemeConfig = config.ThemeConfig{
	Default: config.LightTheme,
	SyntaxHighlighting: config.SyntaxConfig{
		DefaultDark:  "gruvbox",
		DefaultLight: "catppuccin-latte",
	},
}

func TestGenerateSyntaxCSS(t *testing.T) {
	testCases := []struct {
		name  string
		theme string
	}{
		{name: "Valid Theme - Monokai", theme: "monokai"},
		{name: "Valid Theme - Gruvbox", theme: "gruvbox"},
		{name: "Non-existent Theme - Fallback", theme: "nonexistent-theme-12345"},
		{name: "Empty Theme Name", theme: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			css1 := GenerateSyntaxCSS(tc.theme)
			if css1 == "" {
				t.Fatal("Expected CSS content, but got empty")
			}
			if !strings.Contains(string(css1), ".chroma") {
				t.Errorf("Expected CSS to contain '.chroma' class")
			}

			cachedCSS, found := cache.GetSyntaxCSS(tc.theme)
			if !found {
				t.Errorf("Expected CSS to be in cache, but it wasn't")
			} else if cachedCSS != css1 {
				t.Errorf("Cached CSS does not match generated CSS")
			}

			if css2 := GenerateSyntaxCSS(tc.theme); css1 != css2 {
				t.Errorf("Expected second call to return identical CSS from cache")
			}
		})
	}
}

func TestGetSyntaxThemes(t *testing.T) {
	themes := GetSyntaxThemes()
	if len(themes) == 0 {
		t.Fatal("Expected at least one syntax theme")
	}
	if !slices.IsSorted(themes) {
		t.Error("Expected syntax themes to be sorted")
	}
	for _, name := range []string{"monokai", "gruvbox"} {
		if !slices.Contains(themes, name) {
			t.Errorf("Expected common theme %s to be available", name)
		}
	}
}

func TestGetThemeFromRequest(t *testing.T) {
	testCases := []struct {
		name          string
		cookieValue   string
		hasCookie     bool
		expectedTheme string
	}{
		{name: "No cookie - use default", expectedTheme: config.LightTheme},
		{name: "Light cookie", cookieValue: "light", hasCookie: true, expectedTheme: "light"},
		{name: "Dark cookie", cookieValue: "dark", hasCookie: true, expectedTheme: "dark"},
		{name: "Unknown cookie - use default", cookieValue: "sepia", hasCookie: true, expectedTheme: "light"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.hasCookie {
				req.AddCookie(&http.Cookie{Name: config.CookieTheme, Value: tc.cookieValue})
			}

			if got := GetThemeFromRequest(req, testThemeConfig); got != tc.expectedTheme {
				t.Errorf("Expected theme %s, got %s", tc.expectedTheme, got)
			}
		})
	}
}

func TestGetSyntaxThemeFromRequest(t *testing.T) {
	testCases := []struct {
		name          string
		themeCookie   string
		syntaxCookie  string
		expectedTheme string
	}{
		{name: "No cookies", expectedTheme: "catppuccin-latte"},
		{name: "Dark theme cookie", themeCookie: "dark", expectedTheme: "gruvbox"},
		{name: "Syntax cookie wins", themeCookie: "dark", syntaxCookie: "monokai", expectedTheme: "monokai"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.themeCookie != "" {
				req.AddCookie(&http.Cookie{Name: config.CookieTheme, Value: tc.themeCookie})
			}
			if tc.syntaxCookie != "" {
				req.AddCookie(&http.Cookie{Name: config.CookieSyntaxTheme, Value: tc.syntaxCookie})
			}

			if got := GetSyntaxThemeFromRequest(req, testThemeConfig); got != tc.expectedTheme {
				t.Errorf("Expected syntax theme %s, got %s", tc.expectedTheme, got)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	if got := Toggle(config.LightTheme); got != config.DarkTheme {
		t.Errorf("Expected light to toggle to dark, got %s", got)
	}
	if got := Toggle(config.DarkTheme); got != config.LightTheme {
		t.Errorf("Expected dark to toggle to light, got %s", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("bogus", config.DarkTheme); got != config.DarkTheme {
		t.Errorf("Expected fallback dark, got %s", got)
	}
	if got := Normalize("bogus", "also-bogus"); got != config.LightTheme {
		t.Errorf("Expected light when fallback is unknown, got %s", got)
	}
}

func TestGetThemeIcon(t *testing.T) {
	if icon := GetThemeIcon(config.DarkTheme); icon != config.DarkThemeIcon {
		t.Errorf("Expected moon icon for dark theme, got %s", icon)
	}
	if icon := GetThemeIcon(config.LightTheme); icon != config.LightThemeIcon {
		t.Errorf("Expected sun icon for light theme, got %s", icon)
	}
}

func BenchmarkGenerateSyntaxCSS(b *testing.B) {
	GenerateSyntaxCSS("monokai")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		GenerateSyntaxCSS("monokai")
	}
}
