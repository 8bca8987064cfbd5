package config

const (
	LightTheme string = "light"
	DarkTheme  string = "dark"

	LightThemeIcon string = `<i class="bi bi-sun-fill" id="themeIcon"></i>`
	DarkThemeIcon  string = `<i class="bi bi-moon-fill" id="themeIcon"></i>`

	DefaultDarkSyntaxTheme  string = "gruvbox"
	DefaultLightSyntaxTheme string = "catppuccin-latte"

	DefaultTheme string = LightTheme
)
