package site

import "strings"

// Theme is the visual mode of the page.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// ThemeCookie persists the preference for a year. Scripts may read it.
	ThemeCookie = "theme"
	ThemeMaxAge = 365 * 24 * 60 * 60
)

// ParseTheme accepts "light" or "dark", case-insensitively.
func ParseTheme(raw string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// LoadTheme resolves a stored preference. Missing or unreadable values mean
// no preference, which is light.
func LoadTheme(raw string) Theme {
	if t, ok := ParseTheme(raw); ok {
		return t
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string { return string(t) }
