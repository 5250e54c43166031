package site

import "context"

// ThemeKey is the request context key for the resolved Theme.
type ThemeKey struct{}

// ThemeFromContext returns the theme stored by the theme middleware, or light.
func ThemeFromContext(ctx context.Context) Theme {
	if t, ok := ctx.Value(ThemeKey{}).(Theme); ok {
		return t
	}
	return ThemeLight
}
