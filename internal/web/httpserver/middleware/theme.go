package middleware

import (
	"context"
	"net/http"
	"strings"
)

type themeContextKey struct{}

// ThemeCookieName holds the visitor's light/dark preference.
const ThemeCookieName = "theme"

// Theme attaches the colour scheme for the auth container to the request context.
// A valid theme cookie wins over the configured default; anything else falls back to "light".
func Theme(defaultTheme string) func(http.Handler) http.Handler {
	fallback := normaliseTheme(defaultTheme)
	if fallback == "" {
		fallback = "light"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			theme := fallback
			if c, err := r.Cookie(ThemeCookieName); err == nil {
				if v := normaliseTheme(c.Value); v != "" {
					theme = v
				}
			}
			ctx := context.WithValue(r.Context(), themeContextKey{}, theme)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ThemeFromContext returns the resolved theme, defaulting to "light".
func ThemeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "light"
	}
	if v, ok := ctx.Value(themeContextKey{}).(string); ok && v != "" {
		return v
	}
	return "light"
}

func normaliseTheme(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	default:
		return ""
	}
}
