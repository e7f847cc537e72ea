package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anns25/stayhub-web/internal/web/i18n"
)

type localeContextKey struct{}

// LocaleCookieName stores an explicit language choice made through ?hl=.
const LocaleCookieName = "hl"

// Locale resolves the page language: ?hl= override (remembered in a cookie), then the
// cookie, then Accept-Language, then the bundle fallback. Unsupported values are ignored.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	if bundle == nil {
		panic("locale: bundle is required")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("hl"))); q != "" && bundle.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     LocaleCookieName,
					Value:    q,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			if lang == "" {
				if c, err := r.Cookie(LocaleCookieName); err == nil && bundle.IsSupported(c.Value) {
					lang = strings.ToLower(c.Value)
				}
			}
			if lang == "" {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}

			w.Header().Add("Vary", "Accept-Language")
			w.Header().Set("Content-Language", lang)

			ctx := context.WithValue(r.Context(), localeContextKey{}, bundle.For(lang))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocalizerFromContext returns the localizer chosen by Locale. Without the middleware the
// returned localizer echoes keys back.
func LocalizerFromContext(ctx context.Context) i18n.Localizer {
	if loc, ok := ctx.Value(localeContextKey{}).(i18n.Localizer); ok {
		return loc
	}
	return i18n.Localizer{}
}
