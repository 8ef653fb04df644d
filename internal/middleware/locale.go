package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Elsevier11/bbt-consulting-sito/internal/i18n"
)

const localeCookie = "hl"

// Locale resolves the preferred language from the hl query parameter, then
// the hl cookie, then Accept-Language. An explicit hl choice is remembered in
// the cookie. Unsupported values are ignored.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("hl"))); q != "" && bundle.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     localeCookie,
					Value:    q,
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
					Expires:  time.Now().Add(365 * 24 * time.Hour),
				})
			} else if c, err := r.Cookie(localeCookie); err == nil && bundle.IsSupported(c.Value) {
				lang = strings.ToLower(c.Value)
			} else {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}

			w.Header().Set("Content-Language", lang)
			w.Header().Add("Vary", "Accept-Language")
			w.Header().Add("Vary", "Cookie")
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// Lang returns the language resolved for r, or fallback when the Locale
// middleware did not run.
func Lang(r *http.Request, fallback string) string {
	if l, ok := LangFromContext(r.Context()); ok {
		return l
	}
	return fallback
}
