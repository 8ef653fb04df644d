package middleware

import "context"

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyHTMX   ctxKey = "htmx.info"
	ctxKeyLocale ctxKey = "locale"
	ctxKeyExport ctxKey = "export"
)

// WithLang stores the resolved language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKeyLocale, lang)
}

// LangFromContext returns the resolved language, if any.
func LangFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyLocale).(string)
	return v, ok && v != ""
}

// WithExport marks ctx as belonging to a static export render.
func WithExport(ctx context.Context, on bool) context.Context {
	return context.WithValue(ctx, ctxKeyExport, on)
}

// IsExport reports whether the response is rendered for the static export,
// which has no server behind it and therefore no htmx endpoints.
func IsExport(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyExport).(bool)
	return v
}
