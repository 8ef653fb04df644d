package observability

import (
	"strings"
	"unicode"
)

const (
	maxPathLen   = 180
	maxMethodLen = 10
)

// clip removes control characters from value and cuts it to at most n runes.
func clip(value string, n int) string {
	value = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
	if runes := []rune(value); len(runes) > n {
		return string(runes[:n])
	}
	return value
}

// SanitizePath cleans a request path or route pattern for logging.
func SanitizePath(path string) string {
	if path == "" {
		return "/"
	}
	return clip(path, maxPathLen)
}

// SanitizeMethod cleans an HTTP method for logging.
func SanitizeMethod(method string) string {
	return clip(method, maxMethodLen)
}
