package cms

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const frontMatterFence = "---"

// splitFrontMatter separates a leading YAML block fenced by "---" lines from
// the markdown body. Documents without one are returned as body only.
func splitFrontMatter(doc string) (front, body string) {
	doc = strings.ReplaceAll(strings.TrimPrefix(doc, "\ufeff"), "\r\n", "\n")
	first, rest, ok := strings.Cut(doc, "\n")
	if !ok || strings.TrimSpace(first) != frontMatterFence {
		return "", doc
	}
	var fm []string
	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		if strings.TrimSpace(line) == frontMatterFence {
			return strings.Join(fm, "\n"), strings.TrimLeft(rest, "\n")
		}
		fm = append(fm, line)
	}
	return "", doc
}

var contentDateLayouts = []string{time.RFC3339, time.DateOnly, "2006/01/02", "02/01/2006"}

// parseContentDate accepts the date formats editors use in front matter. The
// zero time means unknown.
func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	for _, layout := range contentDateLayouts {
		if v == "" {
			break
		}
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// prettifySlug turns "cookie-policy" into "Cookie Policy".
func prettifySlug(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

// cleanSlug lowercases slug and rejects anything that could leave the
// content directory.
func cleanSlug(slug string) (string, bool) {
	slug = strings.ToLower(strings.Trim(strings.TrimSpace(slug), "/"))
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return "", false
	}
	return slug, true
}
