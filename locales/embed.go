// Package locales embeds the translation dictionaries.
package locales

import "embed"

//go:embed *.json
var FS embed.FS
