// Package content embeds the legal pages and the case-study catalogue.
package content

import "embed"

//go:embed legal case-studies
var FS embed.FS
