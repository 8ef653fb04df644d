// Package templates embeds the html/template sources of the site.
package templates

import "embed"

//go:embed *.tmpl partials/*.tmpl pages/*.tmpl
var FS embed.FS
