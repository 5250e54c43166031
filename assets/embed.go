// Package assets embeds the files the site ships with: static files,
// locale catalogs, e-mail templates and the default works list.
package assets

import "embed"

//go:embed static locales mail data
var FS embed.FS

// Default works source URI, resolved against FS.
const DefaultWorksSource = "embed:data/works.json"
