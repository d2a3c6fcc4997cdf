// Package web serves the symptom picker page and the JSON API over HTTP.
// Binds to localhost by default; there is no auth.
package web

import "embed"

//go:embed static/index.html
var staticFS embed.FS
