// Package web embeds the static pages served by the backend.
package web

import "embed"

//go:embed static/*.html
var Pages embed.FS
