package web

import "embed"

// Static embeds the frontend page and its assets.
//
//go:embed static
var Static embed.FS
