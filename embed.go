package inkpress

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// inkpress.css, the default stylesheet referenced by the default views.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
