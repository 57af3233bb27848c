// Package web carries the HTML render targets for the server.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
