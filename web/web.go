// Package web embeds the static countdown page.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Static is the site root: index.html and its assets.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return sub
}
