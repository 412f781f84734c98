// Package web holds the browser assets served by the HTTP server.
package web

import (
	"embed"
	"io/fs"
)

//go:embed public
var assets embed.FS

// PublicFS returns the embedded public tree rooted at its top directory.
func PublicFS() fs.FS {
	sub, err := fs.Sub(assets, "public")
	if err != nil {
		panic(err)
	}
	return sub
}
