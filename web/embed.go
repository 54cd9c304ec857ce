// Package web holds the page templates and the stylesheet of the inventory web UI.
package web

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed static templates
var content embed.FS

// Assets are the embedded subtrees served or parsed by internal/web.
type Assets struct {
	Static    fs.FS
	Templates fs.FS
}

// Load splits the embedded files into their static and template trees.
func Load() (Assets, error) {
	static, err := fs.Sub(content, "static")
	if err != nil {
		return Assets{}, fmt.Errorf("opening static assets: %w", err)
	}
	templates, err := fs.Sub(content, "templates")
	if err != nil {
		return Assets{}, fmt.Errorf("opening templates: %w", err)
	}
	return Assets{Static: static, Templates: templates}, nil
}
