// Package web embeds the page templates and static assets served by the
// application, so the binary ships self-contained.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var content embed.FS

func sub(dir string) fs.FS {
	f, err := fs.Sub(content, dir)
	if err != nil {
		log.Fatalf("embedded %s missing: %v", dir, err)
	}
	return f
}

// StaticFS holds the stylesheet and other static files, rooted at static/.
func StaticFS() fs.FS {
	return sub("static")
}

// TemplatesFS holds the HTML page templates, rooted at templates/.
func TemplatesFS() fs.FS {
	return sub("templates")
}
