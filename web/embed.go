// Package web embeds the dashboard's static assets so the binary serves and
// renders them without external files.
//
// Usage in the API server:
//
//	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.StaticFS())))
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static
var assets embed.FS

// StylesheetPath is the dashboard stylesheet's path inside StaticFS.
const StylesheetPath = "dashboard.css"

// StaticFS returns a filesystem rooted at the embedded static/ directory.
// This is ready to use with http.FileServerFS or http.FS.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		log.Fatalf("web.StaticFS: %v", err)
	}
	return sub
}

// Stylesheet returns the dashboard CSS, inlined into rendered HTML.
func Stylesheet() string {
	b, err := fs.ReadFile(assets, "static/"+StylesheetPath)
	if err != nil {
		log.Fatalf("web.Stylesheet: %v", err)
	}
	return string(b)
}
