// Package web embeds the operator page: the login and operator templates
// and the stylesheet and script that drive draws over the WebSocket feed.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/css static/js
var staticFS embed.FS

// GetTemplatesFS returns operator.html and login.html
func GetTemplatesFS() fs.FS {
	sub, _ := fs.Sub(templatesFS, "templates")
	return sub
}

// GetStaticFS returns the assets served under /static/
func GetStaticFS() fs.FS {
	sub, _ := fs.Sub(staticFS, "static")
	return sub
}
