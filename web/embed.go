package web

import (
	"embed"
	"html/template"
)

//go:embed templates
var files embed.FS

// Templates parses the embedded page templates. Panics on a malformed
// template, which can only happen at build time.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "templates/*.html"))
}
