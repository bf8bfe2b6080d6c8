// Package views renders the embedded HTML templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).ParseFS(files, "templates/*.html"))

// Render executes the named template into w.
func Render(w io.Writer, name string, data interface{}) error {
	return templates.ExecuteTemplate(w, name, data)
}
