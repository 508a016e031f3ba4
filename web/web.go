// Package web holds the embedded HTML templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded template set. Each page template is named by
// its file name; shared snippets are defined in partials.html.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		// seq yields 1..n for positional member slots.
		"seq": func(n int) []int {
			s := make([]int, n)
			for i := range s {
				s[i] = i + 1
			}
			return s
		},
		// add1 turns a zero-based range index into a 1-based slot number.
		"add1": func(i int) int { return i + 1 },
	}).ParseFS(templatesFS, "templates/*.html")
}
