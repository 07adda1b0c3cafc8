// Package templates holds the HTML pages, embedded into the binary.
package templates

import (
	"embed"
	"html/template"
	"strconv"
)

//go:embed *.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
}

// Parse panics on error; the templates are compiled in, so a failure is a
// programming error.
func Parse() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "*.tmpl"))
}
