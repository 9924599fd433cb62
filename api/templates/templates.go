package templates

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed core/*.html includes/*.html posts/*.html users/*.html
var files embed.FS

// Post text is rendered as markdown; raw HTML in it is never passed through.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

func Markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(buf.String())
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"formatDate": func(t time.Time) string {
			return t.Format("02 Jan 2006 15:04")
		},
		"add": func(a, b int) int { return a + b },
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
	}
}

// Parse loads every page. Each file defines its template under its path
// relative to this directory, e.g. "posts/index.html".
func Parse() (*template.Template, error) {
	return template.New("yatube").Funcs(Funcs()).ParseFS(files,
		"includes/*.html", "core/*.html", "posts/*.html", "users/*.html")
}

func MustParse() *template.Template {
	return template.Must(Parse())
}
