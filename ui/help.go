package ui

import (
	"html/template"
	"io/fs"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderHelp turns the embedded help.md into the landing page blurb
func renderHelp(files fs.FS) (template.HTML, error) {
	md, err := fs.ReadFile(files, "help.md")
	if err != nil {
		return "", err
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML(md, p, r)), nil
}
