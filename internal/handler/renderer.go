package handler

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer implements echo.Renderer over html/template.
type TemplateRenderer struct {
	templates *template.Template
}

// NewRenderer parses all templates matching glob.
func NewRenderer(glob string) (*TemplateRenderer, error) {
	templates, err := template.ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: templates}, nil
}

// Render implements echo.Renderer.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
