package render

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/edi-build/edi/internal/errors"
)

// Renderer expands templates against a Context.
type Renderer struct {
	funcs template.FuncMap
}

// NewRenderer returns a Renderer using the repeatable sprig functions, so
// the same template and context always render the same text.
func NewRenderer() *Renderer {
	return &Renderer{funcs: sprig.HermeticTxtFuncMap()}
}

// Render expands text as the template called name. Syntax errors and
// references to variables missing from ctx are template errors.
func (r *Renderer) Render(name, text string, ctx Context) (string, error) {
	tmpl, err := template.New(name).
		Funcs(r.funcs).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return "", errors.TemplateError(name, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, map[string]any(ctx)); err != nil {
		return "", errors.TemplateError(name, err)
	}
	return b.String(), nil
}
