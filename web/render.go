package web

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"

	wizard "github.com/xraph/formwizard"
)

// Page is the rendered-step response produced by TemplateRenderer.
// Handler writes Body with Status and an HTML content type.
type Page struct {
	Status int
	Body   []byte
}

// Redirect is the response produced by Redirector. Handler answers it
// with an HTTP 302 to URL.
type Redirect struct {
	URL string
}

// TemplateRenderer renders steps through an html/template template. The
// RenderContext is the template's data; templates reach the signed
// management marker as {{.Management}} and the forms as {{.Forms}}.
type TemplateRenderer struct {
	tmpl *template.Template
	name string
}

var _ wizard.Renderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer renders every step with the named template from
// tmpl.
func NewTemplateRenderer(tmpl *template.Template, name string) *TemplateRenderer {
	return &TemplateRenderer{tmpl: tmpl, name: name}
}

// Render implements wizard.Renderer.
func (t *TemplateRenderer) Render(_ context.Context, rc *wizard.RenderContext) (wizard.Response, error) {
	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, t.name, rc); err != nil {
		return nil, fmt.Errorf("web: render step %q: %w", rc.Step.Current, err)
	}
	return &Page{Status: http.StatusOK, Body: buf.Bytes()}, nil
}

// Redirector is the wizard.Redirector for net/http hosts.
type Redirector struct{}

var _ wizard.Redirector = Redirector{}

// Redirect implements wizard.Redirector.
func (Redirector) Redirect(_ context.Context, url string) (wizard.Response, error) {
	return &Redirect{URL: url}, nil
}
