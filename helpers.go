package tether

import (
	"bytes"
	"fmt"
	"html/template"
)

// RenderHTML executes a named template to a string, suitable for
// Window.Load. This allows reusing html/template definitions without an HTTP
// server.
func RenderHTML(tpl *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// LoadTemplate renders a named template and displays it in w. Nothing is
// loaded when rendering fails.
func LoadTemplate(w Window, tpl *template.Template, name string, data any) error {
	html, err := RenderHTML(tpl, name, data)
	if err != nil {
		return err
	}
	w.Load(html)
	return nil
}
