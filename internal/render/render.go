// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns generated screen fragments into standalone HTML
// documents using the embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"mockupstudio/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates holds every embedded template, keyed by file name.
var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// ScreenPage is the data of one exported screen.
type ScreenPage struct {
	ProjectName string
	ScreenTitle string
	Theme       models.Theme
	Colors      []string
	Body        template.HTML // generated markup, trusted as-is
}

// Screen renders markup as a full HTML document. Markup that already is a
// full document is returned unchanged.
func Screen(design *models.Design, title, markup string) ([]byte, error) {
	if IsDocument(markup) {
		return []byte(markup), nil
	}

	page := ScreenPage{
		ProjectName: design.ProjectName,
		ScreenTitle: title,
		Theme:       design.Theme,
		Colors:      design.Theme.Colors(),
		Body:        template.HTML(markup),
	}

	var buf bytes.Buffer
	if err := executeTemplate(&buf, "screen.html", page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IsDocument reports whether markup starts with a doctype or <html> tag.
func IsDocument(markup string) bool {
	head := strings.ToLower(strings.TrimSpace(markup))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(buf *bytes.Buffer, name string, data any) error {
	if err := templates.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
