// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"strings"
	"testing"

	"mockupstudio/internal/models"
)

func TestScreen(t *testing.T) {
	d := &models.Design{ProjectName: "Travel <App>", Theme: models.ThemeNetflix}

	out, err := Screen(d, "Screen 1", `<div class="hero">Hi & welcome</div>`)
	if err != nil {
		t.Fatalf("Screen: %v", err)
	}
	page := string(out)

	checks := []struct {
		name string
		want string
	}{
		{"doctype first", "<!DOCTYPE html>"},
		{"escaped title", "<title>Travel &lt;App&gt;: Screen 1</title>"},
		{"theme attribute", `<body data-theme="NETFLIX">`},
		{"theme color", `<meta name="theme-color" content="#E50914">`},
		{"markup unescaped", `<div class="hero">Hi & welcome</div>`},
	}
	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Errorf("page should start with the doctype: %q", page[:20])
	}
	for _, c := range checks {
		if !strings.Contains(page, c.want) {
			t.Errorf("%s: %q not found in\n%s", c.name, c.want, page)
		}
	}
}

func TestScreenUnknownThemeOmitsColor(t *testing.T) {
	d := &models.Design{ProjectName: "P", Theme: "NOPE"}

	out, err := Screen(d, "Screen 1", "<p>x</p>")
	if err != nil {
		t.Fatalf("Screen: %v", err)
	}
	if strings.Contains(string(out), "theme-color") {
		t.Errorf("unknown theme should not emit a theme color:\n%s", out)
	}
}

func TestScreenFullDocumentPassesThrough(t *testing.T) {
	tests := []string{
		"<!doctype html><html><body>hi</body></html>",
		"  <!DOCTYPE html>\n<html></html>",
		"<html lang=\"en\"><body></body></html>",
	}
	for _, doc := range tests {
		out, err := Screen(&models.Design{ProjectName: "P"}, "Screen 1", doc)
		if err != nil {
			t.Fatalf("Screen: %v", err)
		}
		if string(out) != doc {
			t.Errorf("document changed: got %q, want %q", out, doc)
		}
	}
}

func TestIsDocument(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"<!DOCTYPE html>", true},
		{"<html>", true},
		{"  <HTML>", true},
		{"<div>", false},
		{"", false},
		{"text <html>", false},
	}
	for _, tt := range tests {
		if got := IsDocument(tt.in); got != tt.want {
			t.Errorf("IsDocument(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
