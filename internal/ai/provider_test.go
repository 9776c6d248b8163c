// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"mockupstudio/internal/designs"
	"mockupstudio/internal/models"
)

// liveRegistry builds a registry for provider name from its environment
// variables, skipping the test when no key is set.
func liveRegistry(t *testing.T, name, defaultModel string) *Registry {
	t.Helper()

	prefix := strings.ToUpper(name)
	key := os.Getenv(prefix + "_API_KEY")
	if key == "" {
		t.Skipf("%s_API_KEY not set", prefix)
	}
	model := os.Getenv(prefix + "_MODEL")
	if model == "" {
		model = defaultModel
	}

	return NewRegistry(name, map[string]ProviderConfig{
		name: {APIKey: key, Model: model},
	})
}

// TestProvidersLive generates a real screen with every provider that has
// a key in the environment.
func TestProvidersLive(t *testing.T) {
	providers := map[string]string{
		"openai":  "gpt-4o",
		"gemini":  "gemini-2.5-flash",
		"claude":  "claude-sonnet-4-5",
		"mistral": "mistral-large-latest",
	}

	for name, model := range providers {
		t.Run(name, func(t *testing.T) {
			reg := liveRegistry(t, name, model)
			g := NewScreenGenerator(reg)

			ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
			defer cancel()

			html, err := g.GenerateScreen(ctx, designs.ScreenRequest{
				Prompt: "A login screen for a travel booking app",
				Theme:  models.ThemeAuroraInk,
			})
			if err != nil {
				t.Fatalf("GenerateScreen: %v", err)
			}
			if !strings.Contains(strings.ToLower(html), "<") {
				t.Fatalf("response does not look like HTML: %.200s", html)
			}
			t.Logf("%s returned %d bytes", name, len(html))
		})
	}
}
