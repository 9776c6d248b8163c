// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mockupstudio/internal/designs"
	"mockupstudio/internal/models"
)

// maxPriorContext caps how much of the previous screen's markup is sent
// back to the model as a style reference.
const maxPriorContext = 12000

const screenSystemPrompt = `You are a senior UI designer producing high-fidelity mockups.
Return ONE complete, self-contained HTML document for a single app screen.
Rules:
- Use only inline <style> CSS. No external scripts, fonts, or images; use
  CSS shapes, gradients, and emoji for imagery.
- Lay the screen out for a 390px wide mobile viewport unless the request
  clearly describes a desktop or dashboard view.
- Use realistic placeholder content, never lorem ipsum.
- Use this colour palette and nothing else for brand colours: %s.
- Output raw HTML only. No markdown, no explanations.`

// ScreenGenerator produces mockup screens with the registry's active
// provider. It implements designs.Generator.
type ScreenGenerator struct {
	registry *Registry
}

// NewScreenGenerator returns a generator backed by r.
func NewScreenGenerator(r *Registry) *ScreenGenerator {
	return &ScreenGenerator{registry: r}
}

// GenerateScreen moderates the prompt, asks the active provider for a
// screen and returns the cleaned markup. A flagged prompt yields an error
// wrapping designs.ErrPromptRejected; a moderation outage does not block
// generation.
func (g *ScreenGenerator) GenerateScreen(ctx context.Context, req designs.ScreenRequest) (string, error) {
	mod, err := g.registry.CheckPrompt(ctx, req.Prompt)
	if err != nil {
		slog.Warn("prompt moderation unavailable", "error", err)
	} else if !mod.Safe {
		return "", fmt.Errorf("%w: %s", designs.ErrPromptRejected, strings.Join(mod.Categories, ", "))
	}

	raw, err := g.registry.Generate(ctx, buildSystemPrompt(req.Theme), buildUserPrompt(req))
	if err != nil {
		return "", err
	}

	html := extractHTML(raw)
	if html == "" {
		return "", fmt.Errorf("ai: provider returned no markup")
	}
	return html, nil
}

func buildSystemPrompt(theme models.Theme) string {
	colors := theme.Colors()
	if colors == nil {
		colors = models.DefaultTheme.Colors()
	}
	return fmt.Sprintf(screenSystemPrompt, strings.Join(colors, ", "))
}

// buildUserPrompt appends the most recent existing screen so follow-up
// screens share its layout language.
func buildUserPrompt(req designs.ScreenRequest) string {
	if len(req.Prior) == 0 {
		return "Design this screen: " + req.Prompt
	}

	last := req.Prior[len(req.Prior)-1]
	ref := last.HTML
	if len(ref) > maxPriorContext {
		ref = strings.ToValidUTF8(ref[:maxPriorContext], "")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This app already has %d screen(s). ", len(req.Prior))
	b.WriteString("Match the navigation, typography, and component style of the latest one:\n\n")
	b.WriteString(ref)
	b.WriteString("\n\nNow design the next screen: ")
	b.WriteString(req.Prompt)
	return b.String()
}

// extractHTML strips the markdown code fences models like to wrap HTML in,
// including any prose before the opening fence.
func extractHTML(response string) string {
	response = strings.TrimSpace(response)

	if start := strings.Index(response, "```"); start != -1 {
		body := response[start+3:]
		if nl := strings.Index(body, "\n"); nl != -1 {
			body = body[nl+1:]
		}
		if end := strings.Index(body, "```"); end != -1 {
			body = body[:end]
		}
		response = body
	}

	return strings.TrimSpace(response)
}

var _ designs.Generator = (*ScreenGenerator)(nil)
