// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ModerationResult is the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool
	Categories []string // flagged categories, sorted; empty when safe
}

// Moderator checks prompts for policy violations before they reach a
// generation endpoint.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// moderationAPI calls an OpenAI-style /moderations endpoint. OpenAI and
// Mistral share the request shape; OpenAI adds a top-level "flagged".
type moderationAPI struct {
	label  string
	url    string
	model  string
	apiKey string
	client *http.Client
}

func newOpenAIModerator(apiKey, baseURL string) *moderationAPI {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &moderationAPI{
		label:  "openai moderation",
		url:    baseURL + "/moderations",
		model:  "omni-moderation-latest",
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func newMistralModerator(apiKey, baseURL string) *moderationAPI {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai/v1"
	}
	return &moderationAPI{
		label:  "mistral moderation",
		url:    baseURL + "/moderations",
		model:  "mistral-moderation-latest",
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *moderationAPI) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	body := moderationRequest{Model: m.model, Input: text}
	headers := map[string]string{"Authorization": "Bearer " + m.apiKey}

	var result moderationResponse
	if err := postJSON(ctx, m.client, m.label, m.url, headers, body, &result); err != nil {
		return nil, err
	}

	if len(result.Results) == 0 {
		return &ModerationResult{Safe: true}, nil
	}

	r := result.Results[0]
	if r.Flagged != nil && !*r.Flagged {
		return &ModerationResult{Safe: true}, nil
	}
	flagged := flaggedCategories(r.Categories)
	safe := len(flagged) == 0
	if r.Flagged != nil {
		safe = false
	}
	return &ModerationResult{Safe: safe, Categories: flagged}, nil
}

// flaggedCategories turns "hate/threatening" into "hate (threatening)" and
// "self_harm" into "self harm".
func flaggedCategories(cats map[string]bool) []string {
	var out []string
	for cat, isFlagged := range cats {
		if !isFlagged {
			continue
		}
		display := cat
		if i := strings.Index(display, "/"); i != -1 {
			display = display[:i] + " (" + display[i+1:] + ")"
		}
		out = append(out, strings.ReplaceAll(display, "_", " "))
	}
	sort.Strings(out)
	return out
}

// fallbackModerator tries primary first and switches to secondary when the
// primary rejects its credentials (project-scoped OpenAI keys often cannot
// call /moderations).
type fallbackModerator struct {
	primary   Moderator
	secondary Moderator
}

func newFallbackModerator(primary, secondary Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, secondary: secondary}
}

func (f *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	res, err := f.primary.CheckSafety(ctx, text)
	var apiErr *APIError
	if err != nil && errors.As(err, &apiErr) && apiErr.Unauthorized() {
		return f.secondary.CheckSafety(ctx, text)
	}
	return res, err
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []moderationResult `json:"results"`
}

type moderationResult struct {
	Flagged    *bool           `json:"flagged,omitempty"`
	Categories map[string]bool `json:"categories"`
}
