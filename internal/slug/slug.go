// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns screen titles and project names into object-key safe
// path segments.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace      = regexp.MustCompile(`\s+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Make lowercases s, drops everything but ASCII letters, digits and
// hyphens, and joins words with single hyphens. If maxLen > 0 the result
// is cut at the last hyphen that keeps it within maxLen bytes. An input
// with nothing usable yields fallback.
//
//	Make("Travel App: Home!", 0, "screen") == "travel-app-home"
func Make(s string, maxLen int, fallback string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if maxLen > 0 && len(result) > maxLen {
		cut := result[:maxLen]
		if i := strings.LastIndex(cut, "-"); i > 0 {
			cut = cut[:i]
		}
		result = strings.Trim(cut, "-")
	}

	if result == "" {
		return fallback
	}
	return result
}
