// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Theme is one of the fixed colour/style presets a Design can use.
type Theme string

const (
	ThemeSlack       Theme = "SLACK"
	ThemeFigma       Theme = "FIGMA"
	ThemeNetflix     Theme = "NETFLIX"
	ThemeShopify     Theme = "SHOPIFY"
	ThemeAmazon      Theme = "AMAZON"
	ThemeAuroraInk   Theme = "AURORA_INK"
	ThemeDustyOrchid Theme = "DUSTY_ORCHID"
)

// DefaultTheme is applied when a generate request does not name one.
const DefaultTheme = ThemeSlack

// ThemePalette pairs a theme with its five brand colours.
type ThemePalette struct {
	Name   Theme    `json:"name"`
	Colors []string `json:"colors"`
}

// palettes lists every theme in display order.
var palettes = []ThemePalette{
	{Name: ThemeSlack, Colors: []string{"#4A154B", "#36C5F0", "#2EB67D", "#000000", "#FFFFFF"}},
	{Name: ThemeFigma, Colors: []string{"#0D99FF", "#9747FF", "#F24E1E", "#000000", "#FFFFFF"}},
	{Name: ThemeNetflix, Colors: []string{"#E50914", "#000000", "#564D4D", "#FFFFFF", "#141414"}},
	{Name: ThemeShopify, Colors: []string{"#95BF47", "#FFFFFF", "#000000", "#232F3E", "#146EB4"}},
	{Name: ThemeAmazon, Colors: []string{"#FF9900", "#232F3E", "#146EB4", "#FFFFFF", "#131A22"}},
	{Name: ThemeAuroraInk, Colors: []string{"#6366F1", "#10B981", "#3B82F6", "#0F172A", "#FFFFFF"}},
	{Name: ThemeDustyOrchid, Colors: []string{"#A855F7", "#EC4899", "#3B82F6", "#1E1B4B", "#FFFFFF"}},
}

// Valid reports whether t is a member of the enumerated theme set.
// Matching is exact; "slack" is not SLACK.
func (t Theme) Valid() bool {
	for _, p := range palettes {
		if p.Name == t {
			return true
		}
	}
	return false
}

// Colors returns the theme's palette, or nil for an unknown theme.
func (t Theme) Colors() []string {
	for _, p := range palettes {
		if p.Name == t {
			out := make([]string, len(p.Colors))
			copy(out, p.Colors)
			return out
		}
	}
	return nil
}

// Themes returns a copy of every palette in display order.
func Themes() []ThemePalette {
	out := make([]ThemePalette, len(palettes))
	for i, p := range palettes {
		out[i] = ThemePalette{Name: p.Name, Colors: p.Name.Colors()}
	}
	return out
}
