// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Screen is one generated mockup page. Screens live inside a Design and
// are never addressed on their own.
type Screen struct {
	Title string `json:"title,omitempty"`
	HTML  string `json:"html"`
}

// DisplayTitle returns the screen title, falling back to the 1-based
// positional label the canvas shows ("Screen 3").
func (s Screen) DisplayTitle(index int) string {
	if s.Title != "" {
		return s.Title
	}
	return fmt.Sprintf("Screen %d", index+1)
}

// Design is a persisted mockup project owned by exactly one user. Screens
// are append-only and keep their array order.
type Design struct {
	ID          uuid.UUID `json:"_id"`
	OwnerID     string    `json:"ownerId"`
	ProjectName string    `json:"projectName"`
	Theme       Theme     `json:"theme"`
	Screens     []Screen  `json:"screens"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OwnedBy reports whether ownerID is the design's owner.
func (d *Design) OwnedBy(ownerID string) bool {
	return ownerID != "" && d.OwnerID == ownerID
}

// Clone returns a deep copy so callers can't alias the screens slice.
func (d *Design) Clone() *Design {
	c := *d
	c.Screens = make([]Screen, len(d.Screens))
	copy(c.Screens, d.Screens)
	return &c
}

// DesignPatch is a partial update. Nil fields are left untouched; screens
// cannot be patched.
type DesignPatch struct {
	ProjectName *string
	Theme       *Theme
}

// Empty reports whether the patch changes nothing.
func (p DesignPatch) Empty() bool {
	return p.ProjectName == nil && p.Theme == nil
}
