package models

import "github.com/google/uuid"

// ExportedScreen is one published screen page.
type ExportedScreen struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ExportResult lists the public URLs of every screen of a design, in
// screen order.
type ExportResult struct {
	ID      uuid.UUID        `json:"id"`
	Screens []ExportedScreen `json:"screens"`
}

// DeleteResult is returned after a design is removed.
type DeleteResult struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}
