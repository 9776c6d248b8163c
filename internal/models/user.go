// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

// RoleUser is assigned to every account on first sight.
const RoleUser Role = "user"

// User is the local record of an identity-provider account. It is created
// lazily the first time a verified token for ExternalID is seen.
type User struct {
	ID         uuid.UUID `json:"_id"`
	ExternalID string    `json:"externalId"` // identity-provider subject, unique
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}
