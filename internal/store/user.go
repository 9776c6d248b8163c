// Package store provides database access methods for users and designs.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"mockupstudio/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// userColumns lists the columns selected in user queries.
const userColumns = `id, external_id, role, created_at`

// FindByExternalID retrieves a user by identity-provider subject. Returns
// nil if not found.
func (s *UserStore) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE external_id = $1
	`, externalID).Scan(&u.ID, &u.ExternalID, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by external id: %w", err)
	}
	return u, nil
}

// Ensure returns the user for externalID, creating it with the default
// role on first sight. The upsert makes concurrent first requests for the
// same subject converge on one row.
func (s *UserStore) Ensure(ctx context.Context, externalID string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (external_id, role)
		VALUES ($1, $2)
		ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
		RETURNING `+userColumns,
		externalID, models.RoleUser,
	).Scan(&u.ID, &u.ExternalID, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return u, nil
}
