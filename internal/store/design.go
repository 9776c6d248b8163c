// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"mockupstudio/internal/models"
)

// DesignStore handles all design database operations. Screens are kept in
// a JSONB array column so a design is read and written as one document.
type DesignStore struct {
	db *sql.DB
}

// NewDesignStore creates a new DesignStore.
func NewDesignStore(db *sql.DB) *DesignStore {
	return &DesignStore{db: db}
}

// designColumns lists the columns selected in design queries.
const designColumns = `id, owner_id, project_name, theme, screens, created_at`

// scanDesign scans a design row from the result set.
func scanDesign(scanner interface{ Scan(...any) error }) (*models.Design, error) {
	var (
		d       models.Design
		screens []byte
	)
	if err := scanner.Scan(&d.ID, &d.OwnerID, &d.ProjectName, &d.Theme, &screens, &d.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(screens, &d.Screens); err != nil {
		return nil, fmt.Errorf("decode screens: %w", err)
	}
	if d.Screens == nil {
		d.Screens = []models.Screen{}
	}
	return &d, nil
}

// Insert stores a new design and returns it with the generated ID and
// creation timestamp.
func (s *DesignStore) Insert(ctx context.Context, d *models.Design) (*models.Design, error) {
	screens := d.Screens
	if screens == nil {
		screens = []models.Screen{}
	}
	payload, err := json.Marshal(screens)
	if err != nil {
		return nil, fmt.Errorf("encode screens: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO designs (owner_id, project_name, theme, screens)
		VALUES ($1, $2, $3, $4::jsonb)
		RETURNING `+designColumns,
		d.OwnerID, d.ProjectName, d.Theme, string(payload),
	)
	created, err := scanDesign(row)
	if err != nil {
		return nil, fmt.Errorf("insert design: %w", err)
	}
	return created, nil
}

// FindByID retrieves a design by its UUID. Returns nil if not found.
func (s *DesignStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+designColumns+` FROM designs WHERE id = $1`, id)
	d, err := scanDesign(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find design by id: %w", err)
	}
	return d, nil
}

// ListByOwner returns the owner's designs, newest first. A limit of zero
// or less returns every design.
func (s *DesignStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]models.Design, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+designColumns+`
		FROM designs
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, ownerID, lim)
	if err != nil {
		return nil, fmt.Errorf("list designs by owner: %w", err)
	}
	defer rows.Close()

	items := []models.Design{}
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// Update applies a partial field merge. Screens are never touched.
// Returns nil if the design does not exist.
func (s *DesignStore) Update(ctx context.Context, id uuid.UUID, patch models.DesignPatch) (*models.Design, error) {
	if patch.Empty() {
		return s.FindByID(ctx, id)
	}

	var name, theme any
	if patch.ProjectName != nil {
		name = *patch.ProjectName
	}
	if patch.Theme != nil {
		theme = string(*patch.Theme)
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE designs SET
			project_name = COALESCE($1, project_name),
			theme        = COALESCE($2, theme),
			updated_at   = NOW()
		WHERE id = $3
		RETURNING `+designColumns,
		name, theme, id,
	)
	d, err := scanDesign(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update design: %w", err)
	}
	return d, nil
}

// AppendScreen adds one screen to the end of the design's screen array in
// a single statement, so concurrent appends to the same design never lose
// an entry. Returns nil if the design does not exist.
func (s *DesignStore) AppendScreen(ctx context.Context, id uuid.UUID, screen models.Screen) (*models.Design, error) {
	payload, err := json.Marshal(screen)
	if err != nil {
		return nil, fmt.Errorf("encode screen: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE designs SET
			screens    = screens || jsonb_build_array($1::jsonb),
			updated_at = NOW()
		WHERE id = $2
		RETURNING `+designColumns,
		string(payload), id,
	)
	d, err := scanDesign(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("append screen: %w", err)
	}
	return d, nil
}

// Delete removes a design. Returns false if no design had that ID.
func (s *DesignStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM designs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete design: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete design rows affected: %w", err)
	}
	return n > 0, nil
}
