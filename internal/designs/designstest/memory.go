// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package designstest provides in-memory implementations of the designs
// collaborators for tests.
package designstest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mockupstudio/internal/designs"
	"mockupstudio/internal/models"
)

// ErrStoreDown is returned by every MemoryStore method once Fail is set.
var ErrStoreDown = errors.New("designstest: store down")

// MemoryStore is a goroutine-safe designs.Store kept in a map.
type MemoryStore struct {
	mu      sync.Mutex
	designs map[uuid.UUID]*models.Design
	last    time.Time
	fail    bool
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		designs: make(map[uuid.UUID]*models.Design),
	}
}

// Fail makes every subsequent call return ErrStoreDown.
func (m *MemoryStore) Fail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}

// Len returns the number of stored designs.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.designs)
}

func (m *MemoryStore) Insert(_ context.Context, d *models.Design) (*models.Design, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, ErrStoreDown
	}

	// Strictly increasing timestamps keep newest-first ordering stable.
	now := time.Now()
	if !now.After(m.last) {
		now = m.last.Add(time.Microsecond)
	}
	m.last = now

	c := d.Clone()
	c.ID = uuid.New()
	c.CreatedAt = now
	m.designs[c.ID] = c
	return c.Clone(), nil
}

func (m *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Design, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, ErrStoreDown
	}

	d, ok := m.designs[id]
	if !ok {
		return nil, nil
	}
	return d.Clone(), nil
}

func (m *MemoryStore) ListByOwner(_ context.Context, ownerID string, limit int) ([]models.Design, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, ErrStoreDown
	}

	out := []models.Design{}
	for _, d := range m.designs {
		if d.OwnerID == ownerID {
			out = append(out, *d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) > 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Update(_ context.Context, id uuid.UUID, patch models.DesignPatch) (*models.Design, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, ErrStoreDown
	}

	d, ok := m.designs[id]
	if !ok {
		return nil, nil
	}
	if patch.ProjectName != nil {
		d.ProjectName = *patch.ProjectName
	}
	if patch.Theme != nil {
		d.Theme = *patch.Theme
	}
	return d.Clone(), nil
}

func (m *MemoryStore) AppendScreen(_ context.Context, id uuid.UUID, screen models.Screen) (*models.Design, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, ErrStoreDown
	}

	d, ok := m.designs[id]
	if !ok {
		return nil, nil
	}
	d.Screens = append(d.Screens, screen)
	return d.Clone(), nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return false, ErrStoreDown
	}

	if _, ok := m.designs[id]; !ok {
		return false, nil
	}
	delete(m.designs, id)
	return true, nil
}

var _ designs.Store = (*MemoryStore)(nil)
