// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package designs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"mockupstudio/internal/models"
	"mockupstudio/internal/render"
	"mockupstudio/internal/slug"
)

const maxKeySlugLen = 60

// Export publishes every screen of the design as a standalone HTML page
// and returns their public URLs in screen order. Re-exporting overwrites
// the previous pages.
func (s *Service) Export(ctx context.Context, ownerID string, id uuid.UUID) (*models.ExportResult, error) {
	design, err := s.loadAndAuthorize(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if s.publisher == nil {
		return nil, ErrExportUnavailable
	}

	result := &models.ExportResult{
		ID:      design.ID,
		Screens: make([]models.ExportedScreen, 0, len(design.Screens)),
	}

	for i, screen := range design.Screens {
		title := screen.DisplayTitle(i)
		key := exportKey(design.ID, i, title)

		page, err := render.Screen(design, title, screen.HTML)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}

		url, err := s.publisher.Publish(ctx, key, page)
		if err != nil {
			slog.Error("export upload failed", "design_id", design.ID, "key", key, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrExportUnavailable, err)
		}
		result.Screens = append(result.Screens, models.ExportedScreen{Title: title, URL: url})
	}

	slog.Info("design exported", "design_id", design.ID, "screens", len(result.Screens))
	return result, nil
}

// exportPrefix is the object-key prefix holding a design's exported pages.
func exportPrefix(id uuid.UUID) string {
	return "exports/" + id.String() + "/"
}

// exportKey builds "exports/<id>/03-map-view.html".
func exportKey(id uuid.UUID, index int, title string) string {
	return fmt.Sprintf("%s%02d-%s.html", exportPrefix(id), index+1, slug.Make(title, maxKeySlugLen, "screen"))
}
