// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers of the mockup API.
// Handlers are grouped by concern and receive their dependencies through
// the handler struct.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"mockupstudio/internal/designs"
	"mockupstudio/internal/middleware"
	"mockupstudio/internal/models"
)

// Designs groups the design HTTP handlers.
type Designs struct {
	service *designs.Service
}

// NewDesigns creates the design handler group.
func NewDesigns(service *designs.Service) *Designs {
	return &Designs{service: service}
}

// Generate handles POST /api/designs/generate.
func (h *Designs) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	design, err := h.service.Generate(r.Context(), ownerID(r), req.Prompt, req.ProjectName, models.Theme(req.Theme))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, design)
}

// List handles GET /api/designs/all. An optional ?limit=N caps the result.
func (h *Designs) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	list, err := h.service.List(r.Context(), ownerID(r), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /api/designs/{id}.
func (h *Designs) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := designID(w, r)
	if !ok {
		return
	}

	design, err := h.service.Get(r.Context(), ownerID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

// AddScreen handles POST /api/designs/{id}/screens.
func (h *Designs) AddScreen(w http.ResponseWriter, r *http.Request) {
	id, ok := designID(w, r)
	if !ok {
		return
	}

	var req screenRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	design, err := h.service.AddScreen(r.Context(), ownerID(r), id, req.Prompt)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

// SetTheme handles PATCH /api/designs/{id}/theme.
func (h *Designs) SetTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := designID(w, r)
	if !ok {
		return
	}

	var req themeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	design, err := h.service.SetTheme(r.Context(), ownerID(r), id, models.Theme(req.Theme))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

// RenameProject handles PATCH /api/designs/{id}/project-name.
func (h *Designs) RenameProject(w http.ResponseWriter, r *http.Request) {
	id, ok := designID(w, r)
	if !ok {
		return
	}

	var req projectNameRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	design, err := h.service.RenameProject(r.Context(), ownerID(r), id, req.ProjectName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

// Delete handles DELETE /api/designs/{id}.
func (h *Designs) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := designID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), ownerID(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DeleteResult{Message: "Design deleted", ID: id})
}

// Export handles POST /api/designs/{id}/export.
func (h *Designs) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := designID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Export(r.Context(), ownerID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// designID parses the {id} URL parameter, answering 400 when it is not a
// UUID.
func designID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid design id")
		return uuid.Nil, false
	}
	return id, true
}

// ownerID returns the authenticated subject, or "" outside Authenticate.
func ownerID(r *http.Request) string {
	id, _ := middleware.IdentityFromCtx(r.Context())
	return id.Subject
}
