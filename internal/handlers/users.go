// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"mockupstudio/internal/auth"
	"mockupstudio/internal/middleware"
	"mockupstudio/internal/models"
)

// dashboardResponse is the body of GET /api/dashboard.
type dashboardResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// SyncUser handles POST /api/users/sync. The auth middleware has already
// created the local record; this returns it.
func SyncUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())
	if user == nil {
		writeError(w, r, auth.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Dashboard handles GET /api/dashboard.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromCtx(r.Context())
	if !ok {
		writeError(w, r, auth.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{Message: "Welcome", UserID: id.Subject})
}

// Themes handles GET /api/themes.
func Themes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Themes())
}
