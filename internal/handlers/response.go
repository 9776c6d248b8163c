// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mockupstudio/internal/auth"
	"mockupstudio/internal/designs"
)

// errorBody is the JSON envelope every failed request receives.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON sends data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

// writeErrorCode sends the error envelope with an explicit status and code.
func writeErrorCode(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}

// errorMapping pairs a sentinel with its HTTP status and code. Order
// matters: the first match wins.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{auth.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{designs.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{designs.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{designs.ErrInvalidTheme, http.StatusBadRequest, "INVALID_THEME"},
	{designs.ErrInvalidName, http.StatusBadRequest, "INVALID_NAME"},
	{designs.ErrEmptyPrompt, http.StatusBadRequest, "EMPTY_PROMPT"},
	{designs.ErrPromptRejected, http.StatusUnprocessableEntity, "PROMPT_REJECTED"},
	{designs.ErrRateLimited, http.StatusTooManyRequests, "RATE_LIMITED"},
	{designs.ErrGenerationFailed, http.StatusBadGateway, "GENERATION_FAILED"},
	{designs.ErrExportUnavailable, http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE"},
	{designs.ErrStorageUnavailable, http.StatusInternalServerError, "STORAGE_UNAVAILABLE"},
}

// writeError maps a service error to its status and code. Details of
// server-side failures are logged, never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMapping {
		if !errors.Is(err, m.err) {
			continue
		}
		msg := err.Error()
		if m.status >= http.StatusInternalServerError {
			slog.Error("request failed", "path", r.URL.Path, "code", m.code, "error", err)
			msg = m.err.Error()
		}
		writeErrorCode(w, m.status, m.code, msg)
		return
	}

	slog.Error("unhandled error", "path", r.URL.Path, "error", err)
	writeErrorCode(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
}
