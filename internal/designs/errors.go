// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package designs

import "errors"

// Errors returned by Service. Callers match them with errors.Is; the HTTP
// layer maps each to a status code.
var (
	ErrNotFound           = errors.New("design not found")
	ErrForbidden          = errors.New("design belongs to another user")
	ErrInvalidTheme       = errors.New("invalid theme")
	ErrInvalidName        = errors.New("invalid project name")
	ErrEmptyPrompt        = errors.New("prompt is required")
	ErrGenerationFailed   = errors.New("screen generation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrPromptRejected     = errors.New("prompt rejected by content policy")
	ErrRateLimited        = errors.New("generation quota exceeded")
	ErrExportUnavailable  = errors.New("export storage unavailable")
)
