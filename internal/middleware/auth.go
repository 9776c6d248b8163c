// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"mockupstudio/internal/auth"
	"mockupstudio/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	identityKey contextKey = "identity"
	userKey     contextKey = "user"
)

// TokenVerifier validates a bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (auth.Identity, error)
}

// UserEnsurer finds or creates the local user for a verified subject.
type UserEnsurer interface {
	Ensure(ctx context.Context, externalID string) (*models.User, error)
}

// Authenticate rejects requests without a valid bearer token with 401.
// Verified callers get their local user record created on first sight;
// both the identity and the user are stored in the request context.
func Authenticate(verifier TokenVerifier, users UserEnsurer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				slog.Debug("token rejected", "error", err, "remote", r.RemoteAddr)
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or expired token")
				return
			}

			user, err := users.Ensure(r.Context(), id.Subject)
			if err != nil {
				slog.Error("failed to sync user", "subject", id.Subject, "error", err)
				writeError(w, http.StatusInternalServerError, "STORAGE_UNAVAILABLE", "could not load user")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id, user)))
		})
	}
}

// WithIdentity returns a context carrying the verified identity and user.
func WithIdentity(ctx context.Context, id auth.Identity, user *models.User) context.Context {
	ctx = context.WithValue(ctx, identityKey, id)
	return context.WithValue(ctx, userKey, user)
}

// IdentityFromCtx returns the verified caller. ok is false outside
// Authenticate.
func IdentityFromCtx(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok && id.Subject != ""
}

// UserFromCtx returns the caller's local user record, or nil.
func UserFromCtx(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}
