// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth verifies bearer tokens issued by the external identity
// provider. It never issues tokens itself.
package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated is returned for any token that cannot be trusted.
var ErrUnauthenticated = errors.New("unauthenticated")

// DefaultLeeway absorbs clock skew between us and the identity provider.
const DefaultLeeway = 30 * time.Second

// Identity is the verified caller.
type Identity struct {
	Subject string // identity-provider user ID, never empty
}

// Config selects the accepted signing keys and claim checks. At least one
// of PublicKeyPEM (RS256) and Secret (HS256) must be set.
type Config struct {
	PublicKeyPEM string
	Secret       string
	Issuer       string // checked when non-empty
	Audience     string // matched against "aud" or "azp" when non-empty
	Leeway       time.Duration
}

// Verifier validates bearer JWTs.
type Verifier struct {
	rsaKey   *rsa.PublicKey
	secret   []byte
	issuer   string
	audience string
	parser   *jwt.Parser
}

type claims struct {
	jwt.RegisteredClaims
	AuthorizedParty string `json:"azp,omitempty"`
}

// NewVerifier parses the key material in cfg.
func NewVerifier(cfg Config) (*Verifier, error) {
	v := &Verifier{issuer: cfg.Issuer, audience: cfg.Audience}

	var methods []string
	if cfg.PublicKeyPEM != "" {
		// Env files often carry the PEM on one line with literal "\n".
		pem := strings.ReplaceAll(cfg.PublicKeyPEM, `\n`, "\n")
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("auth: parse public key: %w", err)
		}
		v.rsaKey = key
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}
	if cfg.Secret != "" {
		v.secret = []byte(cfg.Secret)
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}
	if len(methods) == 0 {
		return nil, errors.New("auth: no verification key configured")
	}

	leeway := cfg.Leeway
	if leeway <= 0 {
		leeway = DefaultLeeway
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithLeeway(leeway),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	v.parser = jwt.NewParser(opts...)

	return v, nil
}

// Verify checks the token's signature, expiry, issuer and audience and
// returns the caller's identity. Every failure wraps ErrUnauthenticated.
func (v *Verifier) Verify(_ context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, fmt.Errorf("%w: missing token", ErrUnauthenticated)
	}

	var c claims
	if _, err := v.parser.ParseWithClaims(token, &c, v.keyFunc); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	if v.audience != "" && !slices.Contains(c.Audience, v.audience) && c.AuthorizedParty != v.audience {
		return Identity{}, fmt.Errorf("%w: audience mismatch", ErrUnauthenticated)
	}
	if c.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrUnauthenticated)
	}

	return Identity{Subject: c.Subject}, nil
}

func (v *Verifier) keyFunc(t *jwt.Token) (any, error) {
	switch t.Method.(type) {
	case *jwt.SigningMethodRSA:
		if v.rsaKey != nil {
			return v.rsaKey, nil
		}
	case *jwt.SigningMethodHMAC:
		if v.secret != nil {
			return v.secret, nil
		}
	}
	return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
}

// BearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
