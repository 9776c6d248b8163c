// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client is a typed Go client for the mockup API. Every call
// sends a bearer token obtained from the TokenSource given at
// construction.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mockupstudio/internal/auth"
	"mockupstudio/internal/designs"
	"mockupstudio/internal/models"
)

// defaultTimeout exceeds the server's generation timeout.
const defaultTimeout = 90 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// TokenSource returns the bearer token for the next request.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken returns a TokenSource that always yields token.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) { return token, nil }
}

// Client calls the mockup API.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (90s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// New returns a client for the API at baseURL ("https://api.example.com").
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is the decoded error envelope of a non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %s (status %d): %s", e.Code, e.Status, e.Message)
}

// codeErrors maps envelope codes back to the service sentinels so callers
// can use errors.Is on either side of the wire.
var codeErrors = map[string]error{
	"UNAUTHENTICATED":     auth.ErrUnauthenticated,
	"FORBIDDEN":           designs.ErrForbidden,
	"NOT_FOUND":           designs.ErrNotFound,
	"INVALID_THEME":       designs.ErrInvalidTheme,
	"INVALID_NAME":        designs.ErrInvalidName,
	"EMPTY_PROMPT":        designs.ErrEmptyPrompt,
	"PROMPT_REJECTED":     designs.ErrPromptRejected,
	"RATE_LIMITED":        designs.ErrRateLimited,
	"GENERATION_FAILED":   designs.ErrGenerationFailed,
	"EXPORT_UNAVAILABLE":  designs.ErrExportUnavailable,
	"STORAGE_UNAVAILABLE": designs.ErrStorageUnavailable,
}

// Unwrap returns the sentinel matching Code, if any.
func (e *APIError) Unwrap() error {
	return codeErrors[e.Code]
}

// GenerateRequest is the body of Generate. Empty fields take server
// defaults.
type GenerateRequest struct {
	Prompt      string       `json:"prompt"`
	ProjectName string       `json:"projectName,omitempty"`
	Theme       models.Theme `json:"theme,omitempty"`
}

// Generate creates a design with one screen.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*models.Design, error) {
	var d models.Design
	if err := c.do(ctx, http.MethodPost, "/api/designs/generate", req, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns the caller's designs, most recent first. limit <= 0 means
// all of them.
func (c *Client) List(ctx context.Context, limit int) ([]models.Design, error) {
	path := "/api/designs/all"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	var list []models.Design
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns one design.
func (c *Client) Get(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	var d models.Design
	if err := c.do(ctx, http.MethodGet, designPath(id, ""), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// AddScreen generates and appends one screen.
func (c *Client) AddScreen(ctx context.Context, id uuid.UUID, prompt string) (*models.Design, error) {
	var d models.Design
	body := map[string]string{"prompt": prompt}
	if err := c.do(ctx, http.MethodPost, designPath(id, "/screens"), body, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// SetTheme changes the design's theme.
func (c *Client) SetTheme(ctx context.Context, id uuid.UUID, theme models.Theme) (*models.Design, error) {
	var d models.Design
	body := map[string]models.Theme{"theme": theme}
	if err := c.do(ctx, http.MethodPatch, designPath(id, "/theme"), body, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RenameProject changes the design's project name.
func (c *Client) RenameProject(ctx context.Context, id uuid.UUID, name string) (*models.Design, error) {
	var d models.Design
	body := map[string]string{"projectName": name}
	if err := c.do(ctx, http.MethodPatch, designPath(id, "/project-name"), body, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes the design.
func (c *Client) Delete(ctx context.Context, id uuid.UUID) (*models.DeleteResult, error) {
	var res models.DeleteResult
	if err := c.do(ctx, http.MethodDelete, designPath(id, ""), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Export publishes every screen and returns their URLs.
func (c *Client) Export(ctx context.Context, id uuid.UUID) (*models.ExportResult, error) {
	var res models.ExportResult
	if err := c.do(ctx, http.MethodPost, designPath(id, "/export"), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SyncUser ensures the caller's local user record exists and returns it.
func (c *Client) SyncUser(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/api/users/sync", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Dashboard is the body of GET /api/dashboard.
type Dashboard struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// Dashboard returns the welcome payload.
func (c *Client) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Themes returns every theme with its palette.
func (c *Client) Themes(ctx context.Context) ([]models.ThemePalette, error) {
	var themes []models.ThemePalette
	if err := c.do(ctx, http.MethodGet, "/api/themes", nil, &themes); err != nil {
		return nil, err
	}
	return themes, nil
}

func designPath(id uuid.UUID, suffix string) string {
	return "/api/designs/" + id.String() + suffix
}

// do sends one request. in is JSON-encoded when non-nil; a 2xx body is
// decoded into out, anything else into an *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client marshal: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("client request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens(ctx)
		if err != nil {
			return fmt.Errorf("client token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("client read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("client unmarshal: %w", err)
	}
	return nil
}

// decodeError builds an APIError from the envelope, falling back to the
// raw body when the response is not the expected JSON.
func decodeError(status int, body []byte) error {
	var env struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(body, &env); err != nil || (env.Error == "" && env.Code == "") {
		return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
	}
	return &APIError{Status: status, Code: env.Code, Message: env.Error}
}
