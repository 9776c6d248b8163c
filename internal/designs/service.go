// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package designs owns mockup designs: ownership checks, validation, and
// the create/list/get/append/patch/delete operations on top of a Store and
// a screen Generator.
package designs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mockupstudio/internal/models"
)

const (
	// MaxProjectNameLen is the longest accepted project name, in runes.
	MaxProjectNameLen = 200

	// DefaultProjectName is used when the prompt yields no words.
	DefaultProjectName = "New Project"

	// DefaultGenerationTimeout bounds a single generator call.
	DefaultGenerationTimeout = 60 * time.Second

	projectNameWords = 3
)

var generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mockupstudio_generations_total",
	Help: "Screen generations by operation and outcome.",
}, []string{"operation", "outcome"})

var generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "mockupstudio_generation_duration_seconds",
	Help:    "Time spent waiting on the screen generator.",
	Buckets: []float64{1, 2.5, 5, 10, 20, 30, 45, 60, 90},
}, []string{"operation"})

// Store persists designs. Lookups return (nil, nil) when the row does not
// exist.
type Store interface {
	Insert(ctx context.Context, d *models.Design) (*models.Design, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Design, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]models.Design, error)
	Update(ctx context.Context, id uuid.UUID, patch models.DesignPatch) (*models.Design, error)
	AppendScreen(ctx context.Context, id uuid.UUID, screen models.Screen) (*models.Design, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ScreenRequest is what the generator needs to produce one screen.
type ScreenRequest struct {
	Prompt string
	Theme  models.Theme
	Prior  []models.Screen // existing screens, oldest first; empty for a new design
}

// Generator turns a prompt into screen markup. Implementations should
// return an error wrapping ErrPromptRejected when a prompt fails moderation.
type Generator interface {
	GenerateScreen(ctx context.Context, req ScreenRequest) (string, error)
}

// Limiter meters generations per owner.
type Limiter interface {
	Allow(ctx context.Context, ownerID string) (bool, error)
}

// Publisher uploads exported pages and returns their public URLs.
type Publisher interface {
	Publish(ctx context.Context, key string, html []byte) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}

// Config holds the optional collaborators and limits of a Service.
type Config struct {
	GenerationTimeout time.Duration // <= 0 means DefaultGenerationTimeout
	Limiter           Limiter       // nil disables the generation quota
	Publisher         Publisher     // nil disables Export
}

// Service implements design management for authenticated owners.
type Service struct {
	store     Store
	generator Generator
	limiter   Limiter
	publisher Publisher
	timeout   time.Duration
}

// NewService wires a Service.
func NewService(store Store, generator Generator, cfg Config) *Service {
	timeout := cfg.GenerationTimeout
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &Service{
		store:     store,
		generator: generator,
		limiter:   cfg.Limiter,
		publisher: cfg.Publisher,
		timeout:   timeout,
	}
}

// Generate creates a design with exactly one screen generated from prompt.
// An empty theme means models.DefaultTheme; an empty projectName is derived
// from the prompt. Nothing is persisted when generation fails.
func (s *Service) Generate(ctx context.Context, ownerID, prompt, projectName string, theme models.Theme) (*models.Design, error) {
	if ownerID == "" {
		return nil, ErrForbidden
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	if theme == "" {
		theme = models.DefaultTheme
	}
	if !theme.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}

	projectName = strings.TrimSpace(projectName)
	if projectName == "" {
		projectName = ProjectNameFromPrompt(prompt)
	} else if err := validateName(projectName); err != nil {
		return nil, err
	}

	if err := s.allow(ctx, ownerID); err != nil {
		return nil, err
	}

	html, err := s.generate(ctx, "generate", ScreenRequest{Prompt: prompt, Theme: theme})
	if err != nil {
		return nil, err
	}

	created, err := s.store.Insert(ctx, &models.Design{
		OwnerID:     ownerID,
		ProjectName: projectName,
		Theme:       theme,
		Screens:     []models.Screen{{HTML: html}},
	})
	if err != nil {
		return nil, storageErr(err)
	}

	slog.Info("design generated", "design_id", created.ID, "owner", ownerID, "theme", theme)
	return created, nil
}

// AddScreen generates one more screen for the design and appends it.
// Existing screens are passed to the generator for visual continuity and
// are never modified.
func (s *Service) AddScreen(ctx context.Context, ownerID string, id uuid.UUID, prompt string) (*models.Design, error) {
	design, err := s.loadAndAuthorize(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	if err := s.allow(ctx, ownerID); err != nil {
		return nil, err
	}

	html, err := s.generate(ctx, "add_screen", ScreenRequest{
		Prompt: prompt,
		Theme:  design.Theme,
		Prior:  design.Screens,
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.store.AppendScreen(ctx, id, models.Screen{HTML: html})
	if err != nil {
		return nil, storageErr(err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// SetTheme replaces the design's theme. Screens are not regenerated.
func (s *Service) SetTheme(ctx context.Context, ownerID string, id uuid.UUID, theme models.Theme) (*models.Design, error) {
	if _, err := s.loadAndAuthorize(ctx, ownerID, id); err != nil {
		return nil, err
	}

	if !theme.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}

	return s.update(ctx, id, models.DesignPatch{Theme: &theme})
}

// RenameProject replaces the design's project name.
func (s *Service) RenameProject(ctx context.Context, ownerID string, id uuid.UUID, name string) (*models.Design, error) {
	if _, err := s.loadAndAuthorize(ctx, ownerID, id); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	return s.update(ctx, id, models.DesignPatch{ProjectName: &name})
}

// List returns the owner's designs, most recent first. limit <= 0 returns
// all of them. The result is never nil.
func (s *Service) List(ctx context.Context, ownerID string, limit int) ([]models.Design, error) {
	if ownerID == "" {
		return []models.Design{}, nil
	}

	list, err := s.store.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, storageErr(err)
	}
	if list == nil {
		list = []models.Design{}
	}
	return list, nil
}

// Get returns one design.
func (s *Service) Get(ctx context.Context, ownerID string, id uuid.UUID) (*models.Design, error) {
	return s.loadAndAuthorize(ctx, ownerID, id)
}

// Delete removes the design. Exported pages are cleaned up best-effort.
func (s *Service) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if _, err := s.loadAndAuthorize(ctx, ownerID, id); err != nil {
		return err
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return storageErr(err)
	}
	if !deleted {
		return ErrNotFound
	}

	if s.publisher != nil {
		if err := s.publisher.DeletePrefix(ctx, exportPrefix(id)); err != nil {
			slog.Warn("failed to remove exported pages", "design_id", id, "error", err)
		}
	}

	slog.Info("design deleted", "design_id", id, "owner", ownerID)
	return nil
}

// loadAndAuthorize fetches the design and checks that ownerID owns it.
// Every single-design operation goes through here first.
func (s *Service) loadAndAuthorize(ctx context.Context, ownerID string, id uuid.UUID) (*models.Design, error) {
	design, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if design == nil {
		return nil, ErrNotFound
	}
	if !design.OwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return design, nil
}

func (s *Service) update(ctx context.Context, id uuid.UUID, patch models.DesignPatch) (*models.Design, error) {
	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, storageErr(err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

// allow consults the limiter. Limiter failures are logged and let through.
func (s *Service) allow(ctx context.Context, ownerID string) error {
	if s.limiter == nil {
		return nil
	}

	ok, err := s.limiter.Allow(ctx, ownerID)
	if err != nil {
		slog.Warn("generation quota check failed", "owner", ownerID, "error", err)
		return nil
	}
	if !ok {
		generationsTotal.WithLabelValues("quota", "rate_limited").Inc()
		return ErrRateLimited
	}
	return nil
}

type generateResult struct {
	html string
	err  error
}

// generate calls the generator under the configured timeout. The call is
// abandoned when the deadline passes even if the generator ignores ctx.
func (s *Service) generate(ctx context.Context, op string, req ScreenRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan generateResult, 1)
	go func() {
		html, err := s.generator.GenerateScreen(ctx, req)
		done <- generateResult{html: html, err: err}
	}()

	var res generateResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res = generateResult{err: ctx.Err()}
	}
	generationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	switch {
	case res.err != nil && errors.Is(res.err, ErrPromptRejected):
		generationsTotal.WithLabelValues(op, "rejected").Inc()
		return "", res.err
	case res.err != nil:
		generationsTotal.WithLabelValues(op, "failed").Inc()
		slog.Error("screen generation failed", "operation", op, "error", res.err)
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, res.err)
	case strings.TrimSpace(res.html) == "":
		generationsTotal.WithLabelValues(op, "failed").Inc()
		slog.Error("screen generation returned no markup", "operation", op)
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	generationsTotal.WithLabelValues(op, "ok").Inc()
	return res.html, nil
}

// ProjectNameFromPrompt returns the first three words of prompt, or
// DefaultProjectName when it has none.
func ProjectNameFromPrompt(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) == 0 {
		return DefaultProjectName
	}
	if len(words) > projectNameWords {
		words = words[:projectNameWords]
	}
	return truncateRunes(strings.Join(words, " "), MaxProjectNameLen)
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: must not be empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxProjectNameLen {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidName, MaxProjectNameLen)
	}
	return nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}
