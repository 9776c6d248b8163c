// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package designstest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"mockupstudio/internal/designs"
)

// StubGenerator returns deterministic markup derived from the prompt and
// records every request it receives.
type StubGenerator struct {
	// Err, when set, is returned instead of markup.
	Err error
	// Block makes GenerateScreen wait for ctx to end.
	Block bool
	// HTML overrides the generated markup when non-nil.
	HTML *string

	mu       sync.Mutex
	requests []designs.ScreenRequest
}

func (g *StubGenerator) GenerateScreen(ctx context.Context, req designs.ScreenRequest) (string, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	if g.Block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if g.Err != nil {
		return "", g.Err
	}
	if g.HTML != nil {
		return *g.HTML, nil
	}
	return fmt.Sprintf("<div data-theme=%q>%s</div>", req.Theme, strings.ToLower(req.Prompt)), nil
}

// Requests returns a copy of every request seen so far.
func (g *StubGenerator) Requests() []designs.ScreenRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]designs.ScreenRequest, len(g.requests))
	copy(out, g.requests)
	return out
}

// StubLimiter allows Limit calls per owner. A zero Limit allows
// everything.
type StubLimiter struct {
	Limit int
	Err   error

	mu   sync.Mutex
	used map[string]int
}

func (l *StubLimiter) Allow(_ context.Context, ownerID string) (bool, error) {
	if l.Err != nil {
		return false, l.Err
	}
	if l.Limit <= 0 {
		return true, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.used == nil {
		l.used = make(map[string]int)
	}
	l.used[ownerID]++
	return l.used[ownerID] <= l.Limit, nil
}

// MemoryPublisher keeps published pages in a map and returns
// "https://exports.test/<key>" URLs.
type MemoryPublisher struct {
	Err error

	mu    sync.Mutex
	pages map[string][]byte
}

func (p *MemoryPublisher) Publish(_ context.Context, key string, html []byte) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pages == nil {
		p.pages = make(map[string][]byte)
	}
	p.pages[key] = append([]byte(nil), html...)
	return "https://exports.test/" + key, nil
}

func (p *MemoryPublisher) DeletePrefix(_ context.Context, prefix string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for k := range p.pages {
		if strings.HasPrefix(k, prefix) {
			delete(p.pages, k)
		}
	}
	return nil
}

// Page returns a published page.
func (p *MemoryPublisher) Page(key string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.pages[key]
	return b, ok
}

// Len returns the number of stored pages.
func (p *MemoryPublisher) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pages)
}

var (
	_ designs.Generator = (*StubGenerator)(nil)
	_ designs.Limiter   = (*StubLimiter)(nil)
	_ designs.Publisher = (*MemoryPublisher)(nil)
)
