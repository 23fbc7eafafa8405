// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"sort"
	"time"
)

// DefaultDuration is how long a changed path stays flagged after detection.
const DefaultDuration = 1500 * time.Millisecond

// Highlighter holds the change-tracking state for one observed entity view:
// the previous snapshot, the tracking key it belongs to, and the set of
// recently-changed paths with their expiry times. One Highlighter per view;
// callers sharing an instance across goroutines must serialize access.
type Highlighter struct {
	duration time.Duration
	clock    func() time.Time

	key     string
	prev    any
	hasPrev bool
	marks   map[string]time.Time
}

// Option customizes a Highlighter.
type Option func(*Highlighter)

// WithDuration overrides the highlight window.
func WithDuration(d time.Duration) Option {
	return func(h *Highlighter) {
		h.duration = d
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(clock func() time.Time) Option {
	return func(h *Highlighter) {
		h.clock = clock
	}
}

// New returns a Highlighter with no baseline snapshot.
func New(options ...Option) *Highlighter {
	h := &Highlighter{
		duration: DefaultDuration,
		clock:    time.Now,
		marks:    map[string]time.Time{},
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

// Reset clears the stored snapshot and every highlight, and records
// trackingKey as the current entity. Idempotent.
func (h *Highlighter) Reset(trackingKey string) {
	h.key = trackingKey
	h.prev = nil
	h.hasPrev = false
	h.marks = map[string]time.Time{}
}

// Update ingests the next snapshot for trackingKey and returns the paths
// that changed since the previous snapshot.
//
// The first call ever establishes a baseline and returns nothing. A tracking
// key different from the recorded one (including a transition between the
// empty and a defined key) means "different entity": the state is reset, the
// snapshot becomes the new baseline, and no diff is computed. Otherwise the
// snapshot is diffed against the previous one and each changed path is
// flagged until now plus the configured duration.
func (h *Highlighter) Update(snapshot any, trackingKey string) []string {
	if !h.hasPrev || trackingKey != h.key {
		h.Reset(trackingKey)
		h.prev = snapshot
		h.hasPrev = true
		return nil
	}

	changed := Diff(h.prev, snapshot)

	now := h.clock()
	expiry := now.Add(h.duration)
	for _, path := range changed {
		h.marks[path] = expiry
	}

	// Memory hygiene: drop entries that have already aged out.
	for path, exp := range h.marks {
		if !now.Before(exp) {
			delete(h.marks, path)
		}
	}

	h.prev = snapshot
	return changed
}

// IsHighlighted reports whether path is flagged as recently changed at now.
func (h *Highlighter) IsHighlighted(path string, now time.Time) bool {
	expiry, ok := h.marks[path]
	return ok && now.Before(expiry)
}

// VisiblePaths returns the paths still flagged at now, sorted.
func (h *Highlighter) VisiblePaths(now time.Time) []string {
	//nolint:prealloc // Don't prealloc because we don't know how many are live.
	var paths []string
	for path, expiry := range h.marks {
		if now.Before(expiry) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}
