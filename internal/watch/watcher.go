// Copyright 2025 Solseq Users
// SPDX-License-Identifier: Apache-2.0

// Package watch polls source files for modification and triggers diagram
// regeneration.
package watch

import (
	"context"
	"os"
	"time"

	"github.com/dotandev/solseq/internal/logger"
)

// Watcher polls a fixed set of paths at a fixed interval.
type Watcher struct {
	interval time.Duration
}

// NewWatcher creates a watcher; a zero interval defaults to one second.
func NewWatcher(interval time.Duration) *Watcher {
	if interval == 0 {
		interval = 1 * time.Second
	}
	return &Watcher{interval: interval}
}

// Watch invokes onChange whenever any watched file's modification time moves
// forward, until the context is cancelled. Errors from onChange are logged
// and do not stop the watch; a file that disappears is skipped until it
// returns.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(ctx context.Context) error) error {
	lastSeen := make(map[string]time.Time, len(paths))
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			lastSeen[p] = info.ModTime()
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		changed := false
		for _, p := range paths {
			info, err := os.Stat(p)
			if err != nil {
				continue
			}
			if mod := info.ModTime(); mod.After(lastSeen[p]) {
				lastSeen[p] = mod
				changed = true
			}
		}

		if !changed {
			continue
		}

		logger.Logger.Info("source change detected, regenerating")
		if err := onChange(ctx); err != nil {
			logger.Logger.Error("regeneration failed", "error", err)
		}
	}
}
