// Package watch re-runs an action whenever a file changes.
//
// It follows a single file with fsnotify, coalesces bursts of writes and
// survives editors that save by renaming a new file over the old one.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrFileGone is returned when the watched file disappears and does not
// come back within the reappear timeout.
var ErrFileGone = errors.New("watched file removed")

// Options configures the watcher behavior.
type Options struct {
	FilePath string        // File to watch
	Debounce time.Duration // Quiet period before OnChange runs; 0 uses 200ms
	Reappear time.Duration // How long to wait for a removed file to come back; 0 uses 10s

	// OnChange runs once at start and again after every settled change.
	// Its errors are logged and watching continues.
	OnChange func(ctx context.Context) error

	Logger *slog.Logger
}

// Watcher re-runs OnChange for a single file.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// New creates a new Watcher with the given options.
func New(opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	if opts.Reappear <= 0 {
		opts.Reappear = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{opts: opts, logger: logger}
}

// Run blocks until ctx is cancelled or the file is gone for good.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := os.Stat(w.opts.FilePath); err != nil {
		return fmt.Errorf("file does not exist: %s", w.opts.FilePath)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	w.watcher = watcher
	defer w.watcher.Close()

	if err := w.watcher.Add(w.opts.FilePath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.FilePath, err)
	}

	w.trigger(ctx)
	return w.watch(ctx)
}

// watch waits for file events and runs OnChange once they settle.
func (w *Watcher) watch(ctx context.Context) error {
	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timer.C:
			w.trigger(ctx)

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}

			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				timer.Reset(w.opts.Debounce)

			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				if err := w.handleReplace(ctx); err != nil {
					return err
				}
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// handleReplace waits for a renamed or removed file to reappear and
// watches the new file.
func (w *Watcher) handleReplace(ctx context.Context) error {
	_ = w.watcher.Remove(w.opts.FilePath)

	timeout := time.After(w.opts.Reappear)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("%w: %s", ErrFileGone, w.opts.FilePath)
		case <-ticker.C:
			if _, err := os.Stat(w.opts.FilePath); err != nil {
				continue
			}
			if err := w.watcher.Add(w.opts.FilePath); err != nil {
				return fmt.Errorf("failed to watch replaced file: %w", err)
			}
			w.logger.Info("file replaced, watching new file", "path", w.opts.FilePath)
			return nil
		}
	}
}

func (w *Watcher) trigger(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := w.opts.OnChange(ctx); err != nil {
		w.logger.Error("run failed", "path", w.opts.FilePath, "error", err)
	}
}
