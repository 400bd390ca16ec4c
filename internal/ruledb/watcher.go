package ruledb

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Store when its rules file changes on disk. Editors and
// package managers tend to emit bursts of events for one logical save, so
// reloads are debounced.
type Watcher struct {
	store    *Store
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a watcher for the store's rules file. Stores backed by
// the embedded bundle have nothing to watch.
func NewWatcher(store *Store, debounce time.Duration) (*Watcher, error) {
	if store.Path() == "" {
		return nil, errors.New("ruledb: store has no file to watch")
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory rather than the file: most editors replace the
	// file on save, which drops a direct file watch.
	if err := fsw.Add(filepath.Dir(store.Path())); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{store: store, debounce: debounce, fsw: fsw}, nil
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	target := filepath.Clean(w.store.Path())
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				// The timer may have fired between selects; drain the
				// stale tick or Reset schedules a reload too early.
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("rules watcher error", "error", err)
		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.store.Reload(); err != nil {
				slog.Error("rules reload failed, keeping previous ruleset", "error", err)
				continue
			}
			slog.Info("rules reloaded", "version", w.store.Current().Version)
		}
	}
}
