package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reload is delivered by Watcher after the catalog file changed.
// Exactly one of Catalog and Err is set.
type Reload struct {
	Catalog *Catalog
	Err     error
}

// Watcher reloads a catalog file whenever it is written.
//
// The parent directory is watched rather than the file itself so editors
// that save through rename-and-replace keep triggering reloads.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	updates  chan Reload

	fingerprints *FingerprintCache
	last         string // fingerprint of the last content loaded

	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher prepares a watcher for path. Call Run to start it.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	path = filepath.Clean(expandHome(path))
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:         path,
		debounce:     150 * time.Millisecond,
		logger:       logger,
		watcher:      fw,
		updates:      make(chan Reload, 1),
		fingerprints: NewFingerprintCache(),
		done:         make(chan struct{}),
	}
	// Missing files are fine; the first write will load them.
	w.last, _ = w.fingerprints.Fingerprint(path)
	return w, nil
}

// Updates returns the channel reloads are delivered on. It is closed when Run returns.
func (w *Watcher) Updates() <-chan Reload {
	return w.updates
}

// Run processes file events until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.updates)
	defer w.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("catalog file event", zap.String("op", event.Op.String()), zap.String("path", event.Name))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if fp, err := w.fingerprints.Fingerprint(w.path); err == nil {
				if fp == w.last {
					w.logger.Debug("catalog content unchanged", zap.String("fingerprint", ShortFingerprint(fp)))
					continue
				}
				w.last = fp
			}
			c, err := LoadFromFile(w.path)
			if err != nil {
				w.logger.Warn("catalog reload failed", zap.String("path", w.path), zap.Error(err))
			} else {
				w.logger.Info("catalog reloaded", zap.String("path", w.path), zap.Int("calculators", c.Len()))
			}
			select {
			case w.updates <- Reload{Catalog: c, Err: err}:
			case <-ctx.Done():
				return
			case <-w.done:
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("catalog watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
