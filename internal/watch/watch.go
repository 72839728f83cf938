// Package watch re-runs an action when watched files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is the quiet period after the last change before the
// action runs.
const DefaultDebounce = 200 * time.Millisecond

// Watcher monitors a set of files. Directories containing the files are
// watched rather than the files themselves, so editors that replace files
// on save are handled.
type Watcher struct {
	files    map[string]struct{}
	dirs     map[string]struct{}
	debounce time.Duration
	logger   logrus.FieldLogger
}

// New creates a watcher for paths.
func New(paths []string, debounce time.Duration, logger logrus.FieldLogger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		dirs:     make(map[string]struct{}),
		debounce: debounce,
		logger:   logger,
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", p, err)
		}

		w.files[abs] = struct{}{}
		w.dirs[filepath.Dir(abs)] = struct{}{}
	}

	return w, nil
}

// Run calls fn after every burst of writes, creates or renames of a watched
// file until ctx is done. Errors from fn are logged and do not stop the
// watcher.
func (w *Watcher) Run(ctx context.Context, fn func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	for dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.WithField("file", event.Name).Debug("change detected")
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			w.logger.WithError(err).Error("watcher error")
		case <-timer.C:
			if err := fn(); err != nil {
				w.logger.WithError(err).Error("watch action failed")
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	_, ok := w.files[abs]

	return ok
}
