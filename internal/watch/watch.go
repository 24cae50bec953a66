// Package watch reruns a callback when configuration files change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/psetgrid/internal/ctxlog"
	"github.com/vk/psetgrid/internal/fsutil"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches files, and directories recursively, for changes.
type Watcher struct {
	paths     []string
	extension string
	onChange  func(ctx context.Context)
	debounce  time.Duration
}

// New creates a watcher over paths. Inside directories only files with the
// given extension count as changes; files named directly always do.
func New(paths []string, extension string, onChange func(ctx context.Context)) *Watcher {
	return &Watcher{
		paths:     append([]string(nil), paths...),
		extension: extension,
		onChange:  onChange,
		debounce:  DefaultDebounce,
	}
}

// WithDebounce sets the debounce duration.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch blocks until ctx is done. The callback runs on the watching
// goroutine, so a slow callback delays but never overlaps the next one.
func (w *Watcher) Watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	files := make(map[string]bool)
	var roots []string
	for _, p := range w.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		if info.IsDir() {
			roots = append(roots, abs)
			if err := addTree(fsw, abs); err != nil {
				return err
			}
			continue
		}
		// The parent is watched so that files replaced by editors are seen.
		files[abs] = true
		if err := fsw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
		}
	}
	logger.Info("Watching for changes.", "paths", w.paths)

	relevant := func(name string) bool {
		if files[name] {
			return true
		}
		if !strings.HasSuffix(name, w.extension) {
			return false
		}
		for _, root := range roots {
			if strings.HasPrefix(name, root+string(filepath.Separator)) {
				return true
			}
		}
		return false
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(event.Name)
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(name); err == nil && info.IsDir() && underAny(name, roots) {
					if err := addTree(fsw, name); err != nil {
						logger.Warn("Cannot watch new directory.", "path", name, "error", err)
					}
					continue
				}
			}
			if event.Has(fsnotify.Chmod) || !relevant(name) {
				continue
			}
			logger.Debug("Change detected.", "path", name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)

		case <-ctx.Done():
			logger.Debug("Watcher stopped.")
			return nil
		}
	}
}

func underAny(path string, roots []string) bool {
	for _, root := range roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addTree watches dir and every visible directory below it.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	dirs, err := fsutil.Dirs(dir)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := fsw.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}
	return nil
}
