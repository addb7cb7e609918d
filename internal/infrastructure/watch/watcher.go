// Package watch reports changes to a single config file.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/doeshing/organize-desk/internal/ports"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// FileWatcher watches one file through its parent directory, so that saves
// done by writing a temp file and renaming it are seen as well.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   ports.Logger
}

// NewFileWatcher returns a watcher for path. The file must exist.
func NewFileWatcher(path string, logger ports.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("error accessing file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &FileWatcher{path: abs, debounce: DefaultDebounce, logger: logger}, nil
}

// SetDebounce changes the quiet period after the last event before onChange runs.
func (w *FileWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Run blocks until ctx is done, calling onChange after each settled write,
// create or rename of the file. onChange runs on the Run goroutine.
func (w *FileWatcher) Run(ctx context.Context, onChange func()) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsWatcher.Close()

	dir := filepath.Dir(w.path)
	if err := fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.debug("watching file", map[string]interface{}{"file": w.path})

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Error("fsnotify watcher error", err, map[string]interface{}{"file": w.path})
			}
		case <-timer.C:
			if _, err := os.Stat(w.path); err != nil {
				w.debug("file not present after event", map[string]interface{}{"file": w.path})
				continue
			}
			onChange()
		}
	}
}

func (w *FileWatcher) debug(msg string, fields map[string]interface{}) {
	if w.logger != nil {
		w.logger.Debug(msg, fields)
	}
}
