// Package watcher reports changes to individual files, such as the config
// file of a running service.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

type Watcher interface {
	Watch(ctx context.Context, path string) error
	Stop() error
	OnChange(callback func(path string, event EventType))
}

type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
)

func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventModify:
		return "modify"
	case EventDelete:
		return "delete"
	}
	return fmt.Sprintf("EventType(%d)", int(e))
}

// FileWatcher watches single files. It listens on the parent directory so
// that files replaced by rename, as most editors save them, keep reporting.
type FileWatcher struct {
	logger *slog.Logger

	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
	callback func(path string, event EventType)
	done     chan struct{}
}

func NewFileWatcher(logger *slog.Logger) *FileWatcher {
	return &FileWatcher{logger: logger, files: make(map[string]struct{})}
}

// Watch starts reporting changes to path until ctx is done or Stop is
// called.
func (w *FileWatcher) Watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fsw == nil {
		fsw, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		w.fsw = fsw
		w.done = make(chan struct{})
		go w.loop(ctx, fsw, w.done)
	}

	if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w.files[abs] = struct{}{}
	w.logger.Info("watching file", "path", abs)
	return nil
}

func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	fsw, done := w.fsw, w.done
	w.fsw = nil
	w.mu.Unlock()

	if fsw == nil {
		return nil
	}
	err := fsw.Close()
	<-done
	return err
}

func (w *FileWatcher) OnChange(callback func(path string, event EventType)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callback = callback
}

func (w *FileWatcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.fsw == fsw {
				w.fsw = nil
			}
			w.mu.Unlock()
			fsw.Close()
			// Drain until Close has stopped the channels.
			for range fsw.Events {
			}
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.dispatch(ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

func (w *FileWatcher) dispatch(ev fsnotify.Event) {
	name := filepath.Clean(ev.Name)

	w.mu.Lock()
	_, watched := w.files[name]
	cb := w.callback
	w.mu.Unlock()

	if !watched || cb == nil {
		return
	}

	var kind EventType
	switch {
	case ev.Has(fsnotify.Create):
		kind = EventCreate
	case ev.Has(fsnotify.Write):
		kind = EventModify
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		kind = EventDelete
	default:
		return
	}
	w.logger.Debug("file changed", "path", name, "event", kind.String())
	cb(name, kind)
}
