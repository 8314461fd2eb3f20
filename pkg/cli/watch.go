package cli

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const presetDebounce = 100 * time.Millisecond

// PresetWatcher reports changes to a single preset file. The parent directory
// is watched so editors that save by rename are still seen.
type PresetWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewPresetWatcher starts watching path.
func NewPresetWatcher(path string) (*PresetWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch preset: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch preset: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch preset: %w", err)
	}

	pw := &PresetWatcher{
		watcher: w,
		path:    abs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go pw.run()
	return pw, nil
}

// Close stops the watcher. Events and Errors are closed once the watch loop exits.
func (w *PresetWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// run forwards changes once the file has been quiet for presetDebounce, so a
// save that arrives as several events (remove, create, write) is reported once.
func (w *PresetWatcher) run() {
	defer close(w.Events)
	defer close(w.Errors)
	timer := time.NewTimer(presetDebounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(presetDebounce)
		case <-timer.C:
			select {
			case w.Events <- w.path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			case <-w.closeCh:
				return
			}
		case <-w.closeCh:
			return
		}
	}
}

// Watch re-renders the session every time its preset file changes, until ctx
// is cancelled. onRender receives each result or the error that prevented it.
func (s *Session) Watch(ctx context.Context, onRender func(*image.NRGBA, error)) error {
	if s.PresetPath == "" {
		return fmt.Errorf("no preset loaded")
	}
	w, err := NewPresetWatcher(s.PresetPath)
	if err != nil {
		return err
	}
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			if err := s.LoadPreset(s.PresetPath); err != nil {
				onRender(nil, err)
				continue
			}
			out, _, err := s.Render()
			onRender(out, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			onRender(nil, fmt.Errorf("watch preset: %w", err))
		}
	}
}
