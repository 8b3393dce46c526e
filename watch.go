package main

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"flowcanvas/internal/debug"
)

const configDebounce = 150 * time.Millisecond

// configWatcher reloads the config file whenever it changes on disk.
// Editors often save by renaming a temp file over the original, so the
// directory is watched rather than the file itself.
type configWatcher struct {
	path    string
	fsw     *fsnotify.Watcher
	reloads chan configReloadedMsg
	cancel  context.CancelFunc

	mu    sync.Mutex
	timer *time.Timer
}

func newConfigWatcher(path string) (*configWatcher, error) {
	if path == "" {
		return nil, errors.New("no config path")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &configWatcher{
		path:    path,
		fsw:     fsw,
		reloads: make(chan configReloadedMsg, 1),
		cancel:  cancel,
	}
	go w.run(ctx)
	return w, nil
}

func (w *configWatcher) run(ctx context.Context) {
	target := filepath.Base(w.path)
	events, errs := w.fsw.Events, w.fsw.Errors
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.trigger()
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			debug.Log("config watcher: %v", err)
		}
	}
}

// trigger restarts the debounce timer; only the last of a burst of writes
// causes a reload.
func (w *configWatcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(configDebounce, w.reload)
}

func (w *configWatcher) reload() {
	cfg, err := loadConfigFrom(w.path)
	msg := configReloadedMsg{config: cfg, err: err}
	select {
	case w.reloads <- msg:
	default:
		// Drop the stale reload still queued and keep the newest.
		select {
		case <-w.reloads:
		default:
		}
		select {
		case w.reloads <- msg:
		default:
		}
	}
}

// wait blocks until the next reload. It is re-issued after every
// configReloadedMsg.
func (w *configWatcher) wait() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		return <-w.reloads
	}
}

func (w *configWatcher) Close() error {
	if w == nil {
		return nil
	}
	w.cancel()
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
