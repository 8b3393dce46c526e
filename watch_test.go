package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigWatcherReloads(t *testing.T) {
	path := writeConfig(t, "edge_style: bezier\n")
	w, err := newConfigWatcher(path)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("edge_style: step\nauto_connect: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan configReloadedMsg, 1)
	go func() { got <- w.wait()().(configReloadedMsg) }()
	select {
	case msg := <-got:
		if msg.err != nil {
			t.Fatalf("reload error: %v", msg.err)
		}
		if msg.config.EdgeStyle != "step" || !msg.config.AutoConnect {
			t.Errorf("reloaded config = %+v", msg.config)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the config")
	}
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	path := writeConfig(t, "")
	w, err := newConfigWatcher(path)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x: 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case msg := <-w.reloads:
		t.Errorf("unexpected reload: %+v", msg)
	case <-time.After(3 * configDebounce):
	}
}

func TestNilWatcher(t *testing.T) {
	var w *configWatcher
	if w.wait() != nil {
		t.Error("nil watcher should not produce a command")
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close on nil watcher: %v", err)
	}
	if _, err := newConfigWatcher(""); err == nil {
		t.Error("empty path should be rejected")
	}
}
