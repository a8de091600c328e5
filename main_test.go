package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"globegrid/config"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel(t *testing.T) model {
	t.Helper()
	conf := config.Default()
	conf.Map.Shapefile = ""
	conf.Map.DefaultZoom = 5
	conf.Map.SnapshotDir = t.TempDir()
	m := initialModel(conf, nil, nil)
	if m.err != nil {
		t.Fatalf("initialModel error = %v", m.err)
	}
	return m
}

func TestLayout(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(model)

	if w, h := m.mapModel.Scene().CanvasSize(); w != 100-sidebarWidth-2 || h != 40-1-msgbarHeight-1-2 {
		t.Errorf("map canvas = %dx%d", w, h)
	}
	v := m.View()
	for _, want := range []string{"globegrid", "Graticule", "rebuilt grid", "zoom 5.0x"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestToggleGridKey(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	m = next.(model)
	if m.mapModel.Engine().Visible() {
		t.Fatal("grid still visible after g")
	}
	if !strings.Contains(m.View(), "grid hidden") {
		t.Error("sidebar did not pick up the hidden grid")
	}
}

func TestQuitDestroysEngine(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if !m.mapModel.Engine().IsDestroyed() {
		t.Error("engine not destroyed on quit")
	}
}

func TestQuitLogsDestroyError(t *testing.T) {
	m := testModel(t)
	var buf bytes.Buffer
	m.log = slog.New(slog.NewTextHandler(&buf, nil))

	quit := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	next, _ := m.Update(quit)
	if buf.Len() != 0 {
		t.Fatalf("first quit logged %q", buf.String())
	}
	next.(model).Update(quit)
	if !strings.Contains(buf.String(), "destroying grid failed") {
		t.Errorf("second quit log = %q", buf.String())
	}
}

func TestRunReportsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[map\nshapefile = "), 0o644); err != nil {
		t.Fatal(err)
	}
	err := run(path)
	if err == nil || !strings.Contains(err.Error(), "failed to load") {
		t.Errorf("run() error = %v, want a load error", err)
	}
}
