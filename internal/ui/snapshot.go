package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SnapshotConfig configures a non-interactive render of the demo page.
type SnapshotConfig struct {
	Root      RootOptions
	StartKeys []string
}

// NewSnapshotModel builds the page with synchronous filtering and sticky
// toasts, then replays the start keys against it.
func NewSnapshotModel(cfg SnapshotConfig) *RootModel {
	opts := cfg.Root
	opts.Selector.Debounce = 0
	opts.Toast = -1
	m := NewRootModel(opts)
	if updated, ok := ApplyStartupKeys(m, cfg.StartKeys).(*RootModel); ok {
		m = updated
	}
	return m
}

// RenderSnapshot renders the page after the start keys have been applied.
// Output is exactly Root.Height lines when a height is set.
func RenderSnapshot(cfg SnapshotConfig) string {
	return RenderSnapshotModel(NewSnapshotModel(cfg), cfg)
}

// RenderSnapshotModel renders a model built by NewSnapshotModel, so callers
// can inspect its final state as well.
func RenderSnapshotModel(m *RootModel, cfg SnapshotConfig) string {
	view := m.Render()
	if cfg.Root.NoColor {
		view = ansi.Strip(view)
	}
	return padSnapshotHeight(view, cfg.Root.Height, cfg.Root.Width)
}

func padSnapshotHeight(view string, height, width int) string {
	if height <= 0 {
		return view
	}
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines[:height], "\n")
	}
	padLine := " "
	if width > 1 {
		padLine = strings.Repeat(" ", width)
	}
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
