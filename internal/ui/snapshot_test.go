package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotConfig(keys ...string) SnapshotConfig {
	return SnapshotConfig{
		Root: RootOptions{
			All:     people,
			NoColor: true,
			Width:   60,
			Height:  24,
		},
		StartKeys: keys,
	}
}

func TestRenderSnapshotInitial(t *testing.T) {
	out := RenderSnapshot(snapshotConfig())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 24)
	assert.Contains(t, lines[0], DefaultTitle)
	assert.Contains(t, out, "Search and select from 3 contacts")
	assert.Contains(t, out, DefaultPlaceholder)
	assert.Contains(t, out, "No contact selected")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderSnapshotFiltersSynchronously(t *testing.T) {
	out := RenderSnapshot(snapshotConfig("young"))
	assert.Contains(t, out, "Alice Young")
	assert.Contains(t, out, "Bob Young")
	assert.NotContains(t, out, "Carol Stone")
	assert.Contains(t, out, "2 contacts")
}

func TestRenderSnapshotCommit(t *testing.T) {
	out := RenderSnapshot(snapshotConfig("young", "<Down>", "<Down>", "<CR>"))
	assert.Contains(t, out, "Selected Contact")
	assert.Contains(t, out, "Name:  Bob Young")
	assert.Contains(t, out, "✓ You selected Bob Young", "snapshot toasts are sticky")
	assert.Len(t, strings.Split(out, "\n"), 24)
}

func TestRenderSnapshotFirstArrowOnlyOpens(t *testing.T) {
	out := RenderSnapshot(snapshotConfig("<Down>", "<Down>", "<CR>"))
	assert.Contains(t, out, "Name:  Alice Young")
	assert.NotContains(t, out, "Bob Young")
}

func TestRenderSnapshotEmptyResults(t *testing.T) {
	out := RenderSnapshot(snapshotConfig("zzz"))
	assert.Contains(t, out, DefaultEmptyText)
}

func TestRenderSnapshotClearKey(t *testing.T) {
	out := RenderSnapshot(snapshotConfig("carol", "<Down>", "<CR>", "<C-x>"))
	assert.Contains(t, out, "No contact selected")
}

func TestRenderSnapshotClickRow(t *testing.T) {
	// Focus and open, then click the second row of the dropdown.
	y := selectorTopY + firstRowLine + 1
	out := RenderSnapshot(snapshotConfig("<F4>", fmt.Sprintf("<Click:10,%d>", y)))
	assert.Contains(t, out, "Name:  Bob Young")
}

func TestPadSnapshotHeight(t *testing.T) {
	assert.Equal(t, "a\nb", padSnapshotHeight("a\nb\nc", 2, 10))
	assert.Equal(t, "a\n   ", padSnapshotHeight("a\n", 2, 3))
	assert.Equal(t, "x", padSnapshotHeight("x", 0, 10))
}
