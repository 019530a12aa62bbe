package picker

import (
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/contactpick/internal/config"
	"github.com/oakwood-commons/contactpick/internal/ui"
	"github.com/oakwood-commons/contactpick/pkg/contact"
)

var people = []contact.Contact{
	{ID: "1", Name: "Alice Young", Email: "alice@x.com"},
	{ID: "2", Name: "Bob Young", Email: "bob@x.com"},
	{ID: "3", Name: "Carol Stone", Email: "carol@y.org"},
}

func TestDefaultConfigFromEmbeddedFile(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg.Debounce)
	assert.Equal(t, 300*time.Millisecond, *cfg.Debounce)
	assert.Equal(t, "Search contacts...", cfg.Placeholder)
	assert.Equal(t, "No contacts found", cfg.EmptyText)
	assert.Equal(t, 8, cfg.MaxRows)
	assert.Equal(t, 20, cfg.InitialCount)
	assert.Equal(t, "dark", cfg.ThemeName)
	assert.Equal(t, 3*time.Second, cfg.Toast)
}

func TestFromFileDebounceUnset(t *testing.T) {
	f, err := config.Default()
	require.NoError(t, err)
	f.Selector.DebounceMs = nil
	cfg := FromFile(f)
	assert.Equal(t, ui.DefaultDebounce, *cfg.Debounce)
}

func TestApplyUnknownTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThemeName = "neon"
	err := cfg.Apply()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply theme")
}

func TestApplyLogsConfigThemeError(t *testing.T) {
	f, err := config.Default()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ui.InitializeThemes(f) })

	bad := f
	bad.Theme.Default = "neon"
	cfg := FromFile(bad)
	cfg.ThemeName = "warm"

	var logged []string
	cfg.Logger = funcr.New(func(prefix, args string) {
		logged = append(logged, args)
	}, funcr.Options{Verbosity: 1})

	require.NoError(t, cfg.Apply())
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "config theme not applied")
	assert.Contains(t, logged[0], `unknown theme \"neon\"`)

	good := FromFile(f)
	logged = nil
	good.Logger = cfg.Logger
	require.NoError(t, good.Apply())
	assert.Empty(t, logged)
}

func TestSnapshotCommit(t *testing.T) {
	var notified []*contact.Contact
	cfg := DefaultConfig()
	cfg.NoColor = true
	cfg.ScreenWidth, cfg.ScreenHeight = 70, 24
	cfg.OnSelect = func(c *contact.Contact) { notified = append(notified, c) }
	cfg.StartKeys = []string{"young", "<Down>", "<Down>", "<CR>"}

	out, m, err := Snapshot(people, cfg)
	require.NoError(t, err)
	assert.Len(t, strings.Split(out, "\n"), 24)
	assert.Contains(t, out, "Name:  Bob Young")

	require.Len(t, notified, 1)
	assert.Equal(t, "2", notified[0].ID)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "2", m.Selected().ID)
}

func TestRenderSnapshotDefaultSelection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoColor = true
	cfg.Default = &people[2]
	out, err := RenderSnapshot(people, cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Carol Stone (carol@y.org)")
	assert.Contains(t, out, "Name:  Carol Stone")
}

func TestDetectTerminalSizeFallback(t *testing.T) {
	w, _ := DetectTerminalSize()
	assert.Positive(t, w)
}
