// Package picker is the embeddable entry point for the contact selector.
// Hosts pass a contact list and get back the contact the user accepted.
//
//	c, err := picker.Run(ctx, contacts, picker.DefaultConfig())
//	if errors.Is(err, picker.ErrAborted) {
//	    return nil
//	}
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/oakwood-commons/contactpick/internal/config"
	"github.com/oakwood-commons/contactpick/internal/ui"
	"github.com/oakwood-commons/contactpick/pkg/contact"
)

// ErrAborted is returned by Run when the user quits without accepting.
var ErrAborted = errors.New("selection aborted")

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// Config holds host-provided settings for the picker.
type Config struct {
	Title       string
	Placeholder string
	EmptyText   string
	// Default is shown as the initial selection.
	Default *contact.Contact
	// Debounce between typing and filtering. Nil uses the built-in 300ms;
	// zero filters on every keystroke.
	Debounce *time.Duration
	MaxRows  int
	// InitialCount limits the contacts offered until the user asks for
	// all of them. Zero offers everything.
	InitialCount int
	// Width is the selector width. The selector never grows past the
	// screen.
	Width int
	// ScreenWidth and ScreenHeight size the page. Run leaves the terminal
	// in charge when they are zero.
	ScreenWidth  int
	ScreenHeight int
	NoColor      bool
	// ThemeName selects a theme loaded from the config file (dark, light,
	// warm). Theme takes precedence when set.
	ThemeName string
	Theme     *ui.Theme
	Keys      config.KeysConfig
	// Toast is how long selection toasts stay visible.
	Toast time.Duration
	// OnSelect is called on every commit and clear, before Run returns.
	OnSelect  func(*contact.Contact)
	StartKeys []string
	Logger    logr.Logger

	// themeErr records why FromFile could not activate the file's default
	// theme. Apply logs it once a logger is set.
	themeErr error
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() Config {
	cfg, err := config.Default()
	if err != nil {
		debounce := ui.DefaultDebounce
		return Config{Debounce: &debounce}
	}
	return FromFile(cfg)
}

// FromFile maps a loaded configuration file onto picker settings and loads
// its themes.
func FromFile(f config.File) Config {
	debounce := f.Selector.Debounce()
	if f.Selector.DebounceMs == nil {
		debounce = ui.DefaultDebounce
	}
	// A theme error leaves the built-in palette active.
	themeErr := ui.InitializeThemes(f)
	return Config{
		themeErr:     themeErr,
		Title:        f.Demo.Title,
		Placeholder:  f.Selector.Placeholder,
		EmptyText:    f.Selector.EmptyText,
		Debounce:     &debounce,
		MaxRows:      config.IntOr(f.Selector.MaxRows, ui.DefaultMaxRows),
		InitialCount: config.IntOr(f.Demo.InitialCount, 0),
		Width:        config.IntOr(f.Selector.Width, 0),
		ThemeName:    f.Theme.Default,
		Keys:         f.Keys,
		Toast:        f.Demo.Toast(),
	}
}

// Apply activates the configured theme.
func (c Config) Apply() error {
	if c.themeErr != nil && c.Logger.GetSink() != nil {
		c.Logger.V(1).Info("config theme not applied", "error", c.themeErr.Error())
	}
	if c.Theme != nil {
		ui.SetTheme(*c.Theme)
		return nil
	}
	if strings.TrimSpace(c.ThemeName) == "" {
		return nil
	}
	if err := ui.SetThemeByName(c.ThemeName); err != nil {
		return fmt.Errorf("apply theme: %w", err)
	}
	return nil
}

func (c Config) rootOptions(contacts []contact.Contact) ui.RootOptions {
	debounce := ui.DefaultDebounce
	if c.Debounce != nil {
		debounce = *c.Debounce
	}
	return ui.RootOptions{
		Title:        c.Title,
		All:          contacts,
		InitialCount: c.InitialCount,
		Toast:        c.Toast,
		NoColor:      c.NoColor,
		Width:        c.ScreenWidth,
		Height:       c.ScreenHeight,
		Logger:       c.Logger,
		Selector: ui.SelectorOptions{
			Default:     c.Default,
			Placeholder: c.Placeholder,
			EmptyText:   c.EmptyText,
			Debounce:    debounce,
			MaxRows:     c.MaxRows,
			Width:       c.Width,
			Keys:        ui.KeyMapFromConfig(c.Keys),
			NoColor:     c.NoColor,
			OnSelect:    c.OnSelect,
			Logger:      c.Logger,
		},
	}
}

// Run shows the picker and blocks until the user accepts (the accept key)
// or quits. Accepting with nothing selected returns a nil contact.
func Run(ctx context.Context, contacts []contact.Contact, cfg Config, opts ...tea.ProgramOption) (*contact.Contact, error) {
	if err := cfg.Apply(); err != nil {
		return nil, err
	}
	m, err := ui.Run(ctx, cfg.rootOptions(contacts), opts...)
	if err != nil {
		return nil, err
	}
	c, ok := m.Result()
	if !ok {
		return nil, ErrAborted
	}
	return c, nil
}

// Snapshot renders the picker after replaying cfg.StartKeys and returns
// the final page plus the state it ended in. Filtering is synchronous and
// toasts stay visible.
func Snapshot(contacts []contact.Contact, cfg Config) (string, *ui.RootModel, error) {
	if err := cfg.Apply(); err != nil {
		return "", nil, err
	}
	snap := ui.SnapshotConfig{Root: cfg.rootOptions(contacts), StartKeys: cfg.StartKeys}
	m := ui.NewSnapshotModel(snap)
	return ui.RenderSnapshotModel(m, snap), m, nil
}

// RenderSnapshot is Snapshot without the final state.
func RenderSnapshot(contacts []contact.Contact, cfg Config) (string, error) {
	out, _, err := Snapshot(contacts, cfg)
	return out, err
}

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS environment variable
// and finally to (120, 24).
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
