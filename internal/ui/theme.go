package ui

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/contactpick/internal/config"
)

// Theme defines colors used by the selector and the demo page.
type Theme struct {
	Accent      color.Color // Titles and the focused border
	Border      color.Color // Unfocused border
	BorderStyle string      // Border style (normal|rounded)
	Text        color.Color // Primary text
	Muted       color.Color // Emails, placeholder and hints
	Match       color.Color // Matched query text
	SelectedFG  color.Color // Highlighted row foreground
	SelectedBG  color.Color // Highlighted row background
	Overlay     color.Color // Committed selection label
	Success     color.Color // Toast text
	FooterKey   color.Color // Footer key labels
}

var (
	themesMu     sync.RWMutex
	loadedThemes = map[string]Theme{}
	currentTheme = fallbackDefaultTheme()
)

func fallbackDefaultTheme() Theme {
	return Theme{
		Accent:      lipgloss.Color("81"),
		Border:      lipgloss.Color("240"),
		BorderStyle: "rounded",
		Text:        lipgloss.Color("252"),
		Muted:       lipgloss.Color("245"),
		Match:       lipgloss.Color("220"),
		SelectedFG:  lipgloss.Color("231"),
		SelectedBG:  lipgloss.Color("25"),
		Overlay:     lipgloss.Color("255"),
		Success:     lipgloss.Color("114"),
		FooterKey:   lipgloss.Color("15"),
	}
}

// InitializeThemes loads every theme from cfg and activates the default
// one. Missing colors fall back to the built-in palette.
func InitializeThemes(cfg config.File) error {
	themes := make(map[string]Theme, len(cfg.Themes))
	base := fallbackDefaultTheme()
	for name, tc := range cfg.Themes {
		themes[name] = ThemeFromConfig(tc, base)
	}

	themesMu.Lock()
	loadedThemes = themes
	themesMu.Unlock()

	name := strings.TrimSpace(cfg.Theme.Default)
	if name == "" {
		name = "dark"
	}
	return SetThemeByName(name)
}

// SetTheme overrides the active theme.
func SetTheme(t Theme) {
	t.BorderStyle = normalizeBorderStyle(t.BorderStyle)
	themesMu.Lock()
	currentTheme = t
	themesMu.Unlock()
}

// SetThemeByName activates a theme loaded by InitializeThemes.
func SetThemeByName(name string) error {
	themesMu.RLock()
	theme, ok := loadedThemes[name]
	empty := len(loadedThemes) == 0
	themesMu.RUnlock()
	if ok {
		SetTheme(theme)
		return nil
	}
	if empty {
		return fmt.Errorf("no themes loaded; call InitializeThemes() before SetThemeByName()")
	}
	return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	themesMu.RLock()
	defer themesMu.RUnlock()
	return currentTheme
}

// ThemeNames returns the loaded theme names, sorted.
func ThemeNames() []string {
	themesMu.RLock()
	defer themesMu.RUnlock()
	names := make([]string, 0, len(loadedThemes))
	for name := range loadedThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeFromConfig converts a YAML theme, filling unset colors from base.
func ThemeFromConfig(tc config.ThemeConfig, base Theme) Theme {
	t := base
	set := func(v config.ColorValue, dst *color.Color) {
		if c, ok := parseColor(v); ok {
			*dst = c
		}
	}
	set(tc.Accent, &t.Accent)
	set(tc.Border, &t.Border)
	set(tc.Text, &t.Text)
	set(tc.Muted, &t.Muted)
	set(tc.Match, &t.Match)
	set(tc.SelectedFG, &t.SelectedFG)
	set(tc.SelectedBG, &t.SelectedBG)
	set(tc.Overlay, &t.Overlay)
	set(tc.Success, &t.Success)
	set(tc.FooterKey, &t.FooterKey)
	if s := strings.TrimSpace(tc.BorderStyle); s != "" {
		t.BorderStyle = s
	}
	t.BorderStyle = normalizeBorderStyle(t.BorderStyle)
	return t
}

func parseColor(v config.ColorValue) (color.Color, bool) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return nil, false
	}
	if n, err := strconv.Atoi(s); err == nil && (n < 0 || n > 255) {
		return nil, false
	}
	return lipgloss.Color(s), true
}

func normalizeBorderStyle(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "square":
		return "normal"
	default:
		return "rounded"
	}
}

func borderForStyle(style string) lipgloss.Border {
	if normalizeBorderStyle(style) == "normal" {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}
