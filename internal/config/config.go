// Package config defines the YAML configuration schema for contactpick and
// the embedded defaults every user file is merged onto.
package config

import (
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the top-level configuration document.
type File struct {
	App      AppConfig              `yaml:"app" yamlcomment:"Application metadata"`
	Selector SelectorConfig         `yaml:"selector" yamlcomment:"Selector component behavior"`
	Demo     DemoConfig             `yaml:"demo" yamlcomment:"Demo page settings"`
	Keys     KeysConfig             `yaml:"keys" yamlcomment:"Key bindings (bubbletea key strings)"`
	Theme    ThemeSelectionConfig   `yaml:"theme" yamlcomment:"Theme selection"`
	Themes   map[string]ThemeConfig `yaml:"themes" yamlcomment:"Named color themes"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	About AboutConfig `yaml:"about"`
	Log   LogConfig   `yaml:"log"`
}

// AboutConfig describes the application. Version fields are filled from
// build info at runtime.
type AboutConfig struct {
	Name        string `yaml:"name,omitempty" yamlcomment:"Application name"`
	Description string `yaml:"description,omitempty" yamlcomment:"Application description"`
	Version     string `yaml:"version,omitempty" yamlcomment:"Application version (dynamic: from build info)"`
	GoVersion   string `yaml:"go_version,omitempty" yamlcomment:"Go version used to build (dynamic: from build info)"`
}

// LogConfig controls where structured logs go. The TUI owns the terminal,
// so logs are written to a file.
type LogConfig struct {
	File  string `yaml:"file,omitempty" yamlcomment:"Log file path (empty: discard unless --debug)"`
	Level *int   `yaml:"level,omitempty" yamlcomment:"Minimum log level (-1 debug, 0 info, 1 warn)"`
}

// SelectorConfig tunes the selector component.
type SelectorConfig struct {
	Placeholder string `yaml:"placeholder,omitempty" yamlcomment:"Input placeholder text"`
	EmptyText   string `yaml:"empty_text,omitempty" yamlcomment:"Text shown when nothing matches"`
	DebounceMs  *int   `yaml:"debounce_ms,omitempty" yamlcomment:"Delay between typing and filtering (milliseconds)"`
	MaxRows     *int   `yaml:"max_rows,omitempty" yamlcomment:"Visible rows in the dropdown before it scrolls"`
	Width       *int   `yaml:"width,omitempty" yamlcomment:"Component width in columns (0: fit the terminal)"`
}

// DemoConfig configures the demo page hosting the selector.
type DemoConfig struct {
	Title        string  `yaml:"title,omitempty" yamlcomment:"Page title"`
	InitialCount *int    `yaml:"initial_count,omitempty" yamlcomment:"Contacts offered before 'show all'"`
	TotalCount   *int    `yaml:"total_count,omitempty" yamlcomment:"Mock contacts generated when no file is given"`
	Seed         *uint64 `yaml:"seed,omitempty" yamlcomment:"Mock data seed"`
	ToastMs      *int    `yaml:"toast_ms,omitempty" yamlcomment:"How long selection toasts stay visible (milliseconds)"`
}

// KeysConfig maps actions to key strings as reported by bubbletea
// (e.g. "down", "ctrl+x", "alt+down").
type KeysConfig struct {
	Down    []string `yaml:"down,omitempty"`
	Up      []string `yaml:"up,omitempty"`
	Enter   []string `yaml:"enter,omitempty"`
	Escape  []string `yaml:"escape,omitempty"`
	Clear   []string `yaml:"clear,omitempty"`
	Toggle  []string `yaml:"toggle,omitempty"`
	Focus   []string `yaml:"focus,omitempty"`
	ShowAll []string `yaml:"show_all,omitempty"`
	Accept  []string `yaml:"accept,omitempty"`
	Copy    []string `yaml:"copy,omitempty"`
	Quit    []string `yaml:"quit,omitempty"`
}

// ThemeSelectionConfig names the active theme.
type ThemeSelectionConfig struct {
	Default string `yaml:"default,omitempty" yamlcomment:"Default theme name"`
}

// ThemeConfig is a YAML-friendly theme (colors accept ints or strings).
type ThemeConfig struct {
	Accent      ColorValue `yaml:"accent" yamlcomment:"Titles and focused border"`
	Border      ColorValue `yaml:"border" yamlcomment:"Unfocused border"`
	BorderStyle string     `yaml:"border_style" yamlcomment:"Border style (normal|rounded)"`
	Text        ColorValue `yaml:"text" yamlcomment:"Primary text"`
	Muted       ColorValue `yaml:"muted" yamlcomment:"Emails, placeholder and hints"`
	Match       ColorValue `yaml:"match" yamlcomment:"Matched query text"`
	SelectedFG  ColorValue `yaml:"selected_fg" yamlcomment:"Highlighted row foreground"`
	SelectedBG  ColorValue `yaml:"selected_bg" yamlcomment:"Highlighted row background"`
	Overlay     ColorValue `yaml:"overlay" yamlcomment:"Committed selection label"`
	Success     ColorValue `yaml:"success" yamlcomment:"Toast text"`
	FooterKey   ColorValue `yaml:"footer_key" yamlcomment:"Footer key labels"`
}

// ColorValue stores a color token (ANSI number, hex or name). Numbers
// marshal as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// Debounce returns the configured debounce delay.
func (s SelectorConfig) Debounce() time.Duration {
	return time.Duration(intOr(s.DebounceMs, 0)) * time.Millisecond
}

// Toast returns how long a toast stays on screen.
func (d DemoConfig) Toast() time.Duration {
	return time.Duration(intOr(d.ToastMs, 0)) * time.Millisecond
}

// IntOr dereferences p or returns def.
func IntOr(p *int, def int) int {
	return intOr(p, def)
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
