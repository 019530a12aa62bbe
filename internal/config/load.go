package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     File
	embeddedConfigErr  error
)

// DefaultYAML returns a copy of the embedded default config YAML bytes.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses and returns the embedded default configuration.
// Callers receive a deep copy and may modify it freely.
func Default() (File, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = errors.New("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
			return
		}
		if embeddedConfig.Theme.Default == "" || len(embeddedConfig.Themes) == 0 {
			embeddedConfigErr = errors.New("default config is missing required theme defaults")
		}
	})
	if embeddedConfigErr != nil {
		return File{}, embeddedConfigErr
	}
	return clone(embeddedConfig), nil
}

// Load returns the embedded defaults merged with the YAML file at path.
// An empty path yields the defaults alone.
func Load(path string) (File, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return LoadBytes(cfg, data)
}

// LoadBytes decodes data and merges it on top of base.
func LoadBytes(base File, data []byte) (File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return base, nil
	}
	var user File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&user); err != nil {
		return base, fmt.Errorf("decode config: %w", err)
	}
	return Merge(base, user), nil
}

// Merge overlays every non-zero field of override onto base.
func Merge(base, override File) File {
	out := clone(base)

	setString(&out.App.About.Name, override.App.About.Name)
	setString(&out.App.About.Description, override.App.About.Description)
	setString(&out.App.Log.File, override.App.Log.File)
	setPtr(&out.App.Log.Level, override.App.Log.Level)

	setString(&out.Selector.Placeholder, override.Selector.Placeholder)
	setString(&out.Selector.EmptyText, override.Selector.EmptyText)
	setPtr(&out.Selector.DebounceMs, override.Selector.DebounceMs)
	setPtr(&out.Selector.MaxRows, override.Selector.MaxRows)
	setPtr(&out.Selector.Width, override.Selector.Width)

	setString(&out.Demo.Title, override.Demo.Title)
	setPtr(&out.Demo.InitialCount, override.Demo.InitialCount)
	setPtr(&out.Demo.TotalCount, override.Demo.TotalCount)
	setPtr(&out.Demo.Seed, override.Demo.Seed)
	setPtr(&out.Demo.ToastMs, override.Demo.ToastMs)

	setKeys(&out.Keys.Down, override.Keys.Down)
	setKeys(&out.Keys.Up, override.Keys.Up)
	setKeys(&out.Keys.Enter, override.Keys.Enter)
	setKeys(&out.Keys.Escape, override.Keys.Escape)
	setKeys(&out.Keys.Clear, override.Keys.Clear)
	setKeys(&out.Keys.Toggle, override.Keys.Toggle)
	setKeys(&out.Keys.Focus, override.Keys.Focus)
	setKeys(&out.Keys.ShowAll, override.Keys.ShowAll)
	setKeys(&out.Keys.Accept, override.Keys.Accept)
	setKeys(&out.Keys.Copy, override.Keys.Copy)
	setKeys(&out.Keys.Quit, override.Keys.Quit)

	setString(&out.Theme.Default, override.Theme.Default)
	for name, theme := range override.Themes {
		out.Themes[name] = MergeTheme(out.Themes[name], theme)
	}
	return out
}

// MergeTheme overlays the colors set in override onto base.
func MergeTheme(base, override ThemeConfig) ThemeConfig {
	out := base
	apply := func(src ColorValue, dst *ColorValue) {
		if src != "" {
			*dst = src
		}
	}
	if strings.TrimSpace(override.BorderStyle) != "" {
		out.BorderStyle = override.BorderStyle
	}
	apply(override.Accent, &out.Accent)
	apply(override.Border, &out.Border)
	apply(override.Text, &out.Text)
	apply(override.Muted, &out.Muted)
	apply(override.Match, &out.Match)
	apply(override.SelectedFG, &out.SelectedFG)
	apply(override.SelectedBG, &out.SelectedBG)
	apply(override.Overlay, &out.Overlay)
	apply(override.Success, &out.Success)
	apply(override.FooterKey, &out.FooterKey)
	return out
}

// Sanitized drops the fields populated from build info so they do not
// appear in printed config.
func (f File) Sanitized() File {
	out := clone(f)
	out.App.About.Version = ""
	out.App.About.GoVersion = ""
	return out
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func setPtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func setKeys(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = append([]string(nil), src...)
	}
}

func clone(f File) File {
	out := f
	copyPtr(&out.App.Log.Level)
	copyPtr(&out.Selector.DebounceMs)
	copyPtr(&out.Selector.MaxRows)
	copyPtr(&out.Selector.Width)
	copyPtr(&out.Demo.InitialCount)
	copyPtr(&out.Demo.TotalCount)
	copyPtr(&out.Demo.Seed)
	copyPtr(&out.Demo.ToastMs)
	out.Keys = KeysConfig{
		Down:    append([]string(nil), f.Keys.Down...),
		Up:      append([]string(nil), f.Keys.Up...),
		Enter:   append([]string(nil), f.Keys.Enter...),
		Escape:  append([]string(nil), f.Keys.Escape...),
		Clear:   append([]string(nil), f.Keys.Clear...),
		Toggle:  append([]string(nil), f.Keys.Toggle...),
		Focus:   append([]string(nil), f.Keys.Focus...),
		ShowAll: append([]string(nil), f.Keys.ShowAll...),
		Accept:  append([]string(nil), f.Keys.Accept...),
		Copy:    append([]string(nil), f.Keys.Copy...),
		Quit:    append([]string(nil), f.Keys.Quit...),
	}
	out.Themes = make(map[string]ThemeConfig, len(f.Themes))
	for k, v := range f.Themes {
		out.Themes[k] = v
	}
	return out
}

func copyPtr[T any](p **T) {
	if *p != nil {
		v := **p
		*p = &v
	}
}
