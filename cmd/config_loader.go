package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	rdebug "runtime/debug"
	"sort"

	"github.com/oakwood-commons/contactpick/internal/config"
	"github.com/oakwood-commons/contactpick/pkg/settings"
)

// resolveConfigPath returns the explicit configFile if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/contactpick/config.yaml) or ~/.config/contactpick/config.yaml if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// loadMergedConfig merges the user file at cfgPath over the embedded
// defaults and fills the build-info fields of app.about.
func loadMergedConfig(cfgPath string) (config.File, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	applyBuildInfo(&cfg)
	return cfg, nil
}

func applyBuildInfo(cfg *config.File) {
	if cfg.App.About.Name == "" {
		cfg.App.About.Name = settings.CliBinaryName
	}
	version := settings.VersionInformation.BuildVersion
	goVersion := runtime.Version()
	if info, ok := rdebug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			version = v
		}
		if info.GoVersion != "" {
			goVersion = info.GoVersion
		}
	}
	cfg.App.About.Version = version
	cfg.App.About.GoVersion = goVersion
}

// loadConfigRaw returns the user's config file verbatim, or the embedded
// defaults when there is none.
func loadConfigRaw(cfgPath string) ([]byte, error) {
	if cfgPath == "" {
		return config.DefaultYAML(), nil
	}
	raw, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgPath, err)
	}
	return raw, nil
}

func themeNames(cfg config.File) []string {
	out := make([]string, 0, len(cfg.Themes))
	for k := range cfg.Themes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
