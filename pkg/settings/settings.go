// Package settings provides build metadata, per-run configuration, and
// context helpers shared by the CLI and the picker.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "contactpick"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds settings for a single execution of the application.
type Run struct {
	MinLogLevel int8
	LogFile     string
	Debug       bool
	NoColor     bool
	Snapshot    bool
	ExitOnError bool
}

// NewCliParams returns the defaults for a CLI invocation: info-level
// logging, color on, exit on error.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		NoColor:     false,
		ExitOnError: true,
	}
}
