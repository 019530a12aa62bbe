package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/contactpick/pkg/settings"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print contactpick version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return err
	},
}

// cliVersionString builds a human-readable version string for CLI output and Cobra's --version flag.
func cliVersionString() string {
	cfg, _ := loadMergedConfig(resolveConfigPath(""))
	name := cfg.App.About.Name
	if name == "" {
		name = settings.CliBinaryName
	}
	return fmt.Sprintf("%s %s (commit %s, go %s)", name, cfg.App.About.Version, settings.VersionInformation.Commit, cfg.App.About.GoVersion)
}
