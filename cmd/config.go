package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/contactpick/internal/config"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage contactpick configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when invoked without a subcommand (gh-style UX)
		return cmd.Help()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show merged configuration",
	Long: `Show the configuration in effect: the embedded defaults merged with
the user's file. --output raw prints the user's file (or the defaults)
verbatim instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigView(cmd)
	},
}

var configThemesCmd = &cobra.Command{
	Use:     "themes",
	Aliases: []string{"theme"},
	Short:   "List available themes",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runThemesList(cmd)
	},
}

func runConfigView(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	switch configOutput {
	case "yaml":
		data, err := config.MarshalCommented(loadedConfig.Sanitized())
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "raw":
		data, err := loadConfigRaw(resolveConfigPath(configFile))
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("invalid output for config: %s (use yaml|raw)", configOutput)
	}
}

// runThemesList prints the themes from the merged configuration.
func runThemesList(cmd *cobra.Command) error {
	def := strings.TrimSpace(loadedConfig.Theme.Default)
	if def == "" {
		def = "dark"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Available themes (default: %s):\n", def)
	for _, name := range themeNames(loadedConfig) {
		fmt.Fprintf(out, " - %s\n", name)
	}
	return nil
}

func init() { //nolint:gochecknoinits
	configCmd.PersistentFlags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|raw")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configThemesCmd)
}
