package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/contactpick/internal/formatter"
)

var (
	generateOutput = formatter.FormatTable
	generateCount  int
	generateSeed   uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print mock contacts",
	Long: `Print the mock contacts the picker uses when no input is given.
The same seed always produces the same list, so the output can be saved
and fed back in as a contacts file.`,
	Example: "\n  contactpick generate --count 5 -o json > contacts.json\n  contactpick contacts.json\n",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		count, seed := demoDefaults(loadedConfig)
		if cmd.Flags().Changed("count") {
			count = generateCount
		}
		if cmd.Flags().Changed("seed") {
			seed = generateSeed
		}
		if count < 0 {
			return fmt.Errorf("--count must be non-negative, got %d", count)
		}
		return formatter.Write(cmd.OutOrStdout(), generateContacts(count, seed), formatter.Options{
			Format:  generateOutput,
			NoColor: noColor || stdoutIsPiped(),
		})
	},
}

func init() { //nolint:gochecknoinits
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 0, "number of contacts (default from config)")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "random seed (default from config)")
	generateCmd.Flags().VarP(&generateOutput, "output", "o", "output format: table|list|tree|json|ndjson|yaml|toml|csv")
}
