package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/prochat/prochat/internal/registry"
)

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models and their providers",
	Long: `List the model identifiers the built-in provider registry knows
about, grouped by provider. Model resolution picks the first provider
whose list contains the requested identifier.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PROVIDER\tMODEL")
		for _, desc := range registry.Default().Descriptors() {
			for _, model := range desc.Models {
				fmt.Fprintf(w, "%s\t%s\n", desc.Key, model)
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
