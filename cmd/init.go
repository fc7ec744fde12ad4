package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/prochat/prochat/internal/config"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a default config file to $HOME/.config/prochat/config.toml.

Credentials default to environment references ($OPENROUTER_API_KEY and
friends), so exporting the matching variables is enough to get started.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, "config.toml")

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}

		cfg := config.NewDefaultConfig(filepath.Join(dir, "prompts"))
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}
