package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zilvh/Vesta-Sries/internal/config"
)

var configForce bool

// configCmd groups configuration management subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vesta configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long: `Write a configuration file populated with the default scanning and
logging settings, ready to edit. The file is written to config.yaml in
the current directory unless a path is given.`,
	Example: `  vesta config init
  vesta config init /etc/vesta/config.yaml
  vesta config init --force`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) {
	path := "config.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	if err := writeDefaultConfig(path, configForce); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Default configuration written to %s\n", path)
}

// writeDefaultConfig persists the default configuration, refusing to
// overwrite an existing file unless force is set.
func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	return config.Default().Save(path)
}
