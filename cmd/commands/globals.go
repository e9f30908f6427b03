package commands

import (
	"github.com/spf13/cobra"

	"github.com/skiffworks/skiffctl/internal/cli"
)

// Persistent flag values shared by every command
var (
	configPath  string
	serverURL   string
	apiToken    string
	quietFlag   bool
	noColorFlag bool
)

// RegisterGlobalFlags attaches the persistent flags to the root command
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "Skiff server URL (overrides config)")
	root.PersistentFlags().StringVar(&apiToken, "token", "", "API token (overrides config)")
	root.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
}

// ApplyGlobalFlags pushes the flag values into the cli helpers
func ApplyGlobalFlags() {
	cli.SetGlobalFlags(quietFlag, noColorFlag)
}

// NewContext builds the shared command context from the flag values
func NewContext() *cli.CommandContext {
	return cli.NewCommandContext(configPath, serverURL, apiToken)
}
