package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skiffworks/skiffctl/internal/cli"
	"github.com/skiffworks/skiffctl/pkg/config"
)

var initForce bool

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a starter configuration file at the default location (or the
path given with --config). The file holds the server URL and API token,
so it is created with owner-only permissions.

Examples:
  # Create the config file and fill it in afterwards
  skiffctl init

  # Create it with the connection details in place
  skiffctl init --server https://skiff.example.com --token st-abc123`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		defaultPath, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	cfg.ServerURL = serverURL
	cfg.APIToken = apiToken

	if err := cfg.Write(path); err != nil {
		return err
	}

	cli.PrintSuccess("Wrote %s", path)
	if cfg.ServerURL == "" {
		cli.PrintInfo("Set server_url and api_token in the file, or use SKIFFCTL_SERVER_URL and SKIFFCTL_API_TOKEN")
	}
	return nil
}
