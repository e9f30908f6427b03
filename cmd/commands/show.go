package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/skiffworks/skiffctl/internal/cli"
)

var showJSON bool

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current workspace settings",
		Long: `Fetch the workspace settings from the configured Skiff instance and
print them. The stored Artifactory API key is never returned by the
server; only whether one is set.

Examples:
  # Print the settings as formatted text
  skiffctl show

  # Print the raw settings document
  skiffctl show --json`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}

	cmd.Flags().BoolVar(&showJSON, "json", false, "Emit the raw settings document as JSON")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := NewContext()
	defer ctx.Close()

	store, err := ctx.Store()
	if err != nil {
		return err
	}

	doc, err := store.Settings(cmd.Context())
	if err != nil {
		return err
	}
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}
	cfg.MergeIntoSettings(doc)

	if showJSON {
		return cli.WriteJSON(os.Stdout, doc)
	}

	cli.FormatSettings(os.Stdout, doc)
	return nil
}
