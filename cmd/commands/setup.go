package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/skiffworks/skiffctl/internal/cli"
	"github.com/skiffworks/skiffctl/pkg/models"
)

var setupCopy bool

// NewSetupCommand creates the setup command
func NewSetupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Print the jfrog CLI setup commands",
		Long: `Print the jfrog CLI commands that point local package managers at
the configured Artifactory repositories. One command is emitted per
configured repository type that has a package-manager integration.

Examples:
  # Print the commands
  skiffctl setup

  # Put them on the clipboard ready to paste into a shell
  skiffctl setup --copy`,
		Args: cobra.NoArgs,
		RunE: runSetup,
	}

	cmd.Flags().BoolVar(&setupCopy, "copy", false, "Copy the commands to the clipboard")

	return cmd
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := NewContext()
	defer ctx.Close()

	store, err := ctx.Store()
	if err != nil {
		return err
	}
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}

	doc, err := store.Settings(cmd.Context())
	if err != nil {
		return err
	}
	cfg.MergeIntoSettings(doc)

	if !doc.ArtifactoryConfigured() {
		return fmt.Errorf("artifactory is not configured (set a host and API key first)")
	}

	commands := models.SetupCommands(cfg.ServerID, doc.Repositories)
	if len(commands) == 0 {
		cli.PrintInfo("No repositories with package-manager integrations are configured")
		return nil
	}

	cli.FormatSetupCommands(os.Stdout, commands, 0)

	if setupCopy {
		var lines []string
		for _, command := range commands {
			lines = append(lines, command.Command)
		}
		if err := clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		cli.PrintSuccess("Copied %d commands to clipboard", len(commands))
	}

	return nil
}
