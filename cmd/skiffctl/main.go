package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skiffworks/skiffctl/cmd/commands"
	"github.com/skiffworks/skiffctl/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "skiffctl",
	Short: "Terminal client for Skiff workspace settings",
	Long: `skiffctl manages the workspace settings of a Skiff instance: language,
notification preferences, task budget caps, git identity and the
Artifactory integration. Run it without arguments for the interactive
settings editor, or use the subcommands for scripting.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commands.ApplyGlobalFlags()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commands.NewContext()
		defer ctx.Close()

		store, err := ctx.Store()
		if err != nil {
			return err
		}
		cfg, err := ctx.Config()
		if err != nil {
			return err
		}
		logger, err := ctx.Logger()
		if err != nil {
			return err
		}

		// Prefetch so the editor's first loads hit the cache. Errors
		// are not fatal here: the form shows its own failure state.
		go func() {
			if err := store.Warm(cmd.Context()); err != nil {
				logger.Warn("cache warm-up failed", zap.Error(err))
			}
		}()

		app := tui.NewApp(store, cfg, logger)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("starting the terminal interface: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the skiffctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("skiffctl version %s\n", version)
	},
}

func init() {
	commands.RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewSetCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
	rootCmd.AddCommand(commands.NewSetupCommand())
	rootCmd.AddCommand(commands.NewInitCommand())

	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
