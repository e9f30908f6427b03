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

var (
	searchCategory string
	searchLimit    int
	searchCopy     bool
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Artifactory repositories by name",
		Long: `Search the configured Artifactory instance for repositories whose
name contains the query, optionally scoped to one repository type.

Examples:
  # Find repositories matching "virtual"
  skiffctl search virtual

  # Only pypi repositories
  skiffctl search virtual --category pypi

  # Copy the best match to the clipboard
  skiffctl search npm-prod --limit 1 --copy`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().StringVar(&searchCategory, "category", "", "Repository type to scope the search to")
	cmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results (default from config)")
	cmd.Flags().BoolVar(&searchCopy, "copy", false, "Copy the first result to the clipboard")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

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

	var category models.RepositoryCategory
	if searchCategory != "" {
		parsed, ok := models.ParseRepositoryCategory(searchCategory)
		if !ok {
			return fmt.Errorf("unknown repository type %q (types: %s)", searchCategory, categoryList())
		}
		category = parsed
	}

	limit := searchLimit
	if limit <= 0 {
		limit = cfg.SearchLimit
	}

	names, err := store.SearchRepositories(cmd.Context(), query, category, limit)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		cli.PrintInfo("No repositories matched %q", query)
		return nil
	}

	cli.FormatSearchResults(os.Stdout, names)

	if searchCopy {
		if err := clipboard.WriteAll(names[0]); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		cli.PrintSuccess("Copied %q to clipboard", names[0])
	}

	return nil
}
