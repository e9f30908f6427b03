package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skiffworks/skiffctl/internal/cli"
	"github.com/skiffworks/skiffctl/pkg/draft"
	"github.com/skiffworks/skiffctl/pkg/models"
)

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Change a single settings field",
		Long: `Apply one settings change without opening the TUI. Field names match
the settings document; repository entries use repo.<type>.

Fields:
  language                                 language code (e.g. en, de, ja)
  user_consents_to_analytics               true/false
  enable_sound_notifications               true/false
  enable_proactive_conversation_starters   true/false
  enable_solvability_analysis              true/false
  max_budget_per_task                      amount, or "none" for no cap
  git_user_name                            free text
  git_user_email                           free text
  artifactory_host                         base URL
  artifactory_cli_install_url              URL
  artifactory_api_key                      new key, or "" to clear the stored one
  repo.<type>                              repository key, or "" to remove the entry
                                           (types: pypi, npm, maven, go, docker, nuget)

Examples:
  # Cap task spending at 50 dollars
  skiffctl set max_budget_per_task 50

  # Remove the cap again
  skiffctl set max_budget_per_task none

  # Point the pypi ecosystem at a repository
  skiffctl set repo.pypi pypi-virtual

  # Clear the stored Artifactory API key
  skiffctl set artifactory_api_key ""`,
		Args: cobra.ExactArgs(2),
		RunE: runSet,
	}

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	field, value := args[0], args[1]

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

	// The same draft logic as the TUI, applied to a single edit
	form := draft.NewForm(store.Categories(cmd.Context()), nil)
	form.SetBaseline(doc)

	if err := applyFieldChange(form, field, value); err != nil {
		return err
	}

	if form.Clean() {
		cli.PrintInfo("%s already has that value; nothing to save", field)
		return nil
	}

	update := form.Payload()
	if err := store.Save(cmd.Context(), update); err != nil {
		return err
	}
	if err := store.PropagateAnalyticsConsent(cmd.Context(), update.ConsentsToAnalytics); err != nil {
		cli.PrintWarning("settings saved, but analytics consent propagation failed: %v", err)
	}

	cli.PrintSuccess("Saved %s", field)
	return nil
}

func applyFieldChange(form *draft.Form, field, value string) error {
	if category, ok := strings.CutPrefix(field, "repo."); ok {
		return applyRepositoryChange(form, category, value)
	}

	switch field {
	case "language":
		form.SetLanguage(value)
	case "user_consents_to_analytics":
		enabled, err := parseBool(field, value)
		if err != nil {
			return err
		}
		form.SetAnalyticsConsent(enabled)
	case "enable_sound_notifications":
		enabled, err := parseBool(field, value)
		if err != nil {
			return err
		}
		form.SetSoundNotifications(enabled)
	case "enable_proactive_conversation_starters":
		enabled, err := parseBool(field, value)
		if err != nil {
			return err
		}
		form.SetProactiveStarters(enabled)
	case "enable_solvability_analysis":
		enabled, err := parseBool(field, value)
		if err != nil {
			return err
		}
		form.SetSolvabilityAnalysis(enabled)
	case "max_budget_per_task":
		if strings.EqualFold(strings.TrimSpace(value), "none") {
			value = ""
		}
		form.SetBudgetText(value)
	case "git_user_name":
		form.SetGitUserName(value)
	case "git_user_email":
		form.SetGitUserEmail(value)
	case "artifactory_host":
		form.SetHost(value)
	case "artifactory_cli_install_url":
		form.SetInstallURL(value)
	case "artifactory_api_key":
		if strings.TrimSpace(value) == "" {
			form.RequestClearAPIKey(true)
		} else {
			form.SetAPIKey(value)
		}
	default:
		return fmt.Errorf("unknown field %q (run 'skiffctl set --help' for the list)", field)
	}
	return nil
}

func applyRepositoryChange(form *draft.Form, categoryArg, key string) error {
	category, ok := models.ParseRepositoryCategory(categoryArg)
	if !ok {
		return fmt.Errorf("unknown repository type %q (types: %s)", categoryArg, categoryList())
	}

	// Find the row holding this category, if any
	var rowID string
	for _, row := range form.Rows() {
		if row.Category == category {
			rowID = row.ID
			break
		}
	}

	if strings.TrimSpace(key) == "" {
		if rowID != "" {
			form.RemoveRow(rowID)
		}
		return nil
	}

	if rowID == "" {
		if !form.CanAddRow() {
			return fmt.Errorf("every repository type already has an entry")
		}
		rowID = form.AddRow()
		form.SetRowCategory(rowID, category)
	}
	form.SetRowKey(rowID, key)
	return nil
}

func parseBool(field, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%s expects true or false, got %q", field, value)
}

func categoryList() string {
	var names []string
	for _, category := range models.AllRepositoryCategories() {
		names = append(names, string(category))
	}
	return strings.Join(names, ", ")
}
