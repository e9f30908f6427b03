package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/wordwrap"

	"github.com/skiffworks/skiffctl/pkg/models"
)

// WriteJSON writes data as indented JSON
func WriteJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// FormatSettings renders a settings document as sectioned text. The
// stored API key is never available, only whether one exists.
func FormatSettings(w io.Writer, doc *models.Settings) {
	onOff := func(enabled bool) string {
		if enabled {
			return "on"
		}
		return "off"
	}

	fmt.Fprintln(w, "General")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  language\t%s (%s)\n", doc.Language, models.LanguageLabel(doc.Language))
	consent := "not answered"
	if doc.ConsentsToAnalytics != nil {
		consent = onOff(*doc.ConsentsToAnalytics)
	}
	fmt.Fprintf(tw, "  analytics consent\t%s\n", consent)
	fmt.Fprintf(tw, "  sound notifications\t%s\n", onOff(doc.SoundNotifications))
	fmt.Fprintf(tw, "  proactive starters\t%s\n", onOff(doc.ProactiveStarters))
	fmt.Fprintf(tw, "  solvability analysis\t%s\n", onOff(doc.SolvabilityAnalysis))
	budget := "no cap"
	if doc.MaxBudgetPerTask != nil {
		budget = "$" + models.FormatBudget(doc.MaxBudgetPerTask)
	}
	fmt.Fprintf(tw, "  budget per task\t%s\n", budget)
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Git identity")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  user name\t%s\n", valueOrDash(doc.GitUserName))
	fmt.Fprintf(tw, "  user email\t%s\n", valueOrDash(doc.GitUserEmail))
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Artifactory")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  host\t%s\n", valueOrDash(doc.ArtifactoryHost))
	fmt.Fprintf(tw, "  CLI install URL\t%s\n", valueOrDash(doc.CLIInstallURL))
	key := "(not set)"
	if doc.APIKeySet {
		key = "(set)"
	}
	fmt.Fprintf(tw, "  API key\t%s\n", key)
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Repositories")
	if len(doc.Repositories) == 0 {
		fmt.Fprintln(w, "  (none configured)")
		return
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, category := range models.AllRepositoryCategories() {
		if key, ok := doc.Repositories[category]; ok {
			fmt.Fprintf(tw, "  %s\t%s\n", category, key)
		}
	}
	tw.Flush()
}

// FormatSearchResults prints repository names one per line
func FormatSearchResults(w io.Writer, names []string) {
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

// FormatSetupCommands renders the jfrog commands, wrapped to width when
// width is positive
func FormatSetupCommands(w io.Writer, commands []models.SetupCommand, width int) {
	for i, command := range commands {
		fmt.Fprintf(w, "# %s\n", strings.ToUpper(string(command.Category)))
		text := command.Command
		if width > 0 {
			text = wordwrap.String(text, width)
		}
		fmt.Fprintln(w, text)
		if i < len(commands)-1 {
			fmt.Fprintln(w)
		}
	}
}

func valueOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
