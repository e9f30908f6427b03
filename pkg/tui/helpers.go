package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skiffworks/skiffctl/pkg/api"
)

// statusCmd wraps a message for the status bar
func statusCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(message)
	}
}

// errorMessageOr extracts the server-provided detail from a transport
// error, falling back to the generic wording
func errorMessageOr(err error, fallback string) string {
	if message := api.ErrorMessage(err); message != "" {
		return message
	}
	return fallback
}

func checkbox(checked bool) string {
	if checked {
		return "[✓]"
	}
	return "[ ]"
}

// formatHelpText joins help items with a subtle separator
func formatHelpText(items []string) string {
	itemStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("236"))

	styled := make([]string, len(items))
	for i, item := range items {
		styled[i] = itemStyle.Render(item)
	}
	return strings.Join(styled, separatorStyle.Render(" • "))
}
