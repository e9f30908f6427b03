package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/skiffworks/skiffctl/pkg/models"
)

// SetupViewerModel renders the jfrog CLI commands that point local
// package managers at the configured repositories
type SetupViewerModel struct {
	width  int
	height int

	commands []models.SetupCommand
	host     string
	cursor   int

	viewport viewport.Model
}

func NewSetupViewerModel() *SetupViewerModel {
	return &SetupViewerModel{
		viewport: viewport.New(80, 20), // Default size
	}
}

func (m *SetupViewerModel) Init() tea.Cmd {
	return nil
}

// SetCommands installs the commands derived from the saved baseline
func (m *SetupViewerModel) SetCommands(commands []models.SetupCommand, host string) {
	m.commands = commands
	m.host = host
	if m.cursor >= len(commands) {
		m.cursor = 0
	}
	m.updateViewportContent()
}

func (m *SetupViewerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateViewportSize()
}

func (m *SetupViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSize()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg {
				return SwitchViewMsg{view: settingsFormView}
			}

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.updateViewportContent()
			}
			return m, nil

		case "down", "j":
			if m.cursor < len(m.commands)-1 {
				m.cursor++
				m.updateViewportContent()
			}
			return m, nil

		case "c":
			return m, m.copyHighlighted()

		case "C":
			return m, m.copyAll()

		case "pgup", "pgdown":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	default:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *SetupViewerModel) copyHighlighted() tea.Cmd {
	if len(m.commands) == 0 {
		return statusCmd("Nothing to copy")
	}
	command := m.commands[m.cursor]
	return func() tea.Msg {
		if err := clipboard.WriteAll(command.Command); err != nil {
			return StatusMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return StatusMsg(fmt.Sprintf("✓ Copied %s command", command.Category))
	}
}

func (m *SetupViewerModel) copyAll() tea.Cmd {
	if len(m.commands) == 0 {
		return statusCmd("Nothing to copy")
	}
	var lines []string
	for _, command := range m.commands {
		lines = append(lines, command.Command)
	}
	text := strings.Join(lines, "\n")
	count := len(lines)
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return StatusMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return StatusMsg(fmt.Sprintf("✓ Copied %d commands", count))
	}
}

func (m *SetupViewerModel) View() string {
	contentStyle := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("170")).
		Width(m.width - 4).
		Height(m.height - 5)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("170"))
	colonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("170"))
	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	heading := "SETUP COMMANDS"
	remainingWidth := m.width - 4 - len(heading) - 5
	if remainingWidth < 0 {
		remainingWidth = 0
	}

	var content strings.Builder
	content.WriteString(headerPadding.Render(headerStyle.Render(heading) + " " + colonStyle.Render(strings.Repeat(":", remainingWidth))))
	content.WriteString("\n\n")

	m.updateViewportContent()

	viewportPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	content.WriteString(viewportPadding.Render(m.viewport.View()))

	var s strings.Builder
	s.WriteString(contentStyle.Render(borderStyle.Render(content.String())))

	help := []string{
		"↑↓ navigate",
		"c copy",
		"C copy all",
		"esc back",
		"^c quit",
	}

	helpBorderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Padding(0, 1)

	helpContent := lipgloss.NewStyle().
		Width(m.width - 8).
		Align(lipgloss.Right).
		Render(formatHelpText(help))
	s.WriteString("\n")
	s.WriteString(contentStyle.Render(helpBorderStyle.Render(helpContent)))

	return s.String()
}

func (m *SetupViewerModel) updateViewportSize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.viewport.Width = m.width - 10
	m.viewport.Height = m.height - 10
}

func (m *SetupViewerModel) updateViewportContent() {
	commentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("242")).
		Italic(true)

	labelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214"))

	commandStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205"))

	var content strings.Builder

	if len(m.commands) == 0 {
		content.WriteString(commentStyle.Render("Artifactory is not configured yet."))
		content.WriteString("\n\n")
		content.WriteString(commentStyle.Render("Set a host, API key and at least one repository in the settings form, save, and the setup commands will appear here."))
		m.viewport.SetContent(wordwrap.String(content.String(), m.viewport.Width))
		return
	}

	if m.host != "" {
		content.WriteString(commentStyle.Render("# Server: " + m.host))
		content.WriteString("\n\n")
	}

	wrapWidth := m.viewport.Width - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	for i, command := range m.commands {
		label := labelStyle.Render(strings.ToUpper(string(command.Category)))
		wrapped := wordwrap.String(command.Command, wrapWidth)
		if i == m.cursor {
			content.WriteString(highlightStyle.Render("▸ ") + label)
			content.WriteString("\n")
			content.WriteString(highlightStyle.Render(indentLines(wrapped, "  ")))
		} else {
			content.WriteString("  " + label)
			content.WriteString("\n")
			content.WriteString(commandStyle.Render(indentLines(wrapped, "  ")))
		}
		content.WriteString("\n\n")
	}

	m.viewport.SetContent(content.String())
}

func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
