package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/skiffworks/skiffctl/pkg/config"
	"github.com/skiffworks/skiffctl/pkg/query"
)

type sessionState int

const (
	settingsFormView sessionState = iota
	setupCommandsView
)

const statusBarTimeout = 4 * time.Second

type App struct {
	state     sessionState
	settings  *SettingsEditorModel
	setup     *SetupViewerModel
	width     int
	height    int
	statusMsg string
	statusSeq int
}

func NewApp(store *query.Store, cfg *config.Config, logger *zap.Logger) *App {
	return &App{
		state:    settingsFormView,
		settings: NewSettingsEditorModel(store, cfg, logger),
	}
}

func (a *App) Init() tea.Cmd {
	return a.settings.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Pass window size to all sub-models
		if a.settings != nil {
			a.settings.SetSize(msg.Width, msg.Height)
		}
		if a.setup != nil {
			a.setup.SetSize(msg.Width, msg.Height)
		}

	case tea.KeyMsg:
		// Global keybindings
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case StatusMsg:
		a.statusMsg = string(msg)
		a.statusSeq++
		seq := a.statusSeq
		return a, tea.Tick(statusBarTimeout, func(time.Time) tea.Msg {
			return statusExpiredMsg{seq: seq}
		})

	case statusExpiredMsg:
		// A newer message may have replaced this one already
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}
		return a, nil

	case SwitchViewMsg:
		switch msg.view {
		case settingsFormView:
			a.state = settingsFormView
			return a, nil
		case setupCommandsView:
			a.state = setupCommandsView
			if a.setup == nil {
				a.setup = NewSetupViewerModel()
			}
			a.setup.SetSize(a.width, a.height)
			a.setup.SetCommands(a.settings.SetupCommands(), a.settings.ArtifactoryHost())
			return a, a.setup.Init()
		}

	// The editor owns its fetch and save lifecycle; those results must
	// reach it even while the setup view is showing, or an in-flight
	// load/save started before ctrl+j would be dropped on the floor.
	case settingsLoadedMsg, categoriesLoadedMsg, saveResultMsg, consentPropagatedMsg,
		suggestDebounceMsg, suggestResultsMsg:
		var cmd tea.Cmd
		var m tea.Model
		m, cmd = a.settings.Update(msg)
		if sf, ok := m.(*SettingsEditorModel); ok {
			a.settings = sf
		}
		return a, cmd
	}

	// Route updates to the active view
	var cmd tea.Cmd
	switch a.state {
	case settingsFormView:
		var m tea.Model
		m, cmd = a.settings.Update(msg)
		if sf, ok := m.(*SettingsEditorModel); ok {
			a.settings = sf
		}
	case setupCommandsView:
		var m tea.Model
		m, cmd = a.setup.Update(msg)
		if sv, ok := m.(*SetupViewerModel); ok {
			a.setup = sv
		}
	}

	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case settingsFormView:
		content = a.settings.View()
	case setupCommandsView:
		content = a.setup.View()
	default:
		content = "Unknown view"
	}

	// Add status bar if there's a message
	if a.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

		statusBar := statusStyle.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Top, content, statusBar)
	}

	return content
}
