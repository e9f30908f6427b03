package tui

import (
	"github.com/skiffworks/skiffctl/pkg/models"
)

// StatusMsg puts a transient message in the status bar
type StatusMsg string

// SwitchViewMsg moves the app between views
type SwitchViewMsg struct {
	view sessionState
}

// statusExpiredMsg clears the status bar when no newer message arrived
type statusExpiredMsg struct {
	seq int
}

// settingsLoadedMsg carries the fetched baseline document
type settingsLoadedMsg struct {
	settings *models.Settings
	err      error
}

// categoriesLoadedMsg carries the repository categories the form may assign
type categoriesLoadedMsg struct {
	categories []models.RepositoryCategory
}

// saveResultMsg reports the outcome of a save round-trip
type saveResultMsg struct {
	consent bool
	err     error
}

// consentPropagatedMsg reports the analytics side-effect after a save
type consentPropagatedMsg struct {
	err error
}

// suggestDebounceMsg fires when typing in a suggestion input has paused
type suggestDebounceMsg struct {
	id  string
	seq int
}

// suggestResultsMsg carries search results for one suggestion input
type suggestResultsMsg struct {
	id       string
	query    string
	category models.RepositoryCategory
	names    []string
	err      error
}
