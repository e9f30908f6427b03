package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/skiffworks/skiffctl/pkg/config"
	"github.com/skiffworks/skiffctl/pkg/draft"
	"github.com/skiffworks/skiffctl/pkg/models"
	"github.com/skiffworks/skiffctl/pkg/query"
)

// SettingsDataStore holds the form state and its collaborators
type SettingsDataStore struct {
	store  *query.Store
	cfg    *config.Config
	logger *zap.Logger

	form      *draft.Form
	languages []models.Language
	labels    models.CategoryLabels
}

// SettingsUIComponents manages UI-specific components
type SettingsUIComponents struct {
	viewport    viewport.Model
	saveSpinner spinner.Model
	exitConfirm *ConfirmationModel
}

// SettingsLayoutManager manages viewport and layout
type SettingsLayoutManager struct {
	width  int
	height int
}

// SettingsFormInputs manages the scalar input fields and focus
type SettingsFormInputs struct {
	budgetInput     textinput.Model
	gitNameInput    textinput.Model
	gitEmailInput   textinput.Model
	hostInput       textinput.Model
	installURLInput textinput.Model
	apiKeyInput     textinput.Model

	// Index into languages for the selector
	languageIndex int

	// fields is the current focus order; it changes when the baseline
	// loads and when rows come and go
	fields     []fieldRef
	focusIndex int
}

// SettingsRowManager holds the per-row suggestion inputs, keyed by the
// row's local identifier
type SettingsRowManager struct {
	keyInputs map[string]*SuggestInput
}

// fieldKind identifies what a focus slot edits
type fieldKind int

const (
	fieldLanguage fieldKind = iota
	fieldAnalytics
	fieldSound
	fieldStarters
	fieldSolvability
	fieldBudget
	fieldGitName
	fieldGitEmail
	fieldHost
	fieldInstallURL
	fieldAPIKey
	fieldClearKey
	fieldRowCategory
	fieldRowKey
)

// fieldRef is one slot in the focus order. rowID is set only for the
// per-row kinds.
type fieldRef struct {
	kind  fieldKind
	rowID string
}
