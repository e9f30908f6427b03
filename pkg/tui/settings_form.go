package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/skiffworks/skiffctl/pkg/config"
	"github.com/skiffworks/skiffctl/pkg/draft"
	"github.com/skiffworks/skiffctl/pkg/models"
	"github.com/skiffworks/skiffctl/pkg/query"
)

// genericSaveError is the fallback wording when the server gives us
// nothing better
const genericSaveError = "Failed to save settings"

type SettingsEditorModel struct {
	SettingsDataStore
	SettingsUIComponents
	SettingsLayoutManager
	SettingsFormInputs
	SettingsRowManager
}

func NewSettingsEditorModel(store *query.Store, cfg *config.Config, logger *zap.Logger) *SettingsEditorModel {
	saveSpinner := spinner.New()
	saveSpinner.Spinner = spinner.Dot

	m := &SettingsEditorModel{
		SettingsDataStore: SettingsDataStore{
			store:     store,
			cfg:       cfg,
			logger:    logger,
			form:      draft.NewForm(nil, nil),
			languages: models.AvailableLanguages(),
			labels:    models.DefaultCategoryLabels(),
		},
		SettingsUIComponents: SettingsUIComponents{
			viewport:    viewport.New(80, 20), // Default size
			saveSpinner: saveSpinner,
			exitConfirm: NewConfirmation(),
		},
		SettingsLayoutManager: SettingsLayoutManager{},
		SettingsFormInputs: SettingsFormInputs{
			budgetInput:     textinput.New(),
			gitNameInput:    textinput.New(),
			gitEmailInput:   textinput.New(),
			hostInput:       textinput.New(),
			installURLInput: textinput.New(),
			apiKeyInput:     textinput.New(),
		},
		SettingsRowManager: SettingsRowManager{
			keyInputs: make(map[string]*SuggestInput),
		},
	}

	// Configure text inputs
	m.budgetInput.Placeholder = "no cap"
	m.budgetInput.CharLimit = 20
	m.budgetInput.Width = 12

	m.gitNameInput.Placeholder = "Your Name"
	m.gitNameInput.CharLimit = 255
	m.gitNameInput.Width = 40

	m.gitEmailInput.Placeholder = "you@example.com"
	m.gitEmailInput.CharLimit = 255
	m.gitEmailInput.Width = 40

	m.hostInput.Placeholder = "https://artifactory.example.com"
	m.hostInput.CharLimit = 255
	m.hostInput.Width = 40

	m.installURLInput.Placeholder = "https://example.com/install-cli.sh"
	m.installURLInput.CharLimit = 255
	m.installURLInput.Width = 40

	m.apiKeyInput.Placeholder = "unchanged"
	m.apiKeyInput.CharLimit = 255
	m.apiKeyInput.Width = 40
	m.apiKeyInput.EchoMode = textinput.EchoPassword

	m.rebuildFields()
	m.updateFocus()

	return m
}

func (m *SettingsEditorModel) Init() tea.Cmd {
	return tea.Batch(m.loadSettings(), m.loadCategories())
}

func (m *SettingsEditorModel) loadSettings() tea.Cmd {
	store := m.store
	cfg := m.cfg
	return func() tea.Msg {
		settings, err := store.Settings(context.Background())
		if err != nil {
			return settingsLoadedMsg{err: err}
		}
		// Locally configured defaults fill the gaps the server left
		cfg.MergeIntoSettings(settings)
		return settingsLoadedMsg{settings: settings}
	}
}

func (m *SettingsEditorModel) loadCategories() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		return categoriesLoadedMsg{categories: store.Categories(context.Background())}
	}
}

func (m *SettingsEditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSize()

	case settingsLoadedMsg:
		if msg.err != nil {
			// Keep the loading skeleton; the query layer already retried
			m.logger.Warn("settings load failed", zap.Error(msg.err))
			return m, nil
		}
		m.form.SetBaseline(msg.settings)
		m.syncFromForm()
		m.rebuildFields()
		m.updateFocus()
		m.updateViewportContent()

	case categoriesLoadedMsg:
		m.form.SetCategories(msg.categories)
		m.updateViewportContent()

	case saveResultMsg:
		return m.handleSaveResult(msg)

	case consentPropagatedMsg:
		if msg.err != nil {
			m.logger.Warn("analytics consent propagation failed", zap.Error(msg.err))
		}
		return m, nil

	case suggestDebounceMsg:
		if input, ok := m.keyInputs[msg.id]; ok {
			cmd = input.HandleDebounce(msg)
			m.updateViewportContent()
			return m, cmd
		}
		return m, nil

	case suggestResultsMsg:
		if input, ok := m.keyInputs[msg.id]; ok {
			input.HandleResults(msg)
			m.updateViewportContent()
		}
		return m, nil

	case spinner.TickMsg:
		if m.form.Saving() {
			m.saveSpinner, cmd = m.saveSpinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Update viewport for non-key messages (mouse wheel etc.)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *SettingsEditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	// Confirmation dialog swallows everything while shown
	if m.exitConfirm.Active() {
		return m, m.exitConfirm.Update(msg)
	}

	// An open suggestion menu gets first claim on navigation keys
	if input, ok := m.focusedKeyInput(); ok {
		if handled, selected := input.HandleKey(msg); handled {
			if selected {
				m.form.SetRowKey(input.ID(), input.Value())
			}
			m.updateViewportContent()
			return m, nil
		}
	}

	switch msg.String() {
	case "esc":
		if m.form.Clean() {
			return m, tea.Quit
		}
		m.exitConfirm.ShowDialog(
			"DISCARD CHANGES",
			"You have unsaved settings changes.",
			"Are you sure you want to exit?",
			true, // destructive
			m.width-4,
			10,
			func() tea.Cmd { return tea.Quit },
			func() tea.Cmd {
				m.updateViewportContent()
				return nil
			},
		)
		return m, nil

	case "ctrl+s":
		return m.submit()

	case "ctrl+j":
		return m, func() tea.Msg {
			return SwitchViewMsg{view: setupCommandsView}
		}

	case "ctrl+n":
		if !m.form.Loaded() {
			return m, nil
		}
		if !m.form.CanAddRow() {
			return m, statusCmd("Every repository type already has a row")
		}
		id := m.form.AddRow()
		m.syncRowInputs()
		m.rebuildFields()
		m.focusField(fieldRef{kind: fieldRowCategory, rowID: id})
		m.updateFocus()
		m.updateViewportContent()
		return m, nil

	case "ctrl+d":
		if ref, ok := m.currentField(); ok && (ref.kind == fieldRowCategory || ref.kind == fieldRowKey) {
			m.form.RemoveRow(ref.rowID)
			m.syncRowInputs()
			m.rebuildFields()
			if m.focusIndex >= len(m.fields) {
				m.focusIndex = len(m.fields) - 1
			}
			m.updateFocus()
			m.updateViewportContent()
		}
		return m, nil

	case "up", "shift+tab":
		if m.focusIndex > 0 {
			m.focusIndex--
		} else {
			m.focusIndex = len(m.fields) - 1
		}
		m.updateFocus()
		m.updateViewportContent()
		return m, nil

	case "down", "tab":
		if m.focusIndex < len(m.fields)-1 {
			m.focusIndex++
		} else {
			m.focusIndex = 0
		}
		m.updateFocus()
		m.updateViewportContent()
		return m, nil

	case "left", "right":
		// Only selectors claim left/right; in a text input the arrows
		// move the cursor
		if ref, ok := m.currentField(); ok && (ref.kind == fieldLanguage || ref.kind == fieldRowCategory) {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.cycleSelector(delta)
			m.updateViewportContent()
			return m, nil
		}

	case " ", "space":
		// Same deal: space is a toggle key only on checkboxes, text
		// inputs need it as a literal character
		if ref, ok := m.currentField(); ok && isToggleField(ref.kind) {
			m.toggleFocused()
			m.updateViewportContent()
			return m, nil
		}

	case "pgup", "pgdown":
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Forward the keystroke to whichever input is focused
	if ref, ok := m.currentField(); ok {
		switch ref.kind {
		case fieldBudget:
			cmds = append(cmds, m.updateTextInput(&m.budgetInput, msg, m.form.SetBudgetText))
		case fieldGitName:
			cmds = append(cmds, m.updateTextInput(&m.gitNameInput, msg, m.form.SetGitUserName))
		case fieldGitEmail:
			cmds = append(cmds, m.updateTextInput(&m.gitEmailInput, msg, m.form.SetGitUserEmail))
		case fieldHost:
			cmds = append(cmds, m.updateTextInput(&m.hostInput, msg, m.form.SetHost))
		case fieldInstallURL:
			cmds = append(cmds, m.updateTextInput(&m.installURLInput, msg, m.form.SetInstallURL))
		case fieldAPIKey:
			cmds = append(cmds, m.updateTextInput(&m.apiKeyInput, msg, m.form.SetAPIKey))
		case fieldRowKey:
			if input, ok := m.keyInputs[ref.rowID]; ok {
				inputCmd, changed := input.UpdateInput(msg)
				if changed {
					m.form.SetRowKey(ref.rowID, input.Value())
				}
				cmds = append(cmds, inputCmd)
			}
		}
		m.updateViewportContent()
	}

	return m, tea.Batch(cmds...)
}

// updateTextInput forwards a message to an input and routes a changed
// value through the form so the dirty flag tracks every keystroke
func (m *SettingsEditorModel) updateTextInput(input *textinput.Model, msg tea.Msg, set func(string)) tea.Cmd {
	prevValue := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if input.Value() != prevValue {
		set(input.Value())
	}
	return cmd
}

func (m *SettingsEditorModel) submit() (tea.Model, tea.Cmd) {
	switch {
	case !m.form.Loaded():
		return m, statusCmd("Settings are still loading")
	case m.form.Saving():
		return m, statusCmd("Save already in progress")
	case m.form.Clean():
		return m, statusCmd("No changes to save")
	}

	m.form.SetSaving(true)
	update := m.form.Payload()
	consent := update.ConsentsToAnalytics
	store := m.store

	save := func() tea.Msg {
		err := store.Save(context.Background(), update)
		return saveResultMsg{consent: consent, err: err}
	}
	return m, tea.Batch(save, m.saveSpinner.Tick)
}

func (m *SettingsEditorModel) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.form.SetSaving(false)
		m.updateViewportContent()
		message := errorMessageOr(msg.err, genericSaveError)
		m.logger.Error("settings save failed", zap.Error(msg.err))
		return m, statusCmd("✗ " + message)
	}

	m.form.MarkSaved()
	m.syncFromForm()
	m.updateViewportContent()

	store := m.store
	consent := msg.consent
	propagate := func() tea.Msg {
		return consentPropagatedMsg{err: store.PropagateAnalyticsConsent(context.Background(), consent)}
	}

	// The cache was invalidated by Save; refetch so rows rebuild from
	// the authoritative document
	return m, tea.Batch(statusCmd("✓ Settings saved"), propagate, m.loadSettings())
}

// syncFromForm pushes the form's draft values into the visible inputs.
// Called after baseline loads and after a successful save.
func (m *SettingsEditorModel) syncFromForm() {
	m.budgetInput.SetValue(m.form.BudgetText())
	m.gitNameInput.SetValue(m.form.GitUserName())
	m.gitEmailInput.SetValue(m.form.GitUserEmail())
	m.hostInput.SetValue(m.form.Host())
	m.installURLInput.SetValue(m.form.InstallURL())
	m.apiKeyInput.SetValue(m.form.APIKey())
	m.languageIndex = m.languageIndexFor(m.form.Language())
	m.syncRowInputs()
}

func (m *SettingsEditorModel) languageIndexFor(code string) int {
	for i, lang := range m.languages {
		if strings.EqualFold(lang.Code, code) {
			return i
		}
	}
	return 0
}

// syncRowInputs reconciles the suggestion inputs with the form's rows:
// one input per row, stale inputs dropped, values and scopes refreshed
func (m *SettingsEditorModel) syncRowInputs() {
	rows := m.form.Rows()
	alive := make(map[string]bool, len(rows))

	for _, row := range rows {
		alive[row.ID] = true
		input, ok := m.keyInputs[row.ID]
		if !ok {
			input = NewSuggestInput(row.ID, m.cfg.SearchLimit, m.store.SearchRepositories)
			m.keyInputs[row.ID] = input
		}
		input.SetCategory(row.Category)
		if input.Value() != row.Key {
			input.SetValue(row.Key)
		}
	}

	for id := range m.keyInputs {
		if !alive[id] {
			delete(m.keyInputs, id)
		}
	}
}

// rebuildFields recomputes the focus order from the current form state
func (m *SettingsEditorModel) rebuildFields() {
	fields := []fieldRef{
		{kind: fieldLanguage},
		{kind: fieldAnalytics},
		{kind: fieldSound},
		{kind: fieldStarters},
		{kind: fieldSolvability},
		{kind: fieldBudget},
		{kind: fieldGitName},
		{kind: fieldGitEmail},
		{kind: fieldHost},
		{kind: fieldInstallURL},
		{kind: fieldAPIKey},
	}

	// The clear toggle only exists while the server holds a key
	if baseline := m.form.Baseline(); baseline != nil && baseline.APIKeySet {
		fields = append(fields, fieldRef{kind: fieldClearKey})
	}

	for _, row := range m.form.Rows() {
		fields = append(fields,
			fieldRef{kind: fieldRowCategory, rowID: row.ID},
			fieldRef{kind: fieldRowKey, rowID: row.ID},
		)
	}

	m.fields = fields
	if m.focusIndex >= len(fields) {
		m.focusIndex = len(fields) - 1
	}
	if m.focusIndex < 0 {
		m.focusIndex = 0
	}
}

func (m *SettingsEditorModel) currentField() (fieldRef, bool) {
	if m.focusIndex < 0 || m.focusIndex >= len(m.fields) {
		return fieldRef{}, false
	}
	return m.fields[m.focusIndex], true
}

func (m *SettingsEditorModel) focusField(target fieldRef) {
	for i, ref := range m.fields {
		if ref.kind == target.kind && ref.rowID == target.rowID {
			m.focusIndex = i
			return
		}
	}
}

func (m *SettingsEditorModel) focusedKeyInput() (*SuggestInput, bool) {
	ref, ok := m.currentField()
	if !ok || ref.kind != fieldRowKey {
		return nil, false
	}
	input, ok := m.keyInputs[ref.rowID]
	return input, ok
}

func (m *SettingsEditorModel) updateFocus() {
	m.budgetInput.Blur()
	m.gitNameInput.Blur()
	m.gitEmailInput.Blur()
	m.hostInput.Blur()
	m.installURLInput.Blur()
	m.apiKeyInput.Blur()
	for _, input := range m.keyInputs {
		input.Blur()
	}

	ref, ok := m.currentField()
	if !ok {
		return
	}
	switch ref.kind {
	case fieldBudget:
		m.budgetInput.Focus()
	case fieldGitName:
		m.gitNameInput.Focus()
	case fieldGitEmail:
		m.gitEmailInput.Focus()
	case fieldHost:
		m.hostInput.Focus()
	case fieldInstallURL:
		m.installURLInput.Focus()
	case fieldAPIKey:
		m.apiKeyInput.Focus()
	case fieldRowKey:
		if input, ok := m.keyInputs[ref.rowID]; ok {
			input.Focus()
		}
	}
}

// cycleSelector moves the language or row-category selector when one
// is focused
func (m *SettingsEditorModel) cycleSelector(delta int) {
	ref, ok := m.currentField()
	if !ok {
		return
	}

	switch ref.kind {
	case fieldLanguage:
		count := len(m.languages)
		if count == 0 {
			return
		}
		m.languageIndex = (m.languageIndex + delta + count) % count
		m.form.SetLanguage(m.languages[m.languageIndex].Code)

	case fieldRowCategory:
		row, ok := m.form.RowByID(ref.rowID)
		if !ok {
			return
		}
		// "" is a real choice: the row exists but has no category yet
		options := append([]models.RepositoryCategory{""}, m.form.CategoryOptions(ref.rowID)...)
		current := 0
		for i, option := range options {
			if option == row.Category {
				current = i
				break
			}
		}
		next := options[(current+delta+len(options))%len(options)]
		m.form.SetRowCategory(ref.rowID, next)
		m.syncRowInputs()
	}
}

func isToggleField(kind fieldKind) bool {
	switch kind {
	case fieldAnalytics, fieldSound, fieldStarters, fieldSolvability, fieldClearKey:
		return true
	}
	return false
}

func (m *SettingsEditorModel) toggleFocused() {
	ref, ok := m.currentField()
	if !ok {
		return
	}
	switch ref.kind {
	case fieldAnalytics:
		m.form.SetAnalyticsConsent(!m.form.AnalyticsConsent())
	case fieldSound:
		m.form.SetSoundNotifications(!m.form.SoundNotifications())
	case fieldStarters:
		m.form.SetProactiveStarters(!m.form.ProactiveStarters())
	case fieldSolvability:
		m.form.SetSolvabilityAnalysis(!m.form.SolvabilityAnalysis())
	case fieldClearKey:
		// Typed text survives the toggle; the form gives the clear
		// request precedence in the payload while it is on
		m.form.RequestClearAPIKey(!m.form.ClearAPIKeyRequested())
	}
}

// SetupCommands returns the jfrog commands for the saved baseline,
// used by the setup view
func (m *SettingsEditorModel) SetupCommands() []models.SetupCommand {
	baseline := m.form.Baseline()
	if baseline == nil {
		return nil
	}
	return models.SetupCommands(m.cfg.ServerID, baseline.Repositories)
}

// ArtifactoryHost returns the saved host for display in the setup view
func (m *SettingsEditorModel) ArtifactoryHost() string {
	baseline := m.form.Baseline()
	if baseline == nil {
		return ""
	}
	return baseline.NormalizedHost()
}

func (m *SettingsEditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.updateViewportSize()
}

func (m *SettingsEditorModel) updateViewportSize() {
	if m.width == 0 || m.height == 0 {
		return
	}

	// Account for borders, padding, and margins
	m.viewport.Width = m.width - 10
	m.viewport.Height = m.height - 10
}

func (m *SettingsEditorModel) View() string {
	if !m.form.Loaded() {
		return "Loading settings..."
	}

	// Show exit confirmation dialog if active
	if m.exitConfirm.Active() {
		paddingStyle := lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1)
		return paddingStyle.Render(m.exitConfirm.View())
	}

	contentStyle := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("170")).
		Width(m.width - 4).
		Height(m.height - 5)

	var content strings.Builder

	heading := "WORKSPACE SETTINGS"
	if m.form.Saving() {
		heading = "WORKSPACE SETTINGS " + m.saveSpinner.View() + " saving"
	} else if !m.form.Clean() {
		heading = "WORKSPACE SETTINGS (unsaved changes)"
	}
	remainingWidth := m.width - 4 - lipgloss.Width(heading) - 5
	if remainingWidth < 0 {
		remainingWidth = 0
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("170"))
	colonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("170"))
	headerPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	content.WriteString(headerPadding.Render(headerStyle.Render(heading) + " " + colonStyle.Render(strings.Repeat(":", remainingWidth))))
	content.WriteString("\n\n")

	m.updateViewportContent()

	viewportPadding := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	content.WriteString(viewportPadding.Render(m.viewport.View()))

	var s strings.Builder
	s.WriteString(contentStyle.Render(borderStyle.Render(content.String())))

	helpBorderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Padding(0, 1)

	help := []string{
		"tab/↑↓ navigate",
		"←→ cycle choice",
		"space toggle",
		"^n add repo",
		"^d remove repo",
		"^s save",
		"^j setup commands",
		"esc exit",
		"^c quit",
	}

	helpContent := lipgloss.NewStyle().
		Width(m.width - 8).
		Align(lipgloss.Right).
		Render(formatHelpText(help))
	s.WriteString("\n")
	s.WriteString(contentStyle.Render(helpBorderStyle.Render(helpContent)))

	return s.String()
}

func (m *SettingsEditorModel) updateViewportContent() {
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214"))

	labelStyle := lipgloss.NewStyle().
		Width(22).
		Foreground(lipgloss.Color("245"))

	commentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("242")).
		Italic(true)

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205"))

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	dirtyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	focused := func(ref fieldRef) bool {
		current, ok := m.currentField()
		return ok && current.kind == ref.kind && current.rowID == ref.rowID
	}

	writeField := func(b *strings.Builder, ref fieldRef, label, value string, dirty bool) {
		marker := "  "
		if dirty {
			marker = dirtyStyle.Render("* ")
		}
		fieldLine := labelStyle.Render(label+":") + " " + value
		if focused(ref) {
			b.WriteString(marker + focusedStyle.Render("▸ "+fieldLine))
		} else {
			b.WriteString(marker + normalStyle.Render("  "+fieldLine))
		}
		b.WriteString("\n")
	}

	var content strings.Builder

	// General section
	content.WriteString(sectionStyle.Render("GENERAL"))
	content.WriteString("\n\n")

	language := fmt.Sprintf("◂ %s ▸", models.LanguageLabel(m.form.Language()))
	writeField(&content, fieldRef{kind: fieldLanguage}, "Language", language, m.form.Dirty(draft.FieldLanguage))
	writeField(&content, fieldRef{kind: fieldAnalytics}, "Analytics", checkbox(m.form.AnalyticsConsent()), m.form.Dirty(draft.FieldAnalytics))
	writeField(&content, fieldRef{kind: fieldSound}, "Sound notifications", checkbox(m.form.SoundNotifications()), m.form.Dirty(draft.FieldSound))
	writeField(&content, fieldRef{kind: fieldStarters}, "Proactive starters", checkbox(m.form.ProactiveStarters()), m.form.Dirty(draft.FieldStarters))
	writeField(&content, fieldRef{kind: fieldSolvability}, "Solvability analysis", checkbox(m.form.SolvabilityAnalysis()), m.form.Dirty(draft.FieldSolvability))
	writeField(&content, fieldRef{kind: fieldBudget}, "Budget per task ($)", m.budgetInput.View(), m.form.Dirty(draft.FieldBudget))
	content.WriteString(commentStyle.Render("    # Leave the budget empty for no spending cap"))
	content.WriteString("\n\n")

	// Git identity
	content.WriteString(sectionStyle.Render("GIT IDENTITY"))
	content.WriteString("\n\n")
	writeField(&content, fieldRef{kind: fieldGitName}, "User name", m.gitNameInput.View(), m.form.Dirty(draft.FieldGitName))
	writeField(&content, fieldRef{kind: fieldGitEmail}, "User email", m.gitEmailInput.View(), m.form.Dirty(draft.FieldGitEmail))
	content.WriteString("\n")

	// Artifactory integration
	content.WriteString(sectionStyle.Render("ARTIFACTORY"))
	content.WriteString("\n\n")
	writeField(&content, fieldRef{kind: fieldHost}, "Host", m.hostInput.View(), m.form.Dirty(draft.FieldHost))
	writeField(&content, fieldRef{kind: fieldInstallURL}, "CLI install URL", m.installURLInput.View(), m.form.Dirty(draft.FieldInstallURL))

	keyLabel := "API key"
	if baseline := m.form.Baseline(); baseline != nil && baseline.APIKeySet {
		keyLabel = "API key (set)"
	}
	writeField(&content, fieldRef{kind: fieldAPIKey}, keyLabel, m.apiKeyInput.View(), m.form.Dirty(draft.FieldAPIKey))

	if baseline := m.form.Baseline(); baseline != nil && baseline.APIKeySet {
		writeField(&content, fieldRef{kind: fieldClearKey}, "Clear stored key", checkbox(m.form.ClearAPIKeyRequested()), false)
	}
	content.WriteString(commentStyle.Render("    # Leaving the key empty keeps the stored one untouched"))
	content.WriteString("\n\n")

	// Repository rows
	content.WriteString(sectionStyle.Render("REPOSITORIES"))
	content.WriteString("\n\n")

	rows := m.form.Rows()
	if len(rows) == 0 {
		content.WriteString(commentStyle.Render("    # No repositories configured. ^n adds one."))
		content.WriteString("\n")
	}
	for _, row := range rows {
		category := "◂ (none) ▸"
		if row.Category != "" {
			category = fmt.Sprintf("◂ %s ▸", m.labels.Label(row.Category))
		}
		writeField(&content, fieldRef{kind: fieldRowCategory, rowID: row.ID}, "Type", category, m.form.Dirty(draft.FieldRepositories))

		keyView := "(pick a type first)"
		if input, ok := m.keyInputs[row.ID]; ok {
			keyView = input.View()
		}
		writeField(&content, fieldRef{kind: fieldRowKey, rowID: row.ID}, "Repository key", keyView, m.form.Dirty(draft.FieldRepositories))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}
