package tui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skiffworks/skiffctl/pkg/api"
	"github.com/skiffworks/skiffctl/pkg/config"
	"github.com/skiffworks/skiffctl/pkg/draft"
	"github.com/skiffworks/skiffctl/pkg/models"
	"github.com/skiffworks/skiffctl/pkg/query"
)

func newTestEditor(t *testing.T) *SettingsEditorModel {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/settings":
			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			_, _ = w.Write([]byte(`{"language": "en"}`))
		case "/api/artifactory/repositories/categories":
			_, _ = w.Write([]byte(`[]`))
		case "/api/artifactory/repositories/search":
			_, _ = w.Write([]byte(`{"results": []}`))
		case "/api/analytics/consent":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client := api.New(srv.URL, "token", 0, zap.NewNop())
	store, err := query.NewStore(client, zap.NewNop())
	require.NoError(t, err)

	m := NewSettingsEditorModel(store, config.Default(), zap.NewNop())
	m.SetSize(100, 40)
	return m
}

func editorBaseline() *models.Settings {
	doc := &models.Settings{
		Language:  "en",
		APIKeySet: true,
		Repositories: map[models.RepositoryCategory]string{
			models.CategoryNPM:  "npm-virtual",
			models.CategoryPyPI: "pypi-virtual",
		},
	}
	doc.Normalize()
	return doc
}

func loadedEditor(t *testing.T) *SettingsEditorModel {
	t.Helper()
	m := newTestEditor(t)
	m.Update(settingsLoadedMsg{settings: editorBaseline()})
	m.Update(categoriesLoadedMsg{categories: models.AllRepositoryCategories()})
	return m
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func statusFromCmd(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(StatusMsg)
	require.True(t, ok, "expected a StatusMsg")
	return string(msg)
}

func TestEditorShowsSkeletonUntilBaselineLoads(t *testing.T) {
	m := newTestEditor(t)

	assert.Contains(t, m.View(), "Loading settings")

	_, cmd := m.Update(key(tea.KeyCtrlS))
	assert.Equal(t, "Settings are still loading", statusFromCmd(t, cmd))
}

func TestEditorMaterializesRowsFromBaseline(t *testing.T) {
	m := loadedEditor(t)

	rows := m.form.Rows()
	require.Len(t, rows, 2)
	// Canonical category order, not map order
	assert.Equal(t, models.CategoryPyPI, rows[0].Category)
	assert.Equal(t, models.CategoryNPM, rows[1].Category)

	for _, row := range rows {
		input, ok := m.keyInputs[row.ID]
		require.True(t, ok, "row %s has no suggestion input", row.ID)
		assert.Equal(t, row.Key, input.Value())
	}
}

func TestEditorSubmitGating(t *testing.T) {
	m := loadedEditor(t)

	_, cmd := m.Update(key(tea.KeyCtrlS))
	assert.Equal(t, "No changes to save", statusFromCmd(t, cmd))

	// Toggle analytics: one step down from the language selector
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeySpace))
	assert.True(t, m.form.Dirty(draft.FieldAnalytics))
	assert.True(t, m.form.CanSubmit())

	m.Update(key(tea.KeyCtrlS))
	assert.True(t, m.form.Saving())

	_, cmd = m.Update(key(tea.KeyCtrlS))
	assert.Equal(t, "Save already in progress", statusFromCmd(t, cmd))
}

func TestEditorSaveFailureKeepsDraft(t *testing.T) {
	m := loadedEditor(t)

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeySpace))
	m.Update(key(tea.KeyCtrlS))
	require.True(t, m.form.Saving())

	_, cmd := m.Update(saveResultMsg{err: &api.APIError{Status: 500, Detail: "database unavailable"}})

	assert.False(t, m.form.Saving())
	assert.True(t, m.form.Dirty(draft.FieldAnalytics), "failed save must not reset dirty flags")
	assert.Equal(t, "✗ database unavailable", statusFromCmd(t, cmd))
}

func TestEditorSaveSuccessResetsFlags(t *testing.T) {
	m := loadedEditor(t)

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeySpace))
	m.Update(key(tea.KeyCtrlS))

	_, cmd := m.Update(saveResultMsg{consent: true})
	require.NotNil(t, cmd)

	assert.True(t, m.form.Clean())
	assert.False(t, m.form.Saving())
	assert.Empty(t, m.apiKeyInput.Value())
}

func TestEditorAddAndRemoveRow(t *testing.T) {
	m := loadedEditor(t)

	m.Update(key(tea.KeyCtrlN))
	require.Len(t, m.form.Rows(), 3)

	// Focus lands on the new row's category selector
	ref, ok := m.currentField()
	require.True(t, ok)
	assert.Equal(t, fieldRowCategory, ref.kind)
	assert.Equal(t, m.form.Rows()[2].ID, ref.rowID)

	m.Update(key(tea.KeyCtrlD))
	assert.Len(t, m.form.Rows(), 2)
}

func TestEditorAddRowRefusedWhenCategoriesExhausted(t *testing.T) {
	m := loadedEditor(t)

	for m.form.CanAddRow() {
		m.Update(key(tea.KeyCtrlN))
	}
	require.Len(t, m.form.Rows(), len(models.AllRepositoryCategories()))

	_, cmd := m.Update(key(tea.KeyCtrlN))
	assert.Equal(t, "Every repository type already has a row", statusFromCmd(t, cmd))
}

func TestEditorCategorySwitchEmptiesRowKey(t *testing.T) {
	m := loadedEditor(t)
	row := m.form.Rows()[0]
	require.Equal(t, "pypi-virtual", row.Key)

	m.focusField(fieldRef{kind: fieldRowCategory, rowID: row.ID})
	m.updateFocus()
	m.Update(key(tea.KeyRight))

	updated, ok := m.form.RowByID(row.ID)
	require.True(t, ok)
	assert.NotEqual(t, models.CategoryPyPI, updated.Category)
	assert.Empty(t, updated.Key)
	assert.Empty(t, m.keyInputs[row.ID].Value())
}

func TestEditorLanguageCycle(t *testing.T) {
	m := loadedEditor(t)

	m.Update(key(tea.KeyRight))
	assert.Equal(t, m.languages[1].Code, m.form.Language())
	assert.True(t, m.form.Dirty(draft.FieldLanguage))

	m.Update(key(tea.KeyLeft))
	assert.Equal(t, "en", m.form.Language())
	assert.True(t, m.form.Clean())
}

func TestEditorClearKeyToggleKeepsTypedText(t *testing.T) {
	m := loadedEditor(t)

	m.focusField(fieldRef{kind: fieldAPIKey})
	m.updateFocus()
	for _, r := range "new-secret" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	require.Equal(t, "new-secret", m.form.APIKey())

	m.focusField(fieldRef{kind: fieldClearKey})
	m.updateFocus()
	m.Update(key(tea.KeySpace))
	assert.True(t, m.form.ClearAPIKeyRequested())

	m.Update(key(tea.KeySpace))
	assert.False(t, m.form.ClearAPIKeyRequested())
	assert.True(t, m.form.Dirty(draft.FieldAPIKey))

	update := m.form.Payload()
	require.NotNil(t, update.APIKey)
	assert.Equal(t, "new-secret", *update.APIKey)
}

func TestEditorSpaceTypesIntoTextInputs(t *testing.T) {
	m := loadedEditor(t)

	m.focusField(fieldRef{kind: fieldGitName})
	m.updateFocus()
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("Ada")},
		{Type: tea.KeySpace, Runes: []rune{' '}},
		{Type: tea.KeyRunes, Runes: []rune("Lovelace")},
	} {
		m.Update(msg)
	}

	assert.Equal(t, "Ada Lovelace", m.form.GitUserName())
	assert.True(t, m.form.Dirty(draft.FieldGitName))
}

func TestEditorSpaceTypesIntoRowKeyInput(t *testing.T) {
	m := loadedEditor(t)
	row := m.form.Rows()[0]

	m.focusField(fieldRef{kind: fieldRowKey, rowID: row.ID})
	m.updateFocus()
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, "pypi-virtual ", m.keyInputs[row.ID].Value())
	updated, ok := m.form.RowByID(row.ID)
	require.True(t, ok)
	assert.Equal(t, "pypi-virtual ", updated.Key)
}

func TestEditorArrowKeysMoveCursorInTextInput(t *testing.T) {
	m := loadedEditor(t)

	m.focusField(fieldRef{kind: fieldHost})
	m.updateFocus()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	require.Equal(t, 3, m.hostInput.Position())

	// Arrows edit the cursor here, not the language selector
	m.Update(key(tea.KeyLeft))
	assert.Equal(t, 2, m.hostInput.Position())
	assert.Equal(t, "en", m.form.Language())
	assert.Equal(t, "abc", m.form.Host())

	m.Update(key(tea.KeyRight))
	assert.Equal(t, 3, m.hostInput.Position())
}

func TestEditorEscConfirmsDiscardWhenDirty(t *testing.T) {
	m := loadedEditor(t)

	// Clean: esc leaves immediately
	_, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)

	// Dirty: esc raises the confirmation first
	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeySpace))
	m.Update(key(tea.KeyEsc))
	assert.True(t, m.exitConfirm.Active())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.False(t, m.exitConfirm.Active())
	assert.True(t, m.form.Dirty(draft.FieldAnalytics))
}

func TestEditorSetupCommandsFromBaseline(t *testing.T) {
	m := loadedEditor(t)

	commands := m.SetupCommands()
	require.Len(t, commands, 2)
	assert.Equal(t, models.CategoryPyPI, commands[0].Category)
	assert.Contains(t, commands[0].Command, "pip-config")
	assert.Contains(t, commands[0].Command, "pypi-virtual")
}
