package draft

import (
	"strings"

	"github.com/skiffworks/skiffctl/pkg/models"
)

// DefaultLanguage is assumed when the fetched document carries no
// language code.
const DefaultLanguage = "en"

// Form holds the editable draft of a settings document and tracks, per
// field, whether the draft differs from the fetched baseline. The
// baseline itself is read-only input; saving produces a new document
// through Payload, never an in-place edit.
type Form struct {
	baseline *models.Settings

	categories []models.RepositoryCategory
	labels     models.CategoryLabels

	language            string
	analyticsConsent    bool
	soundNotifications  bool
	proactiveStarters   bool
	solvabilityAnalysis bool
	budgetText          string
	gitUserName         string
	gitUserEmail        string
	host                string
	installURL          string

	// The stored secret is never fetched back, so the draft only knows
	// what the user typed and whether a clear was requested.
	apiKey      string
	clearAPIKey bool

	rows []Row

	diff   map[Field]bool
	saving bool
}

// NewForm creates an empty form. categories is the set a row may be
// assigned to and labels the display names for them; nil falls back to
// the built-in category set and labels.
func NewForm(categories []models.RepositoryCategory, labels models.CategoryLabels) *Form {
	if categories == nil {
		categories = models.AllRepositoryCategories()
	}
	if labels == nil {
		labels = models.DefaultCategoryLabels()
	}
	return &Form{
		categories: categories,
		labels:     labels,
		diff:       make(map[Field]bool),
	}
}

// SetBaseline installs a freshly fetched document. The draft is
// re-seeded from it: integration rows are rebuilt, pending edits are
// discarded and every dirty flag resets.
func (f *Form) SetBaseline(doc *models.Settings) {
	f.baseline = doc

	f.language = f.baselineLanguage()
	f.analyticsConsent = f.baselineAnalytics()
	f.soundNotifications = doc.SoundNotifications
	f.proactiveStarters = doc.ProactiveStarters
	f.solvabilityAnalysis = doc.SolvabilityAnalysis
	f.budgetText = models.FormatBudget(doc.MaxBudgetPerTask)
	f.gitUserName = doc.GitUserName
	f.gitUserEmail = doc.GitUserEmail
	f.host = doc.ArtifactoryHost
	f.installURL = doc.CLIInstallURL

	f.apiKey = ""
	f.clearAPIKey = false

	f.rows = materializeRows(doc.Repositories)
	f.diff = make(map[Field]bool)
}

// SetCategories replaces the set of assignable categories, e.g. when
// the server reports which repository types it actually has.
func (f *Form) SetCategories(categories []models.RepositoryCategory) {
	if len(categories) == 0 {
		categories = models.AllRepositoryCategories()
	}
	f.categories = categories
}

// Loaded reports whether a baseline document has arrived.
func (f *Form) Loaded() bool {
	return f.baseline != nil
}

// Clean reports whether no tracked field differs from baseline.
func (f *Form) Clean() bool {
	for _, dirty := range f.diff {
		if dirty {
			return false
		}
	}
	return true
}

// Dirty reports whether a single field differs from baseline.
func (f *Form) Dirty(field Field) bool {
	return f.diff[field]
}

// DirtyFields lists the changed fields in a fixed order.
func (f *Form) DirtyFields() []Field {
	var fields []Field
	for _, field := range fieldOrder {
		if f.diff[field] {
			fields = append(fields, field)
		}
	}
	return fields
}

// CanSubmit reports whether a save may be started: the baseline is
// loaded, nothing is in flight and at least one field changed.
func (f *Form) CanSubmit() bool {
	return f.Loaded() && !f.saving && !f.Clean()
}

// Saving reports whether a save is in flight.
func (f *Form) Saving() bool {
	return f.saving
}

// SetSaving marks a save as started or finished. Finishing a failed
// save leaves every flag untouched so the draft stays resubmittable.
func (f *Form) SetSaving(saving bool) {
	f.saving = saving
}

// MarkSaved resets the form after a successful save: all dirty flags
// clear, the secret entry empties and a pending clear request is
// forgotten. The baseline is refreshed separately by the next fetch.
func (f *Form) MarkSaved() {
	f.saving = false
	f.diff = make(map[Field]bool)
	f.apiKey = ""
	f.clearAPIKey = false
}

// SetLanguage records a language selection. Input may be a code or a
// display label; labels resolve to their code before comparison.
func (f *Form) SetLanguage(input string) {
	f.language = models.ResolveLanguageCode(input)
	f.setDirty(FieldLanguage, f.language != f.baselineLanguage())
}

func (f *Form) SetAnalyticsConsent(enabled bool) {
	f.analyticsConsent = enabled
	f.setDirty(FieldAnalytics, enabled != f.baselineAnalytics())
}

func (f *Form) SetSoundNotifications(enabled bool) {
	f.soundNotifications = enabled
	f.setDirty(FieldSound, f.baseline != nil && enabled != f.baseline.SoundNotifications)
}

func (f *Form) SetProactiveStarters(enabled bool) {
	f.proactiveStarters = enabled
	f.setDirty(FieldStarters, f.baseline != nil && enabled != f.baseline.ProactiveStarters)
}

func (f *Form) SetSolvabilityAnalysis(enabled bool) {
	f.solvabilityAnalysis = enabled
	f.setDirty(FieldSolvability, f.baseline != nil && enabled != f.baseline.SolvabilityAnalysis)
}

// SetBudgetText records the raw budget entry. Text that does not parse
// to a positive number counts as "no budget", which equals a null
// baseline rather than being an error.
func (f *Form) SetBudgetText(text string) {
	f.budgetText = text
	f.setDirty(FieldBudget, !budgetEqual(models.ParseBudget(text), f.baselineBudget()))
}

func (f *Form) SetGitUserName(text string) {
	f.gitUserName = text
	f.setDirty(FieldGitName, strings.TrimSpace(text) != f.baselineGitUserName())
}

func (f *Form) SetGitUserEmail(text string) {
	f.gitUserEmail = text
	f.setDirty(FieldGitEmail, strings.TrimSpace(text) != f.baselineGitUserEmail())
}

func (f *Form) SetHost(text string) {
	f.host = text
	f.setDirty(FieldHost, strings.TrimSpace(text) != f.baselineHost())
}

func (f *Form) SetInstallURL(text string) {
	f.installURL = text
	f.setDirty(FieldInstallURL, strings.TrimSpace(text) != f.baselineInstallURL())
}

// SetAPIKey records typed secret text. Typing a non-empty value cancels
// a pending clear request.
func (f *Form) SetAPIKey(text string) {
	f.apiKey = text
	if strings.TrimSpace(text) != "" {
		f.clearAPIKey = false
	}
	f.refreshSecretFlag()
}

// RequestClearAPIKey toggles the explicit "forget the stored secret"
// request. Turning it off falls back to whatever is currently typed.
func (f *Form) RequestClearAPIKey(on bool) {
	f.clearAPIKey = on
	f.refreshSecretFlag()
}

func (f *Form) refreshSecretFlag() {
	f.setDirty(FieldAPIKey, f.clearAPIKey || strings.TrimSpace(f.apiKey) != "")
}

// Payload assembles the save request: every scalar as currently
// drafted, the normalized repository map, and the secret only when it
// changed. A nil secret leaves the stored key untouched; an empty
// string clears it; anything else replaces it.
func (f *Form) Payload() *models.SettingsUpdate {
	update := &models.SettingsUpdate{
		Language:            f.language,
		ConsentsToAnalytics: f.analyticsConsent,
		SoundNotifications:  f.soundNotifications,
		ProactiveStarters:   f.proactiveStarters,
		SolvabilityAnalysis: f.solvabilityAnalysis,
		MaxBudgetPerTask:    models.ParseBudget(f.budgetText),
		GitUserName:         strings.TrimSpace(f.gitUserName),
		GitUserEmail:        strings.TrimSpace(f.gitUserEmail),
		ArtifactoryHost:     strings.TrimSpace(f.host),
		CLIInstallURL:       strings.TrimSpace(f.installURL),
		Repositories:        f.RepositoryMap(),
	}

	if f.diff[FieldAPIKey] {
		secret := ""
		if !f.clearAPIKey {
			secret = strings.TrimSpace(f.apiKey)
		}
		update.APIKey = &secret
	}

	return update
}

func (f *Form) Language() string { return f.language }

func (f *Form) AnalyticsConsent() bool { return f.analyticsConsent }

func (f *Form) SoundNotifications() bool { return f.soundNotifications }

func (f *Form) ProactiveStarters() bool { return f.proactiveStarters }

func (f *Form) SolvabilityAnalysis() bool { return f.solvabilityAnalysis }

func (f *Form) BudgetText() string { return f.budgetText }

func (f *Form) GitUserName() string { return f.gitUserName }

func (f *Form) GitUserEmail() string { return f.gitUserEmail }

func (f *Form) Host() string { return f.host }

func (f *Form) InstallURL() string { return f.installURL }

func (f *Form) APIKey() string { return f.apiKey }

func (f *Form) ClearAPIKeyRequested() bool { return f.clearAPIKey }

func (f *Form) Baseline() *models.Settings { return f.baseline }

// CategoryLabel returns the display name for a category.
func (f *Form) CategoryLabel(c models.RepositoryCategory) string {
	return f.labels.Label(c)
}

func (f *Form) setDirty(field Field, dirty bool) {
	if dirty {
		f.diff[field] = true
		return
	}
	delete(f.diff, field)
}

func (f *Form) baselineLanguage() string {
	if f.baseline == nil || strings.TrimSpace(f.baseline.Language) == "" {
		return DefaultLanguage
	}
	return strings.TrimSpace(f.baseline.Language)
}

func (f *Form) baselineAnalytics() bool {
	if f.baseline == nil || f.baseline.ConsentsToAnalytics == nil {
		return false
	}
	return *f.baseline.ConsentsToAnalytics
}

func (f *Form) baselineBudget() *float64 {
	if f.baseline == nil {
		return nil
	}
	return f.baseline.MaxBudgetPerTask
}

func (f *Form) baselineGitUserName() string {
	if f.baseline == nil {
		return ""
	}
	return strings.TrimSpace(f.baseline.GitUserName)
}

func (f *Form) baselineGitUserEmail() string {
	if f.baseline == nil {
		return ""
	}
	return strings.TrimSpace(f.baseline.GitUserEmail)
}

func (f *Form) baselineHost() string {
	if f.baseline == nil {
		return ""
	}
	return strings.TrimSpace(f.baseline.ArtifactoryHost)
}

func (f *Form) baselineInstallURL() string {
	if f.baseline == nil {
		return ""
	}
	return strings.TrimSpace(f.baseline.CLIInstallURL)
}

func (f *Form) baselineRepositories() map[models.RepositoryCategory]string {
	if f.baseline == nil {
		return nil
	}
	return f.baseline.Repositories
}

func budgetEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
