package draft

// Field identifies one independently tracked part of the settings
// draft. The diff record is keyed by these so cleanliness is a single
// fold instead of a pile of loose booleans.
type Field string

const (
	FieldLanguage     Field = "language"
	FieldAnalytics    Field = "analytics_consent"
	FieldSound        Field = "sound_notifications"
	FieldStarters     Field = "proactive_starters"
	FieldSolvability  Field = "solvability_analysis"
	FieldBudget       Field = "max_budget"
	FieldGitName      Field = "git_user_name"
	FieldGitEmail     Field = "git_user_email"
	FieldHost         Field = "artifactory_host"
	FieldInstallURL   Field = "cli_install_url"
	FieldAPIKey       Field = "artifactory_api_key"
	FieldRepositories Field = "artifactory_repositories"
)

// fieldOrder fixes the reporting order for DirtyFields
var fieldOrder = []Field{
	FieldLanguage,
	FieldAnalytics,
	FieldSound,
	FieldStarters,
	FieldSolvability,
	FieldBudget,
	FieldGitName,
	FieldGitEmail,
	FieldHost,
	FieldInstallURL,
	FieldAPIKey,
	FieldRepositories,
}
