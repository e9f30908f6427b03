package models

import "strings"

// Settings is the workspace settings document returned by the Skiff API.
// The Artifactory API key itself is never returned, only whether one is
// currently stored.
type Settings struct {
	Language            string                        `json:"language"`
	ConsentsToAnalytics *bool                         `json:"user_consents_to_analytics"`
	SoundNotifications  bool                          `json:"enable_sound_notifications"`
	ProactiveStarters   bool                          `json:"enable_proactive_conversation_starters"`
	SolvabilityAnalysis bool                          `json:"enable_solvability_analysis"`
	MaxBudgetPerTask    *float64                      `json:"max_budget_per_task"`
	GitUserName         string                        `json:"git_user_name"`
	GitUserEmail        string                        `json:"git_user_email"`
	ArtifactoryHost     string                        `json:"artifactory_host"`
	CLIInstallURL       string                        `json:"artifactory_cli_install_url"`
	APIKeySet           bool                          `json:"artifactory_api_key_set"`
	Repositories        map[RepositoryCategory]string `json:"artifactory_repositories"`
}

// SettingsUpdate is the save payload. Scalar fields are always sent in
// full; the API key is sent only when it changes: nil leaves the stored
// key untouched, an empty string clears it.
type SettingsUpdate struct {
	Language            string                        `json:"language"`
	ConsentsToAnalytics bool                          `json:"user_consents_to_analytics"`
	SoundNotifications  bool                          `json:"enable_sound_notifications"`
	ProactiveStarters   bool                          `json:"enable_proactive_conversation_starters"`
	SolvabilityAnalysis bool                          `json:"enable_solvability_analysis"`
	MaxBudgetPerTask    *float64                      `json:"max_budget_per_task"`
	GitUserName         string                        `json:"git_user_name"`
	GitUserEmail        string                        `json:"git_user_email"`
	ArtifactoryHost     string                        `json:"artifactory_host"`
	CLIInstallURL       string                        `json:"artifactory_cli_install_url"`
	APIKey              *string                       `json:"artifactory_api_key,omitempty"`
	Repositories        map[RepositoryCategory]string `json:"artifactory_repositories"`
}

// Normalize cleans a fetched document in place so later comparisons see
// canonical values
func (s *Settings) Normalize() {
	s.Language = strings.TrimSpace(s.Language)
	s.GitUserName = strings.TrimSpace(s.GitUserName)
	s.GitUserEmail = strings.TrimSpace(s.GitUserEmail)
	s.ArtifactoryHost = strings.TrimSpace(s.ArtifactoryHost)
	s.CLIInstallURL = strings.TrimSpace(s.CLIInstallURL)
	s.Repositories = NormalizeRepositories(s.Repositories)
}

// NormalizeRepositories drops unknown categories and blank keys, trimming
// the keys that remain
func NormalizeRepositories(repos map[RepositoryCategory]string) map[RepositoryCategory]string {
	normalized := make(map[RepositoryCategory]string, len(repos))
	for category, key := range repos {
		if !category.Valid() {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		normalized[category] = key
	}
	return normalized
}

// RepositoriesEqual reports whether two repository maps hold the same
// categories with the same keys after normalization. Order of insertion
// never matters.
func RepositoriesEqual(a, b map[RepositoryCategory]string) bool {
	na, nb := NormalizeRepositories(a), NormalizeRepositories(b)
	if len(na) != len(nb) {
		return false
	}
	for category, key := range na {
		if nb[category] != key {
			return false
		}
	}
	return true
}

// NormalizedHost returns the Artifactory host without a trailing slash
func (s *Settings) NormalizedHost() string {
	return strings.TrimRight(strings.TrimSpace(s.ArtifactoryHost), "/")
}

// ArtifactoryConfigured reports whether the integration has enough data
// to be used
func (s *Settings) ArtifactoryConfigured() bool {
	return strings.TrimSpace(s.ArtifactoryHost) != "" && s.APIKeySet
}
