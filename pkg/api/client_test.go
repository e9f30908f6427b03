package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skiffworks/skiffctl/pkg/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-token", 0, zap.NewNop())
}

func TestSearchRepositoriesRequestShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/artifactory/repositories/search", r.URL.Path)
		assert.Equal(t, "*libs*", r.URL.Query().Get("name"))
		assert.Equal(t, "pypi", r.URL.Query().Get("packageType"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		_, _ = w.Write([]byte(`{"results": [{"repo": "libs-release"}]}`))
	})

	names, err := client.SearchRepositories(context.Background(), "libs", models.CategoryPyPI, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"libs-release"}, names)
}

func TestSearchRepositoriesUnscoped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("packageType"))
		_, _ = w.Write([]byte(`{"results": []}`))
	})

	names, err := client.SearchRepositories(context.Background(), "libs", "", 20)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSearchRepositoriesExtraction(t *testing.T) {
	// Messy upstream payload: padding, duplicates, null, blank and
	// zero-valued names, entries that are not objects, and names under
	// fallback keys.
	payload := `{"results": [
		{"repo": "  libs-release  "},
		{"repo": "libs-release"},
		{"repository": "docker-local"},
		{"repo": null, "key": "nuget-local"},
		{"repo": 0, "repository": "go-remote"},
		{"repo": false, "key": "maven-central"},
		{"repo": ""},
		{"other": "ignored"},
		"not-an-object",
		{"repo": 42}
	]}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	})

	names, err := client.SearchRepositories(context.Background(), "l", "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"libs-release", "docker-local", "nuget-local", "go-remote", "maven-central"}, names)
}

func TestSearchRepositoriesLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"repo": "a"}, {"repo": "b"}, {"repo": "c"}]}`))
	})

	names, err := client.SearchRepositories(context.Background(), "x", "", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestSearchRepositoriesBlankQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("blank query must not reach the network")
	})

	for _, query := range []string{"", "   ", "\t"} {
		names, err := client.SearchRepositories(context.Background(), query, models.CategoryNPM, 20)
		require.NoError(t, err)
		assert.Nil(t, names)
	}
}

func TestSearchRepositoriesServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail": "artifactory unreachable"}`))
	})

	_, err := client.SearchRepositories(context.Background(), "libs", "", 20)
	require.Error(t, err)

	apiErr := &APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "artifactory unreachable", ErrorMessage(err))
}

func TestSearchRepositoriesInvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.SearchRepositories(context.Background(), "libs", "", 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestRepositoryCategories(t *testing.T) {
	payload := `[
		{"packageType": "npm"},
		{"repositoryType": "PyPI "},
		{"type": "helm"},
		{"key": "go"},
		{"packageType": ""},
		"not-an-object"
	]`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/artifactory/repositories/categories", r.URL.Path)
		_, _ = w.Write([]byte(payload))
	})

	categories, err := client.RepositoryCategories(context.Background())
	require.NoError(t, err)
	// Canonical order, unknown types dropped
	assert.Equal(t, []models.RepositoryCategory{models.CategoryPyPI, models.CategoryNPM, models.CategoryGo}, categories)
}

func TestRepositoryCategoriesUnexpectedShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"types": "nope"}`))
	})

	categories, err := client.RepositoryCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestGetSettings(t *testing.T) {
	payload := `{
		"language": " en ",
		"user_consents_to_analytics": true,
		"enable_sound_notifications": true,
		"max_budget_per_task": 25.5,
		"git_user_name": " Ada ",
		"artifactory_host": "https://artifacts.example.com/",
		"artifactory_api_key_set": true,
		"artifactory_repositories": {"npm": " npm-virtual ", "cargo": "crates", "go": "  "}
	}`

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/settings", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(payload))
	})

	doc, err := client.GetSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "en", doc.Language)
	assert.Equal(t, "Ada", doc.GitUserName)
	require.NotNil(t, doc.ConsentsToAnalytics)
	assert.True(t, *doc.ConsentsToAnalytics)
	require.NotNil(t, doc.MaxBudgetPerTask)
	assert.Equal(t, 25.5, *doc.MaxBudgetPerTask)
	assert.True(t, doc.APIKeySet)
	// Repositories normalized: trimmed, unknown and blank entries gone
	assert.Equal(t, map[models.RepositoryCategory]string{models.CategoryNPM: "npm-virtual"}, doc.Repositories)
}

func TestSaveSettings(t *testing.T) {
	var received []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/settings", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	})

	update := &models.SettingsUpdate{
		Language:     "fr",
		Repositories: map[models.RepositoryCategory]string{models.CategoryNPM: "npm-virtual"},
	}
	require.NoError(t, client.SaveSettings(context.Background(), update))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(received, &decoded))
	assert.Equal(t, "fr", decoded["language"])
	// Untouched secret stays out of the payload entirely
	assert.NotContains(t, decoded, "artifactory_api_key")
	// Null budget is still sent: scalars are a full snapshot
	assert.Contains(t, decoded, "max_budget_per_task")
	assert.Nil(t, decoded["max_budget_per_task"])
}

func TestSaveSettingsFailureKeepsDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "invalid language code"}`))
	})

	err := client.SaveSettings(context.Background(), &models.SettingsUpdate{Language: "xx"})
	require.Error(t, err)
	assert.Equal(t, "invalid language code", ErrorMessage(err))
}

func TestErrorMessageFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	err := client.SaveSettings(context.Background(), &models.SettingsUpdate{})
	require.Error(t, err)
	// Nothing extractable: callers use their own generic wording
	assert.Equal(t, "", ErrorMessage(err))
}

func TestPropagateAnalyticsConsent(t *testing.T) {
	var received []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/consent", r.URL.Path)
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	})

	require.NoError(t, client.PropagateAnalyticsConsent(context.Background(), true))
	assert.JSONEq(t, `{"consent": true}`, string(received))
}
