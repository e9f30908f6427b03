// Package api implements the HTTP client for the Skiff settings service.
// The Artifactory endpoints forward the upstream REST responses verbatim,
// so their payload shapes are tolerated rather than trusted.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skiffworks/skiffctl/pkg/models"
)

// DefaultTimeout bounds every request to the service
const DefaultTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 4 << 20

// Client talks to a Skiff instance
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// tokenTransport stamps auth headers on every request
type tokenTransport struct {
	base  http.RoundTripper
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	req.Header.Set("Accept", "application/json")

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// New creates a client for the service at baseURL
func New(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &tokenTransport{base: transport, token: token},
			Timeout:   timeout,
		},
		logger: logger,
	}
}

// GetSettings fetches the workspace settings document
func (c *Client) GetSettings(ctx context.Context) (*models.Settings, error) {
	var doc models.Settings
	if err := c.get(ctx, "/api/settings", nil, &doc); err != nil {
		return nil, err
	}
	doc.Normalize()

	c.logger.Debug("settings fetched",
		zap.Int("repositories", len(doc.Repositories)),
		zap.Bool("api_key_set", doc.APIKeySet))
	return &doc, nil
}

// SaveSettings persists a settings update
func (c *Client) SaveSettings(ctx context.Context, update *models.SettingsUpdate) error {
	if err := c.postJSON(ctx, "/api/settings", update, nil); err != nil {
		return err
	}

	c.logger.Info("settings saved",
		zap.Int("repositories", len(update.Repositories)),
		zap.Bool("api_key_included", update.APIKey != nil))
	return nil
}

// RepositoryCategories lists the categories the connected Artifactory
// instance supports. May legitimately be empty; callers fall back to the
// full hardcoded list.
func (c *Client) RepositoryCategories(ctx context.Context) ([]models.RepositoryCategory, error) {
	var payload any
	if err := c.get(ctx, "/api/artifactory/repositories/categories", nil, &payload); err != nil {
		return nil, err
	}

	present := extractPackageTypes(payload)
	var categories []models.RepositoryCategory
	for _, category := range models.AllRepositoryCategories() {
		if present[string(category)] {
			categories = append(categories, category)
		}
	}

	c.logger.Debug("repository categories fetched", zap.Int("count", len(categories)))
	return categories, nil
}

// SearchRepositories searches repositories by name, optionally scoped to a
// category. A blank query returns nothing without touching the network.
func (c *Client) SearchRepositories(ctx context.Context, query string, category models.RepositoryCategory, limit int) ([]string, error) {
	normalized := strings.TrimSpace(query)
	if normalized == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("name", "*"+normalized+"*")
	if category != "" {
		params.Set("packageType", string(category))
	}

	var payload any
	if err := c.get(ctx, "/api/artifactory/repositories/search", params, &payload); err != nil {
		return nil, err
	}

	names := extractRepositoryNames(payload)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	c.logger.Debug("repository search finished",
		zap.String("query", normalized),
		zap.String("category", string(category)),
		zap.Int("results", len(names)))
	return names, nil
}

// PropagateAnalyticsConsent records the analytics decision after a save.
// The save itself already succeeded, so failures here are logged and
// reported but never interrupt the caller's flow.
func (c *Client) PropagateAnalyticsConsent(ctx context.Context, enabled bool) error {
	body := map[string]bool{"consent": enabled}
	if err := c.postJSON(ctx, "/api/analytics/consent", body, nil); err != nil {
		c.logger.Warn("analytics consent propagation failed", zap.Error(err))
		return err
	}

	c.logger.Debug("analytics consent propagated", zap.Bool("consent", enabled))
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("request failed",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode))
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("invalid JSON response from server: %w", err)
	}
	return nil
}

// packageTypeKeys are tried in order when reading a package-type entry
var packageTypeKeys = []string{"packageType", "repositoryType", "repoType", "type", "key"}

// extractPackageTypes collects the lowercase package types present in a
// forwarded type listing. Anything that is not a list of objects yields
// nothing rather than an error.
func extractPackageTypes(payload any) map[string]bool {
	types := make(map[string]bool)

	entries, ok := payload.([]any)
	if !ok {
		return types
	}

	for _, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range packageTypeKeys {
			value, ok := item[key].(string)
			if !ok || strings.TrimSpace(value) == "" {
				continue
			}
			types[strings.ToLower(strings.TrimSpace(value))] = true
			break
		}
	}
	return types
}

// repositoryNameKeys are tried in order when reading a search result entry
var repositoryNameKeys = []string{"repo", "repository", "key"}

// extractRepositoryNames pulls repository names out of a forwarded search
// response, trimming, skipping blanks and entries without a usable name,
// and dropping duplicates while preserving order.
func extractRepositoryNames(payload any) []string {
	root, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	results, ok := root["results"].([]any)
	if !ok {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, entry := range results {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		var candidate any
		for _, key := range repositoryNameKeys {
			value := item[key]
			if zeroJSONValue(value) {
				continue
			}
			candidate = value
			break
		}

		name, ok := candidate.(string)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// zeroJSONValue reports whether a decoded JSON value is empty or zero,
// so name extraction falls through to the next key instead of taking a
// useless placeholder like 0 or false.
func zeroJSONValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}
