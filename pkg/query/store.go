package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skiffworks/skiffctl/pkg/api"
	"github.com/skiffworks/skiffctl/pkg/models"
)

const (
	settingsKey   = "settings"
	categoriesKey = "categories"

	searchCacheSize = 256
)

// Store is the query layer between the UI and the service client.
// Reads are cached and deduplicated, writes invalidate what they
// touch.
type Store struct {
	client *api.Client
	logger *zap.Logger

	settings   *Engine[*models.Settings]
	categories *Engine[[]models.RepositoryCategory]
	search     *Engine[[]string]
}

// NewStore wraps client with caching engines using the default retry
// policy.
func NewStore(client *api.Client, logger *zap.Logger) (*Store, error) {
	retry := DefaultRetryConfig()

	settings, err := NewEngine[*models.Settings](1, retry, retryTransient, logger)
	if err != nil {
		return nil, err
	}
	categories, err := NewEngine[[]models.RepositoryCategory](1, retry, retryTransient, logger)
	if err != nil {
		return nil, err
	}
	search, err := NewEngine[[]string](searchCacheSize, retry, retryTransient, logger)
	if err != nil {
		return nil, err
	}

	return &Store{
		client:     client,
		logger:     logger,
		settings:   settings,
		categories: categories,
		search:     search,
	}, nil
}

// retryTransient repeats network failures and server errors. Client
// errors come back unchanged no matter how often the request runs.
func retryTransient(err error) bool {
	apiErr := &api.APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return true
}

// Settings returns the current settings document, fetching it once
// and serving later calls from cache until invalidated.
func (s *Store) Settings(ctx context.Context) (*models.Settings, error) {
	return s.settings.Get(ctx, settingsKey, s.client.GetSettings)
}

// InvalidateSettings drops the cached settings document so the next
// read hits the service.
func (s *Store) InvalidateSettings() {
	s.settings.Invalidate(settingsKey)
}

// Save writes the update to the service and invalidates the cached
// settings document on success.
func (s *Store) Save(ctx context.Context, update *models.SettingsUpdate) error {
	if err := s.client.SaveSettings(ctx, update); err != nil {
		return err
	}
	s.InvalidateSettings()
	return nil
}

// Categories returns the repository categories the service reports,
// falling back to the built-in set when the endpoint is unavailable
// or reports nothing.
func (s *Store) Categories(ctx context.Context) []models.RepositoryCategory {
	categories, err := s.categories.Get(ctx, categoriesKey, s.client.RepositoryCategories)
	if err != nil {
		s.logger.Warn("category listing unavailable, using built-in set", zap.Error(err))
		return models.AllRepositoryCategories()
	}
	if len(categories) == 0 {
		return models.AllRepositoryCategories()
	}
	return categories
}

// SearchRepositories looks up repository names matching query,
// caching results per query, category and limit. A blank query
// returns nothing without touching the service.
func (s *Store) SearchRepositories(ctx context.Context, query string, category models.RepositoryCategory, limit int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	key := fmt.Sprintf("search:%s:%d:%s", category, limit, query)
	return s.search.Get(ctx, key, func(ctx context.Context) ([]string, error) {
		return s.client.SearchRepositories(ctx, query, category, limit)
	})
}

// PropagateAnalyticsConsent forwards the consent decision to the
// analytics endpoint.
func (s *Store) PropagateAnalyticsConsent(ctx context.Context, consent bool) error {
	return s.client.PropagateAnalyticsConsent(ctx, consent)
}

// Warm prefetches the settings document and category list in
// parallel.
func (s *Store) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Settings(gctx)
		return err
	})
	g.Go(func() error {
		s.Categories(gctx)
		return nil
	})
	return g.Wait()
}
