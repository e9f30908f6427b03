package query

import (
	"context"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// RetryConfig controls backoff between fetch attempts.
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// DefaultRetryConfig retries twice with exponential backoff.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        2,
		InitialDelay:      200 * time.Millisecond,
		MaxDelay:          2 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Engine caches fetch results under string keys and collapses
// concurrent fetches for the same key into a single upstream call.
// Failed fetches are never cached.
type Engine[V any] struct {
	cache   *lru.Cache[string, V]
	group   singleflight.Group
	retry   RetryConfig
	retryIf func(error) bool
	logger  *zap.Logger
}

// NewEngine creates an engine holding at most size entries. retryIf
// decides whether a failed attempt is worth repeating; nil retries
// every failure.
func NewEngine[V any](size int, retry RetryConfig, retryIf func(error) bool, logger *zap.Logger) (*Engine[V], error) {
	cache, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}
	return &Engine[V]{
		cache:   cache,
		retry:   retry,
		retryIf: retryIf,
		logger:  logger,
	}, nil
}

// Get returns the cached value for key, running fetch to fill it on a
// miss. Concurrent callers for the same key share one in-flight fetch.
func (e *Engine[V]) Get(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	if v, ok := e.cache.Get(key); ok {
		return v, nil
	}

	out, err, _ := e.group.Do(key, func() (any, error) {
		// An earlier flight may have filled the cache while this
		// caller was entering.
		if v, ok := e.cache.Get(key); ok {
			return v, nil
		}

		var v V
		err := e.withRetry(ctx, func() error {
			got, ferr := fetch(ctx)
			if ferr != nil {
				return ferr
			}
			v = got
			return nil
		})
		if err != nil {
			return nil, err
		}

		e.cache.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return out.(V), nil
}

// Peek reports the cached value for key without fetching.
func (e *Engine[V]) Peek(key string) (V, bool) {
	return e.cache.Get(key)
}

// Invalidate drops the cached value for key.
func (e *Engine[V]) Invalidate(key string) {
	e.cache.Remove(key)
}

// Purge drops every cached value.
func (e *Engine[V]) Purge() {
	e.cache.Purge()
}

func (e *Engine[V]) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= e.retry.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == e.retry.MaxRetries {
			break
		}
		if e.retryIf != nil && !e.retryIf(err) {
			break
		}

		delay := time.Duration(float64(e.retry.InitialDelay) * math.Pow(e.retry.BackoffMultiplier, float64(attempt)))
		if delay > e.retry.MaxDelay {
			delay = e.retry.MaxDelay
		}

		e.logger.Warn("fetch failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", e.retry.MaxRetries),
			zap.Duration("delay", delay),
			zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}
