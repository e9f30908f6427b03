package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/skiffworks/skiffctl/pkg/api"
	"github.com/skiffworks/skiffctl/pkg/config"
	"github.com/skiffworks/skiffctl/pkg/logger"
	"github.com/skiffworks/skiffctl/pkg/query"
)

// CommandContext lazily wires config, logger, client and store for the
// non-interactive commands. Flag overrides win over file and environment.
type CommandContext struct {
	ConfigPath     string
	ServerOverride string
	TokenOverride  string

	cfg    *config.Config
	logger *zap.Logger
	store  *query.Store
}

// NewCommandContext creates a context from the persistent flag values
func NewCommandContext(configPath, server, token string) *CommandContext {
	return &CommandContext{
		ConfigPath:     configPath,
		ServerOverride: server,
		TokenOverride:  token,
	}
}

// Config loads and caches the configuration
func (c *CommandContext) Config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.ServerOverride != "" {
		cfg.ServerURL = c.ServerOverride
	}
	if c.TokenOverride != "" {
		cfg.APIToken = c.TokenOverride
	}

	c.cfg = cfg
	return cfg, nil
}

// Logger builds the shared logger. Commands log to the file sink only;
// stdout belongs to their own output.
func (c *CommandContext) Logger() (*zap.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}

	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	c.logger = logger.New(logger.Options{
		Level: cfg.LogLevel,
		Path:  cfg.LogFile,
	})
	return c.logger, nil
}

// Store validates the configuration and builds the caching query store
func (c *CommandContext) Store() (*query.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := c.Logger()
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.ServerURL, cfg.APIToken, cfg.RequestTimeout, log)
	store, err := query.NewStore(client, log)
	if err != nil {
		return nil, fmt.Errorf("building query store: %w", err)
	}

	c.store = store
	return store, nil
}

// Close flushes buffered log entries
func (c *CommandContext) Close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}
