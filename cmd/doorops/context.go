package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"doorops/internal/catalog"
	"doorops/internal/config"
	"doorops/internal/logging"
	"doorops/internal/photos"
	"doorops/internal/preflight"
	"doorops/internal/runlock"
	"doorops/internal/services"
	"doorops/internal/storage"
	"doorops/internal/storage/postgres"
	"doorops/internal/storefront"
)

// store is what every backend provides to the commands.
type store interface {
	photos.Store
	catalog.Store
	preflight.Pinger
	Close() error
}

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// runContext tags ctx with a fresh run id and the procedure name so every
// log line of one invocation can be correlated.
func (c *commandContext) runContext(cmd *cobra.Command, procedure string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithRunID(ctx, uuid.NewString())
	return services.WithProcedure(ctx, procedure)
}

func openStore(ctx context.Context, cfg *config.Config) (store, error) {
	if cfg.Database.Driver == config.DriverPostgres {
		pg, err := postgres.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	lite, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

// withStore opens the configured store, runs fn, and always closes it.
func (c *commandContext) withStore(ctx context.Context, fn func(store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return services.Wrap(services.ErrStore, "store", "open", cfg.Database.Driver, err)
	}
	defer st.Close()
	return fn(st)
}

// withRunLock holds the host-wide run lock for the duration of fn.
func (c *commandContext) withRunLock(fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock, err := runlock.Acquire(cfg.Paths.LogDir)
	if err != nil {
		return services.Wrap(services.ErrPreconditionFailed, "runlock", "acquire", "", err)
	}
	defer lock.Release()
	return fn()
}

func (c *commandContext) storefrontClient() (*storefront.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return storefront.NewClient(cfg.Storefront), nil
}

// clearCacheAfter invalidates the storefront listing after rows changed.
// A failure is reported but does not undo the database change.
func (c *commandContext) clearCacheAfter(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, changed bool) error {
	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "No rows changed; storefront cache left as is")
		return nil
	}
	client, err := c.storefrontClient()
	if err != nil {
		return err
	}
	report, err := client.ClearCache(ctx)
	if err != nil {
		logger.Warn("storefront cache invalidation failed", logging.Error(err))
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Storefront cache cleared: %s\n", orDash(report.Message))
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
