package main

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"stridesync/internal/config"
	"stridesync/internal/logging"
	"stridesync/internal/services/ifit"
	"stridesync/internal/services/strava"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
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
			c.configErr = err
			return
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
		verbose := c.verboseFlag != nil && *c.verboseFlag
		logger, err := logging.NewFromConfig(cfg, verbose)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) tokenManager() (*strava.TokenManager, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return strava.NewTokenManager(cfg.Strava.ClientID, cfg.Strava.ClientSecret, cfg.Paths.TokenFile)
}

func (c *commandContext) stravaClient() (*strava.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	tokens, err := c.tokenManager()
	if err != nil {
		return nil, err
	}
	return strava.NewClient(cfg.Strava.BaseURL, tokens,
		strava.WithLogger(logger),
		strava.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Strava.RequestTimeout) * time.Second}),
		strava.WithUploadPolling(
			time.Duration(cfg.Strava.UploadPollSeconds)*time.Second,
			time.Duration(cfg.Strava.UploadTimeout)*time.Second,
		),
	), nil
}

func (c *commandContext) ifitClient() (*ifit.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return ifit.NewClient(ifit.Config{
		BaseURL:         cfg.IFit.BaseURL,
		CookiesFile:     cfg.Paths.CookiesFile,
		MaxPages:        cfg.IFit.MaxPages,
		MinWorkoutBytes: cfg.IFit.MinWorkoutBytes,
	}, ifit.WithLogger(logger))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
