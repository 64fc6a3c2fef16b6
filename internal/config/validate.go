package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStrava(); err != nil {
		return err
	}
	if err := c.validateIFit(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WorkoutDir) == "" {
		return errors.New("paths.workout_dir must be set")
	}
	if strings.TrimSpace(c.Paths.TokenFile) == "" {
		return errors.New("paths.token_file must be set")
	}
	return nil
}

func (c *Config) validateStrava() error {
	if c.Strava.AuthPort <= 0 || c.Strava.AuthPort > 65535 {
		return errors.New("strava.auth_port must be a valid port")
	}
	if strings.TrimSpace(c.Strava.RedirectURI) == "" {
		return errors.New("strava.redirect_uri must be set")
	}
	if err := ensurePositiveMap(map[string]int{
		"strava.request_timeout":     c.Strava.RequestTimeout,
		"strava.upload_poll_seconds": c.Strava.UploadPollSeconds,
		"strava.upload_timeout":      c.Strava.UploadTimeout,
	}); err != nil {
		return err
	}
	if c.Strava.UploadTimeout <= c.Strava.UploadPollSeconds {
		return errors.New("strava.upload_timeout must be greater than strava.upload_poll_seconds")
	}
	return nil
}

func (c *Config) validateIFit() error {
	if c.IFit.MaxPages <= 0 {
		return errors.New("ifit.max_pages must be positive")
	}
	if c.IFit.MinWorkoutBytes < 0 {
		return errors.New("ifit.min_workout_bytes must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// RequireStravaCredentials errors unless the API application credentials are
// configured. Commands that talk to Strava call this; download does not.
func (c *Config) RequireStravaCredentials() error {
	if c.Strava.ClientID == "" || c.Strava.ClientSecret == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/stridesync/config.toml"
		}
		return fmt.Errorf("strava.client_id and strava.client_secret are required; edit %s (create with 'stridesync config init')", defaultPath)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
