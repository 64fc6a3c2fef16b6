package preflight

import (
	"stridesync/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Workout directory", cfg.Paths.WorkoutDir),
		CheckFileReadable("iFit cookies", cfg.Paths.CookiesFile),
		CheckStravaCredentials(cfg.Strava.ClientID, cfg.Strava.ClientSecret),
		CheckTokenFile(cfg.Paths.TokenFile),
	}

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	return results
}
