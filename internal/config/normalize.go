package config

import "strings"

func (c *Config) normalize() error {
	for _, field := range []*string{
		&c.Paths.WorkoutDir,
		&c.Paths.LogDir,
		&c.Paths.CookiesFile,
		&c.Paths.TokenFile,
	} {
		expanded, err := expandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Strava.ClientID = strings.TrimSpace(c.Strava.ClientID)
	c.Strava.ClientSecret = strings.TrimSpace(c.Strava.ClientSecret)
	c.Strava.GearID = strings.TrimSpace(c.Strava.GearID)
	c.Strava.RedirectURI = strings.TrimSpace(c.Strava.RedirectURI)
	c.Strava.BaseURL = strings.TrimRight(strings.TrimSpace(c.Strava.BaseURL), "/")
	if c.Strava.BaseURL == "" {
		c.Strava.BaseURL = defaultStravaBaseURL
	}

	c.IFit.BaseURL = strings.TrimRight(strings.TrimSpace(c.IFit.BaseURL), "/")
	if c.IFit.BaseURL == "" {
		c.IFit.BaseURL = defaultIFitBaseURL
	}

	skip := c.Sync.Skip[:0]
	for _, id := range c.Sync.Skip {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			skip = append(skip, trimmed)
		}
	}
	c.Sync.Skip = skip

	return nil
}
