package config

const (
	defaultWorkoutDir        = "~/.local/share/stridesync/workouts"
	defaultLogDir            = "~/.local/share/stridesync/logs"
	defaultCookiesFile       = "~/.config/stridesync/cookies.txt"
	defaultTokenFile         = "~/.config/stridesync/strava_token.json"
	defaultRedirectURI       = "http://localhost:8743/authorised"
	defaultAuthPort          = 8743
	defaultStravaBaseURL     = "https://www.strava.com/api/v3"
	defaultRequestTimeout    = 30
	defaultUploadPollSeconds = 2
	defaultUploadTimeout     = 120
	defaultIFitBaseURL       = "https://www.ifit.com"
	defaultMaxPages          = 10
	defaultMinWorkoutBytes   = 1024
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkoutDir:  defaultWorkoutDir,
			LogDir:      defaultLogDir,
			CookiesFile: defaultCookiesFile,
			TokenFile:   defaultTokenFile,
		},
		Strava: Strava{
			RedirectURI:       defaultRedirectURI,
			AuthPort:          defaultAuthPort,
			BaseURL:           defaultStravaBaseURL,
			RequestTimeout:    defaultRequestTimeout,
			UploadPollSeconds: defaultUploadPollSeconds,
			UploadTimeout:     defaultUploadTimeout,
		},
		IFit: IFit{
			BaseURL:         defaultIFitBaseURL,
			MaxPages:        defaultMaxPages,
			MinWorkoutBytes: defaultMinWorkoutBytes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
