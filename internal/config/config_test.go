package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[strava]
client_id = "  12345  "
client_secret = "shh"
gear_id = "g987"

[sync]
skip = ["abc", "  ", "def"]
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}

	if cfg.Strava.ClientID != "12345" {
		t.Errorf("ClientID = %q, want trimmed value", cfg.Strava.ClientID)
	}
	if cfg.Strava.GearID != "g987" {
		t.Errorf("GearID = %q", cfg.Strava.GearID)
	}
	if cfg.Strava.BaseURL != "https://www.strava.com/api/v3" {
		t.Errorf("BaseURL = %q, want default", cfg.Strava.BaseURL)
	}
	if cfg.Strava.AuthPort != 8743 {
		t.Errorf("AuthPort = %d, want default 8743", cfg.Strava.AuthPort)
	}
	if cfg.IFit.MaxPages != 10 {
		t.Errorf("MaxPages = %d, want default 10", cfg.IFit.MaxPages)
	}
	if len(cfg.Sync.Skip) != 2 || cfg.Sync.Skip[0] != "abc" || cfg.Sync.Skip[1] != "def" {
		t.Errorf("Skip = %v, want blanks dropped", cfg.Sync.Skip)
	}
}

func TestLoadExpandsPaths(t *testing.T) {
	path := writeConfig(t, `
[paths]
workout_dir = "~/workouts"
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.WorkoutDir != filepath.Join(home, "workouts") {
		t.Errorf("WorkoutDir = %q, want home-expanded path", cfg.Paths.WorkoutDir)
	}
	if !filepath.IsAbs(cfg.Paths.TokenFile) {
		t.Errorf("TokenFile = %q, want absolute", cfg.Paths.TokenFile)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, _, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists to be false")
	}
	if cfg.IFit.BaseURL != "https://www.ifit.com" {
		t.Errorf("BaseURL = %q, want default", cfg.IFit.BaseURL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad auth port": `
[strava]
auth_port = 99999
`,
		"bad log format": `
[logging]
format = "xml"
`,
		"bad max pages": `
[ifit]
max_pages = 0
`,
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, _, err := Load(writeConfig(t, contents)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRequireStravaCredentials(t *testing.T) {
	cfg := Default()
	err := cfg.RequireStravaCredentials()
	if err == nil || !strings.Contains(err.Error(), "client_id") {
		t.Fatalf("expected credentials error, got %v", err)
	}

	cfg.Strava.ClientID = "id"
	cfg.Strava.ClientSecret = "secret"
	if err := cfg.RequireStravaCredentials(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSampleParses(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	if _, _, exists, err := Load(target); err != nil || !exists {
		t.Fatalf("sample config did not load: exists=%v err=%v", exists, err)
	}
}
