package ifit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"stridesync/internal/workout"
)

// Workout IDs appear in the history pages as links of the form
// /workout/<slug>/<id>.
var workoutLinkRE = regexp.MustCompile(`href="/workout/\w+/(\w+)"`)

// ErrNoWorkouts indicates the workout history pages contained no workout
// links, which usually means the session cookies have expired.
var ErrNoWorkouts = errors.New("found 0 workouts, perhaps your session cookies have expired")

// HTTPDoer describes the HTTP client used by the iFit client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config carries the settings needed to talk to ifit.com.
type Config struct {
	BaseURL         string
	CookiesFile     string
	MaxPages        int
	MinWorkoutBytes int
}

// Client scrapes workout IDs and downloads TCX exports.
type Client struct {
	baseURL         string
	maxPages        int
	minWorkoutBytes int
	client          HTTPDoer
	logger          *slog.Logger
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. The replacement is responsible
// for carrying session cookies.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// WithLogger attaches a logger for download progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds an iFit client. Unless an HTTP client is supplied via
// options, the session cookies are loaded from cfg.CookiesFile.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:         strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		maxPages:        cfg.MaxPages,
		minWorkoutBytes: cfg.MinWorkoutBytes,
		logger:          slog.Default(),
	}
	if c.baseURL == "" {
		c.baseURL = "https://www.ifit.com"
	}
	if c.maxPages <= 0 {
		c.maxPages = 10
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		cookies, err := ParseCookiesFile(cfg.CookiesFile)
		if err != nil {
			return nil, err
		}
		jar, err := NewCookieJar(c.baseURL, cookies)
		if err != nil {
			return nil, err
		}
		c.client = &http.Client{Jar: jar, Timeout: 30 * time.Second}
	}
	return c, nil
}

// WorkoutIDs walks the paginated workout history and collects workout IDs in
// page order. An empty result is reported as ErrNoWorkouts.
func (c *Client) WorkoutIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for page := 1; page < c.maxPages; page++ {
		pageIDs, err := c.workoutPage(ctx, page)
		if err != nil {
			return nil, err
		}
		ids = append(ids, pageIDs...)
	}
	c.logger.Debug("scraped workout history", "workouts", len(ids))
	if len(ids) == 0 {
		return nil, ErrNoWorkouts
	}
	return ids, nil
}

func (c *Client) workoutPage(ctx context.Context, page int) ([]string, error) {
	pageURL := fmt.Sprintf("%s/me/workouts?page=%d", c.baseURL, page)
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch workout history page %d: %w", page, err)
	}

	var ids []string
	for _, match := range workoutLinkRE.FindAllStringSubmatch(string(body), -1) {
		ids = append(ids, match[1])
	}
	return ids, nil
}

// DownloadWorkout fetches a workout's TCX export into dir, skipping the
// download when a valid copy already exists. It returns the file path and
// whether the cached copy was used.
func (c *Client) DownloadWorkout(ctx context.Context, workoutID, dir string) (string, bool, error) {
	filename := filepath.Join(dir, workoutID)
	if cached, err := os.ReadFile(filename); err == nil && workout.LooksLikeTCX(cached) {
		c.logger.Debug("workout already downloaded", "workout", workoutID, "path", filename)
		return filename, true, nil
	}

	exportURL := c.baseURL + "/workout/export/tcx/" + workoutID
	body, err := c.get(ctx, exportURL)
	if err != nil {
		return "", false, fmt.Errorf("download workout %s: %w", workoutID, err)
	}
	if !workout.LooksLikeTCX(body) {
		return "", false, fmt.Errorf("workout %s: export is not a TCX document", workoutID)
	}
	if len(body) < c.minWorkoutBytes {
		return "", false, fmt.Errorf("workout %s: export suspiciously small (%d bytes)", workoutID, len(body))
	}

	c.logger.Info("saving workout", "workout", workoutID, "path", filename)
	if err := os.WriteFile(filename, body, 0o644); err != nil {
		return "", false, fmt.Errorf("write workout %s: %w", workoutID, err)
	}
	return filename, false, nil
}

// DownloadAll downloads every workout in the account's history into dir.
// It returns the downloaded workout IDs.
func (c *Client) DownloadAll(ctx context.Context, dir string) ([]string, error) {
	ids, err := c.WorkoutIDs(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workout directory: %w", err)
	}
	for _, id := range ids {
		if _, _, err := c.DownloadWorkout(ctx, id, dir); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
