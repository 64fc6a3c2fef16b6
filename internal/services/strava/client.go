package strava

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	activitiesPerPage         = 200
	defaultUploadPollInterval = 2 * time.Second
	defaultUploadPollTimeout  = 2 * time.Minute
)

// HTTPDoer describes the HTTP client used for Strava API calls.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource supplies a current access token for API requests.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// httpStatusError reports a non-2xx API response.
type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("strava api returned %d", e.StatusCode)
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("strava api returned %d: %s", e.StatusCode, body)
}

// IsUnauthorized reports whether err is a 401 response from the API.
func IsUnauthorized(err error) bool {
	var statusErr *httpStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized
}

// Client calls the Strava v3 API.
type Client struct {
	baseURL      string
	tokens       TokenSource
	client       HTTPDoer
	logger       *slog.Logger
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// ClientOption customizes client construction.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// WithLogger attaches a logger for API call progress.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUploadPolling overrides how often and for how long upload processing
// is polled.
func WithUploadPolling(interval, timeout time.Duration) ClientOption {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
		if timeout > 0 {
			c.pollTimeout = timeout
		}
	}
}

// NewClient builds a Strava API client.
func NewClient(baseURL string, tokens TokenSource, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		tokens:       tokens,
		client:       &http.Client{Timeout: 30 * time.Second},
		logger:       slog.Default(),
		pollInterval: defaultUploadPollInterval,
		pollTimeout:  defaultUploadPollTimeout,
	}
	if c.baseURL == "" {
		c.baseURL = "https://www.strava.com/api/v3"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Athlete returns the authenticated athlete.
func (c *Client) Athlete(ctx context.Context) (Athlete, error) {
	var athlete Athlete
	if err := c.getJSON(ctx, c.baseURL+"/athlete", &athlete); err != nil {
		return Athlete{}, fmt.Errorf("fetch athlete: %w", err)
	}
	return athlete, nil
}

// Activities returns the athlete's activities that started after the given
// time, ordered oldest first. It pages through the API until a short page.
func (c *Client) Activities(ctx context.Context, after time.Time) ([]Activity, error) {
	var activities []Activity
	for page := 1; ; page++ {
		query := url.Values{
			"after":    {strconv.FormatInt(after.Unix(), 10)},
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(activitiesPerPage)},
		}
		pageURL := c.baseURL + "/athlete/activities?" + query.Encode()

		var raw []apiActivity
		if err := c.getJSON(ctx, pageURL, &raw); err != nil {
			return nil, fmt.Errorf("fetch activities page %d: %w", page, err)
		}
		for _, item := range raw {
			activity, err := item.toActivity()
			if err != nil {
				return nil, err
			}
			activities = append(activities, activity)
		}
		if len(raw) < activitiesPerPage {
			break
		}
	}
	c.logger.Debug("fetched activities", "count", len(activities), "after", after)
	return activities, nil
}

// UploadRequest describes a TCX upload.
type UploadRequest struct {
	FilePath     string
	Name         string
	Description  string
	ActivityType string
	ExternalID   string
}

type uploadStatus struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Error      string `json:"error"`
	Status     string `json:"status"`
	ActivityID int64  `json:"activity_id"`
}

// Upload submits a TCX file and polls until Strava finishes processing it.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	status, err := c.startUpload(ctx, req)
	if err != nil {
		return UploadResult{}, err
	}
	return c.waitForUpload(ctx, status)
}

func (c *Client) startUpload(ctx context.Context, req UploadRequest) (uploadStatus, error) {
	file, err := os.Open(req.FilePath)
	if err != nil {
		return uploadStatus{}, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"data_type":     "tcx",
		"name":          req.Name,
		"description":   req.Description,
		"activity_type": req.ActivityType,
		"external_id":   req.ExternalID,
	}
	for field, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(field, value); err != nil {
			return uploadStatus{}, fmt.Errorf("write upload field %s: %w", field, err)
		}
	}
	part, err := writer.CreateFormFile("file", filepath.Base(req.FilePath))
	if err != nil {
		return uploadStatus{}, fmt.Errorf("create upload part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return uploadStatus{}, fmt.Errorf("copy upload data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return uploadStatus{}, fmt.Errorf("finalize upload body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/uploads", &body)
	if err != nil {
		return uploadStatus{}, fmt.Errorf("build upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	var status uploadStatus
	if err := c.doJSON(httpReq, &status); err != nil {
		return uploadStatus{}, fmt.Errorf("start upload: %w", err)
	}
	if status.Error != "" {
		return uploadStatus{}, fmt.Errorf("upload rejected: %s", status.Error)
	}
	return status, nil
}

func (c *Client) waitForUpload(ctx context.Context, status uploadStatus) (UploadResult, error) {
	deadline := time.Now().Add(c.pollTimeout)
	for status.ActivityID == 0 {
		if status.Error != "" {
			return UploadResult{}, fmt.Errorf("upload %d failed: %s", status.ID, status.Error)
		}
		if time.Now().After(deadline) {
			return UploadResult{}, fmt.Errorf("upload %d still processing after %s", status.ID, c.pollTimeout)
		}

		select {
		case <-ctx.Done():
			return UploadResult{}, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		pollURL := fmt.Sprintf("%s/uploads/%d", c.baseURL, status.ID)
		if err := c.getJSON(ctx, pollURL, &status); err != nil {
			return UploadResult{}, fmt.Errorf("poll upload %d: %w", status.ID, err)
		}
	}
	return UploadResult{UploadID: status.ID, ActivityID: status.ActivityID}, nil
}

// UpdateActivityGear assigns gear to an existing activity.
func (c *Client) UpdateActivityGear(ctx context.Context, activityID int64, gearID string) error {
	payload, err := json.Marshal(map[string]string{"gear_id": gearID})
	if err != nil {
		return fmt.Errorf("encode gear update: %w", err)
	}

	updateURL := fmt.Sprintf("%s/activities/%d", c.baseURL, activityID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, updateURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build gear update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var updated apiActivity
	if err := c.doJSON(req, &updated); err != nil {
		return fmt.Errorf("update activity %d gear: %w", activityID, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	token, err := c.tokens.AccessToken(req.Context())
	if err != nil {
		return fmt.Errorf("resolve access token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &httpStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
