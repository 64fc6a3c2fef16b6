package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrAuthorizationMissing is returned when no Strava refresh token has been
// obtained yet.
var ErrAuthorizationMissing = errors.New("strava authorization missing, run 'stridesync auth' first")

const (
	defaultOAuthBaseURL = "https://www.strava.com"
	tokenRefreshLeeway  = 5 * time.Minute
)

// TokenResponse mirrors the Strava OAuth token endpoint payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

type tokenState struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

func (s tokenState) expiry() time.Time {
	if s.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(s.ExpiresAt, 0)
}

// TokenManagerOption customizes TokenManager construction.
type TokenManagerOption func(*TokenManager)

// WithTokenHTTPClient overrides the HTTP client used for OAuth calls.
func WithTokenHTTPClient(client HTTPDoer) TokenManagerOption {
	return func(m *TokenManager) {
		if client != nil {
			m.httpClient = client
		}
	}
}

// WithOAuthBaseURL overrides the OAuth endpoint base URL (used in tests).
func WithOAuthBaseURL(baseURL string) TokenManagerOption {
	return func(m *TokenManager) {
		m.oauthBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTokenStore injects a custom persistence layer.
func WithTokenStore(store TokenStore) TokenManagerOption {
	return func(m *TokenManager) {
		if store != nil {
			m.store = store
		}
	}
}

// TokenManager persists Strava OAuth tokens and refreshes the short-lived
// access token when it nears expiry. It implements TokenSource.
type TokenManager struct {
	clientID     string
	clientSecret string
	oauthBaseURL string
	httpClient   HTTPDoer
	store        TokenStore

	stateMu sync.RWMutex
	state   tokenState
}

// NewTokenManager builds a TokenManager persisting tokens at tokenFile.
func NewTokenManager(clientID, clientSecret, tokenFile string, opts ...TokenManagerOption) (*TokenManager, error) {
	mgr := &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		oauthBaseURL: defaultOAuthBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		store:        NewFileTokenStore(tokenFile),
	}
	for _, opt := range opts {
		opt(mgr)
	}

	state, err := mgr.store.Load()
	if err != nil {
		return nil, err
	}
	mgr.state = state
	return mgr, nil
}

// HasAuthorization reports whether a refresh token is available.
func (m *TokenManager) HasAuthorization() bool {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return strings.TrimSpace(m.state.RefreshToken) != ""
}

// AccessToken returns a current access token, refreshing it first when it is
// missing or close to expiry.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	if token, ok := m.cachedToken(); ok {
		return token, nil
	}
	return m.refreshToken(ctx)
}

func (m *TokenManager) cachedToken() (string, bool) {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	if m.state.AccessToken != "" && time.Until(m.state.expiry()) > tokenRefreshLeeway {
		return m.state.AccessToken, true
	}
	return "", false
}

func (m *TokenManager) refreshToken(ctx context.Context) (string, error) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	if m.state.AccessToken != "" && time.Until(m.state.expiry()) > tokenRefreshLeeway {
		return m.state.AccessToken, nil
	}
	if strings.TrimSpace(m.state.RefreshToken) == "" {
		return "", ErrAuthorizationMissing
	}

	form := url.Values{
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {m.state.RefreshToken},
	}
	response, err := m.postToken(ctx, form)
	if err != nil {
		return "", fmt.Errorf("refresh access token: %w", err)
	}

	if err := m.saveResponseLocked(response); err != nil {
		return "", err
	}
	return m.state.AccessToken, nil
}

// ExchangeCode trades an authorization code for tokens and persists them.
func (m *TokenManager) ExchangeCode(ctx context.Context, code string) (TokenResponse, error) {
	form := url.Values{
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
		"grant_type":    {"authorization_code"},
		"code":          {code},
	}
	response, err := m.postToken(ctx, form)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	if err := m.saveResponseLocked(response); err != nil {
		return TokenResponse{}, err
	}
	return response, nil
}

func (m *TokenManager) saveResponseLocked(response TokenResponse) error {
	updated := tokenState{
		AccessToken:  response.AccessToken,
		RefreshToken: response.RefreshToken,
		ExpiresAt:    response.ExpiresAt,
	}
	if updated.RefreshToken == "" {
		updated.RefreshToken = m.state.RefreshToken
	}
	if err := m.store.Save(updated); err != nil {
		return err
	}
	m.state = updated
	return nil
}

func (m *TokenManager) postToken(ctx context.Context, form url.Values) (TokenResponse, error) {
	endpoint := m.oauthBaseURL + "/oauth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenResponse{}, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return TokenResponse{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return TokenResponse{}, &httpStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var response TokenResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return TokenResponse{}, fmt.Errorf("decode token response: %w", err)
	}
	if response.AccessToken == "" {
		return TokenResponse{}, errors.New("token response missing access_token")
	}
	return response, nil
}
