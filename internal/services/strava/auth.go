package strava

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// requiredScopes are the OAuth scopes the sync needs: reading existing
// activities for duplicate detection and writing new ones.
var requiredScopes = []string{"activity:read", "activity:write"}

const defaultAuthTimeout = 60 * time.Second

// AuthorizeOptions configures the browser-based OAuth flow.
type AuthorizeOptions struct {
	RedirectURI string
	Port        int
	Timeout     time.Duration
}

type callbackResult struct {
	code string
	err  error
}

// AuthorizeURL returns the Strava OAuth consent page URL for the given
// redirect URI.
func (m *TokenManager) AuthorizeURL(redirectURI string) string {
	query := url.Values{
		"client_id":       {m.clientID},
		"redirect_uri":    {redirectURI},
		"response_type":   {"code"},
		"approval_prompt": {"auto"},
		"scope":           {strings.Join(requiredScopes, ",")},
	}
	return m.oauthBaseURL + "/oauth/authorize?" + query.Encode()
}

// Authorize runs the full OAuth flow: it serves a localhost callback
// endpoint, hands the consent URL to notify for the user to open, waits for
// the redirect, and exchanges the authorization code for tokens. The flow
// fails if the callback does not arrive within the timeout.
func (m *TokenManager) Authorize(ctx context.Context, opts AuthorizeOptions, notify func(authURL string)) (TokenResponse, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultAuthTimeout
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", opts.Port))
	if err != nil {
		return TokenResponse{}, fmt.Errorf("listen for oauth callback: %w", err)
	}

	results := make(chan callbackResult, 1)
	server := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := parseCallback(r)
		if result.err != nil {
			http.Error(w, result.err.Error(), http.StatusBadRequest)
		} else {
			fmt.Fprintln(w, "Authorized. You can close this window.")
		}
		select {
		case results <- result:
		default:
		}
	})}

	serveErrs := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrs <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if notify != nil {
		notify(m.AuthorizeURL(opts.RedirectURI))
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-results:
		if result.err != nil {
			return TokenResponse{}, result.err
		}
		return m.ExchangeCode(ctx, result.code)
	case err := <-serveErrs:
		return TokenResponse{}, fmt.Errorf("oauth callback server: %w", err)
	case <-timer.C:
		return TokenResponse{}, fmt.Errorf("authorization url not visited after %s", timeout)
	case <-ctx.Done():
		return TokenResponse{}, ctx.Err()
	}
}

func parseCallback(r *http.Request) callbackResult {
	query := r.URL.Query()
	if errParam := query.Get("error"); errParam != "" {
		return callbackResult{err: fmt.Errorf("authorization denied: %s", errParam)}
	}
	code := query.Get("code")
	if code == "" {
		return callbackResult{err: errors.New("callback missing authorization code")}
	}

	granted := query.Get("scope")
	for _, scope := range requiredScopes {
		if !strings.Contains(granted, scope) {
			return callbackResult{err: fmt.Errorf("missing required permission %s in granted scope %q", scope, granted)}
		}
	}
	return callbackResult{code: code}
}
