package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTokenServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newManager(t *testing.T, srv *httptest.Server, tokenFile string) *TokenManager {
	t.Helper()
	opts := []TokenManagerOption{}
	if srv != nil {
		opts = append(opts, WithOAuthBaseURL(srv.URL), WithTokenHTTPClient(srv.Client()))
	}
	mgr, err := NewTokenManager("id", "secret", tokenFile, opts...)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return mgr
}

func writeTokenFile(t *testing.T, state tokenState) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.json")
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAccessTokenMissingAuthorization(t *testing.T) {
	mgr := newManager(t, nil, filepath.Join(t.TempDir(), "token.json"))
	if mgr.HasAuthorization() {
		t.Fatal("fresh manager should not report authorization")
	}
	if _, err := mgr.AccessToken(context.Background()); !errors.Is(err, ErrAuthorizationMissing) {
		t.Fatalf("expected ErrAuthorizationMissing, got %v", err)
	}
}

func TestAccessTokenUsesCachedToken(t *testing.T) {
	path := writeTokenFile(t, tokenState{
		AccessToken:  "current",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
	})
	srv := newTokenServer(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("token endpoint should not be hit for a valid token")
	})

	mgr := newManager(t, srv, path)
	token, err := mgr.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if token != "current" {
		t.Fatalf("token = %q, want current", token)
	}
}

func TestAccessTokenRefreshesExpiredToken(t *testing.T) {
	path := writeTokenFile(t, tokenState{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(-time.Hour).Unix(),
	})
	srv := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.FormValue("grant_type"); got != "refresh_token" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.FormValue("refresh_token"); got != "refresh-1" {
			t.Errorf("refresh_token = %q", got)
		}
		fmt.Fprintf(w, `{"access_token": "fresh", "refresh_token": "refresh-2", "expires_at": %d}`,
			time.Now().Add(6*time.Hour).Unix())
	})

	mgr := newManager(t, srv, path)
	token, err := mgr.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if token != "fresh" {
		t.Fatalf("token = %q, want fresh", token)
	}

	// Rotated refresh token must be persisted for the next run.
	reloaded := newManager(t, srv, path)
	token, err = reloaded.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken after reload: %v", err)
	}
	if token != "fresh" {
		t.Fatalf("reloaded token = %q, want fresh", token)
	}
}

func TestExchangeCodePersistsTokens(t *testing.T) {
	srv := newTokenServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if got := r.FormValue("grant_type"); got != "authorization_code" {
			t.Errorf("grant_type = %q", got)
		}
		if got := r.FormValue("code"); got != "auth-code" {
			t.Errorf("code = %q", got)
		}
		fmt.Fprintf(w, `{"access_token": "access", "refresh_token": "refresh", "expires_at": %d}`,
			time.Now().Add(6*time.Hour).Unix())
	})

	path := filepath.Join(t.TempDir(), "token.json")
	mgr := newManager(t, srv, path)

	response, err := mgr.ExchangeCode(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("ExchangeCode: %v", err)
	}
	if response.AccessToken != "access" {
		t.Fatalf("unexpected response %+v", response)
	}
	if !mgr.HasAuthorization() {
		t.Fatal("expected authorization after exchange")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("token file not written: %v", err)
	}
}

func TestExchangeCodeErrorResponse(t *testing.T) {
	srv := newTokenServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Bad Request"}`, http.StatusBadRequest)
	})

	mgr := newManager(t, srv, filepath.Join(t.TempDir(), "token.json"))
	if _, err := mgr.ExchangeCode(context.Background(), "bad-code"); err == nil {
		t.Fatal("expected error for rejected code")
	}
}
