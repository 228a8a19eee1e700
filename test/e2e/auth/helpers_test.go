package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/auth/app"
)

/*
 * Common helpers for auth service end-to-end tests. The full application
 * is wired exactly as in production (config, store, migrations, services,
 * router) and served in-process over httptest.
 */

const (
	testJWTSecret = "e2e-test-secret"

	testEmail    = "a@b.com"
	testPassword = "secret1"
	testFullName = "Ada Lovelace"
)

// setupAuthServer wires a full application against a throwaway database
// and returns a running test server.
func setupAuthServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := app.Config{
		JWTSecret:            testJWTSecret,
		DatabaseFile:         filepath.Join(t.TempDir(), "auth.db"),
		AccessTokenTTL:       time.Hour,
		RefreshTokenTTL:      30 * 24 * time.Hour,
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	return srv
}

// postJSON sends a JSON body and decodes the JSON response.
func postJSON(t *testing.T, srv *httptest.Server, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := srv.Client().Post(srv.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)

	return resp, decodeBody(t, resp)
}

// getJSON performs a GET with optional headers and decodes the response.
func getJSON(t *testing.T, srv *httptest.Server, path string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)

	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}

// registerUser creates an account and returns its token pair response.
func registerUser(t *testing.T, srv *httptest.Server, email, password, fullName string) map[string]any {
	t.Helper()

	resp, body := postJSON(t, srv, "/v1/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"fullName": fullName,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assertTokenResponse(t, body)
	return body
}

// assertTokenResponse verifies a token response has all required fields.
func assertTokenResponse(t *testing.T, body map[string]any) {
	t.Helper()
	require.NotEmpty(t, body["accessToken"], "Access token should not be empty")
	require.NotEmpty(t, body["refreshToken"], "Refresh token should not be empty")
	require.Positive(t, body["expiresIn"].(float64), "Expiry should be set")
}

// assertErrorBody verifies the standard error shape and message.
func assertErrorBody(t *testing.T, body map[string]any, want string) {
	t.Helper()
	require.Equal(t, want, body["error"])
}
