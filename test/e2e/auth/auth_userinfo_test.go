package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	srv := setupAuthServer(t)
	reg := registerUser(t, srv, testEmail, testPassword, testFullName)
	access := reg["accessToken"].(string)

	t.Run("authorization header", func(t *testing.T) {
		resp, body := getJSON(t, srv, "/v1/me", map[string]string{
			"Authorization": "Bearer " + access,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, testEmail, body["email"])
		require.Equal(t, testFullName, body["fullName"])
		require.Positive(t, body["id"].(float64))
	})

	t.Run("x-auth-token header", func(t *testing.T) {
		resp, body := getJSON(t, srv, "/v1/me", map[string]string{
			"X-Auth-Token": access,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, testEmail, body["email"])
	})
}

func TestMeRejectsUnauthenticatedRequests(t *testing.T) {
	srv := setupAuthServer(t)
	reg := registerUser(t, srv, testEmail, testPassword, "")
	access := reg["accessToken"].(string)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"no token", nil, "missing access token"},
		{"empty bearer", map[string]string{"Authorization": "Bearer "}, "missing access token"},
		{"wrong scheme", map[string]string{"Authorization": "Basic dXNlcjpwdw=="}, "missing access token"},
		{"garbage token", map[string]string{"Authorization": "Bearer not.a.token"}, "invalid or expired access token"},
		{"tampered token", map[string]string{"Authorization": "Bearer " + access + "x"}, "invalid or expired access token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := getJSON(t, srv, "/v1/me", tt.headers)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assertErrorBody(t, body, tt.want)
		})
	}
}

// A refresh token is opaque and must never be accepted where a JWT
// access token is expected, and vice versa.
func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	srv := setupAuthServer(t)
	reg := registerUser(t, srv, testEmail, testPassword, "")

	resp, _ := getJSON(t, srv, "/v1/me", map[string]string{
		"Authorization": "Bearer " + reg["refreshToken"].(string),
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = postJSON(t, srv, "/v1/auth/refresh", map[string]string{
		"refreshToken": reg["accessToken"].(string),
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
