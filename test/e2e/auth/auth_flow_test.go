package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRegisterLoginRefreshFlow walks the full account lifecycle: register,
// log in again, rotate the refresh token, and replay the consumed token.
func TestRegisterLoginRefreshFlow(t *testing.T) {
	srv := setupAuthServer(t)

	// Register a new account
	reg := registerUser(t, srv, testEmail, testPassword, testFullName)

	user := reg["user"].(map[string]any)
	require.Equal(t, testEmail, user["email"])
	require.Equal(t, testFullName, user["fullName"])

	// Log in with the same credentials
	resp, login := postJSON(t, srv, "/v1/auth/login", map[string]string{
		"email":    testEmail,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assertTokenResponse(t, login)

	// Rotate the login refresh token
	resp, rotated := postJSON(t, srv, "/v1/auth/refresh", map[string]string{
		"refreshToken": login["refreshToken"].(string),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assertTokenResponse(t, rotated)
	require.NotEqual(t, login["refreshToken"], rotated["refreshToken"], "refresh must rotate the token")

	// The consumed token is gone
	resp, body := postJSON(t, srv, "/v1/auth/refresh", map[string]string{
		"refreshToken": login["refreshToken"].(string),
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assertErrorBody(t, body, "invalid or expired refresh token")

	// The registration session is independent and still refreshable
	resp, _ = postJSON(t, srv, "/v1/auth/refresh", map[string]string{
		"refreshToken": reg["refreshToken"].(string),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterRejectsDuplicateAndWeakInput(t *testing.T) {
	srv := setupAuthServer(t)
	registerUser(t, srv, testEmail, testPassword, "")

	t.Run("duplicate email", func(t *testing.T) {
		resp, body := postJSON(t, srv, "/v1/auth/register", map[string]string{
			"email":    testEmail,
			"password": "different1",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		assertErrorBody(t, body, "email already registered")
	})

	t.Run("short password", func(t *testing.T) {
		resp, body := postJSON(t, srv, "/v1/auth/register", map[string]string{
			"email":    "new@b.com",
			"password": "12345",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assertErrorBody(t, body, "password must be at least 6 characters")
	})

	t.Run("invalid email", func(t *testing.T) {
		resp, body := postJSON(t, srv, "/v1/auth/register", map[string]string{
			"email":    "not-an-email",
			"password": testPassword,
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assertErrorBody(t, body, "invalid email format")
	})
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := setupAuthServer(t)
	registerUser(t, srv, testEmail, testPassword, "")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", testEmail, "secret2"},
		{"unknown email", "nobody@b.com", testPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postJSON(t, srv, "/v1/auth/login", map[string]string{
				"email":    tt.email,
				"password": tt.password,
			})
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assertErrorBody(t, body, "invalid email or password")
		})
	}
}

func TestGoogleLoginDisabledByDefault(t *testing.T) {
	srv := setupAuthServer(t)

	resp, body := postJSON(t, srv, "/v1/auth/google", map[string]string{
		"googleToken": "some-token",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertErrorBody(t, body, "google login is disabled")
}
