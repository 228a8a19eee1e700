package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/auth/domain"
	"github.com/taskdeck/taskdeck/internal/auth/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// Request bodies must stay small; anything past this is not a
// legitimate auth payload.
const maxBodyBytes = 1 << 20

// AuthHandler serves the /v1/auth/* endpoints. All endpoints accept and
// produce application/json.
type AuthHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email    string `json:"email" example:"a@b.com"`
	Password string `json:"password" example:"secret1"`
	FullName string `json:"fullName" example:"Ada Lovelace"`
}

type loginRequest struct {
	Email    string `json:"email" example:"a@b.com"`
	Password string `json:"password" example:"secret1"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type googleLoginRequest struct {
	GoogleToken string `json:"googleToken"`
}

// UserPayload is the public shape of a user account.
type UserPayload struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// TokenResponse carries a freshly minted token pair. The user field is
// only present on register and login.
type TokenResponse struct {
	User         *UserPayload `json:"user,omitempty"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"`
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleRegister godoc
//
//	@Summary		Register a new account
//	@Description	Creates a user account with an email and password and signs the new user in, returning their first token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest	true	"Registration details"
//	@Success		201		{object}	TokenResponse	"user, accessToken, refreshToken, expiresIn"
//	@Failure		400		{object}	ErrorResponse	"Invalid email or password"
//	@Failure		409		{object}	ErrorResponse	"Email already registered"
//	@Failure		500		{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tokenResponse(&user, pair))
}

// HandleLogin godoc
//
//	@Summary		Log in with email and password
//	@Description	Verifies a password credential and returns a fresh token pair. Every login is an independent session; earlier refresh tokens stay valid.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	TokenResponse	"user, accessToken, refreshToken, expiresIn"
//	@Failure		400		{object}	ErrorResponse	"Malformed request body"
//	@Failure		401		{object}	ErrorResponse	"Invalid email or password"
//	@Failure		500		{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(&user, pair))
}

// HandleRefresh godoc
//
//	@Summary		Rotate a refresh token
//	@Description	Redeems a refresh token for a new token pair. The presented token is consumed; replaying it fails with 401.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		refreshRequest	true	"Refresh token"
//	@Success		200		{object}	TokenResponse	"accessToken, refreshToken, expiresIn"
//	@Failure		400		{object}	ErrorResponse	"Malformed request body"
//	@Failure		401		{object}	ErrorResponse	"Invalid or expired refresh token"
//	@Failure		500		{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(nil, pair))
}

// HandleGoogle godoc
//
//	@Summary		Log in with a Google token
//	@Description	Reserved endpoint for Google federated login. Returns 501 while unimplemented, or 400 when the feature flag is off.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		googleLoginRequest	true	"Google ID token"
//	@Failure		400		{object}	ErrorResponse		"Google login is disabled"
//	@Failure		501		{object}	ErrorResponse		"Not implemented"
//	@Router			/v1/auth/google [post].
func (h *AuthHandler) HandleGoogle(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.AuthService.GoogleLogin(r.Context(), req.GoogleToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenResponse(nil, pair))
}

func tokenResponse(user *domain.User, pair domain.TokenPair) TokenResponse {
	resp := TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	}
	if user != nil {
		resp.User = &UserPayload{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		}
	}
	return resp
}

// decodeJSON parses a JSON request body into dst. On failure it writes a
// 400 and reports false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service layer errors onto HTTP statuses.
// Anything unrecognized is logged and reported as an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefresh):
		httpx.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotImplemented):
		httpx.WriteError(w, http.StatusNotImplemented, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
