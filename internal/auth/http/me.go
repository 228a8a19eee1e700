package http

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/auth/service"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP handles the current-user endpoint.
//
//	@Summary		Get the authenticated user
//	@Description	Returns the account behind the presented access token.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	UserPayload		"id, email, fullName"
//	@Failure		401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	ErrorResponse	"Internal server error"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	ident, ok := IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid or expired access token")
		return
	}

	user, err := h.UserService.GetUserByID(ctx, ident.UserID)
	if err != nil {
		log.Warn("failed to load user", "user_id", ident.UserID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, UserPayload{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	})
}
