package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/swiss-tournament/services"
)

type AuthHandler struct {
	responder
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		responder:   newResponder(logger),
		authService: authService,
	}
}

type tokenInput struct {
	Password string `json:"password"`
}

// IssueToken godoc
// @Summary Organizer login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body tokenInput true "Organizer password"
// @Success 200 {object} map[string]interface{} "token and expires_at"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var input tokenInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	if input.Password == "" {
		h.badRequestResponse(w, r, errors.New("password is required"))
		return
	}

	token, expiresAt, err := h.authService.Login(r.Context(), input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Warn("organizer login rejected", slog.String("remote_addr", r.RemoteAddr))
		}
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
