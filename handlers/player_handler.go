package handlers

import (
	"net/http"
	"strings"
)

type registerPlayerInput struct {
	Name string `json:"name"`
}

// CountPlayersHandler godoc
// @Summary Number of registered players
// @Tags players
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 500 {object} map[string]string
// @Router /players/count [get]
func (h *TournamentHandler) CountPlayersHandler(w http.ResponseWriter, r *http.Request) {
	n, err := h.tournamentService.CountPlayers(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"count": n}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// RegisterPlayerHandler godoc
// @Summary Register a player
// @Tags players
// @Accept json
// @Produce json
// @Param input body registerPlayerInput true "Player"
// @Success 201 {object} map[string]models.Player
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /players [post]
func (h *TournamentHandler) RegisterPlayerHandler(w http.ResponseWriter, r *http.Request) {
	var input registerPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	if strings.TrimSpace(input.Name) == "" {
		h.failedValidationResponse(w, r, map[string]string{"name": "must be provided"})
		return
	}

	player, err := h.tournamentService.RegisterPlayer(r.Context(), input.Name)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ClearPlayersHandler godoc
// @Summary Remove every player
// @Tags players
// @Description Fails with 409 while matches still reference players.
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /players [delete]
func (h *TournamentHandler) ClearPlayersHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.ClearPlayers(r.Context()); err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
