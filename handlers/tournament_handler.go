package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type TournamentHandler struct {
	responder
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{
		responder:         newResponder(logger),
		tournamentService: ts,
	}
}

// SummaryHandler godoc
// @Summary Tournament overview
// @Tags tournament
// @Description Player and match counts, current standings and next round pairings.
// @Produce json
// @Success 200 {object} map[string]models.TournamentSummary
// @Failure 500 {object} map[string]string
// @Router /tournament [get]
func (h *TournamentHandler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.tournamentService.Summary(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": summary}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// HealthHandler godoc
// @Summary Datastore health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func (h *TournamentHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.Ping(r.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		h.unavailableResponse(w, r, "datastore unavailable")
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
