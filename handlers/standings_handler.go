package handlers

import "net/http"

// StandingsHandler godoc
// @Summary Current standings
// @Tags standings
// @Description Players ordered by wins, ties broken by registration order.
// @Produce json
// @Success 200 {object} map[string][]models.Standing
// @Failure 500 {object} map[string]string
// @Router /standings [get]
func (h *TournamentHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	standings, err := h.tournamentService.Standings(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// PairingsHandler godoc
// @Summary Pairings for the next round
// @Tags standings
// @Produce json
// @Success 200 {object} map[string][]models.Pairing
// @Failure 500 {object} map[string]string
// @Router /pairings [get]
func (h *TournamentHandler) PairingsHandler(w http.ResponseWriter, r *http.Request) {
	pairings, err := h.tournamentService.SwissPairings(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"pairings": pairings}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ExportStandingsHandler godoc
// @Summary Export a standings snapshot to object storage
// @Tags standings
// @Produce json
// @Success 201 {object} map[string]models.StandingsSnapshot
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string "Object storage not configured"
// @Security BearerAuth
// @Router /standings/snapshots [post]
func (h *TournamentHandler) ExportStandingsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.tournamentService.ExportStandings(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", snapshot.URL)
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"snapshot": snapshot}, headers); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
