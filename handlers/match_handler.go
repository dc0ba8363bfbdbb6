package handlers

import "net/http"

type reportMatchInput struct {
	WinnerID int `json:"winner_id"`
	LoserID  int `json:"loser_id"`
}

func (in reportMatchInput) validate() map[string]string {
	problems := make(map[string]string)
	if in.WinnerID <= 0 {
		problems["winner_id"] = "must be a positive integer"
	}
	if in.LoserID <= 0 {
		problems["loser_id"] = "must be a positive integer"
	}
	if in.WinnerID > 0 && in.WinnerID == in.LoserID {
		problems["loser_id"] = "must differ from winner_id"
	}
	return problems
}

// ListMatchesHandler godoc
// @Summary List reported matches
// @Tags matches
// @Produce json
// @Success 200 {object} map[string][]models.Match
// @Failure 500 {object} map[string]string
// @Router /matches [get]
func (h *TournamentHandler) ListMatchesHandler(w http.ResponseWriter, r *http.Request) {
	matches, err := h.tournamentService.ListMatches(r.Context())
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ReportMatchHandler godoc
// @Summary Report a match result
// @Tags matches
// @Accept json
// @Produce json
// @Param input body reportMatchInput true "Result"
// @Success 201 {object} map[string]models.Match
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string "Unknown player"
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /matches [post]
func (h *TournamentHandler) ReportMatchHandler(w http.ResponseWriter, r *http.Request) {
	var input reportMatchInput
	if err := readJSON(w, r, &input); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}

	if problems := input.validate(); len(problems) > 0 {
		h.failedValidationResponse(w, r, problems)
		return
	}

	match, err := h.tournamentService.ReportMatch(r.Context(), input.WinnerID, input.LoserID)
	if err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// ClearMatchesHandler godoc
// @Summary Remove every match
// @Tags matches
// @Success 204
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /matches [delete]
func (h *TournamentHandler) ClearMatchesHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.ClearMatches(r.Context()); err != nil {
		h.mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
