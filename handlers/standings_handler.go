package handlers

import (
	"net/http"

	"github.com/naeemnh/tournamint-api/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GetHandler handles GET /tournaments/{tournamentID}/standings.
func (h *StandingsHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	categoryID, err := getCategoryIDFromQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	response, err := h.standingsService.Get(r.Context(), tournamentID, categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecalculateHandler handles POST /tournaments/{tournamentID}/standings/recalculate.
// It rebuilds every participant's statistics from the full match history.
func (h *StandingsHandler) RecalculateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	categoryID, err := getCategoryIDFromQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	records, err := h.standingsService.Update(r.Context(), services.UpdateStandingsInput{
		TournamentID:   tournamentID,
		CategoryID:     categoryID,
		RecalculateAll: true,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"updated_records": records}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
