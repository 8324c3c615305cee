package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/naeemnh/tournamint-api/models"
	"github.com/naeemnh/tournamint-api/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// GetHandler handles GET /matches/{matchID}.
func (h *MatchHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Get(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitResultHandler handles PUT /matches/{matchID}/result.
func (h *MatchHandler) SubmitResultHandler(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		P1Score  *int              `json:"p1_score"`
		P2Score  *int              `json:"p2_score"`
		Sets     []models.SetScore `json:"sets"`
		WinnerID *int              `json:"winner_id"`
		Draw     bool              `json:"draw"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.SubmitResult(r.Context(), matchID, services.SubmitResultInput{
		P1Score:  input.P1Score,
		P2Score:  input.P2Score,
		Sets:     input.Sets,
		WinnerID: input.WinnerID,
		Draw:     input.Draw,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /tournaments/{tournamentID}/matches with optional
// category_id, round and status filters.
func (h *MatchHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
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

	var round *int
	if raw := r.URL.Query().Get("round"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequestResponse(w, r, errors.New("invalid round query parameter"))
			return
		}
		round = &n
	}

	var status *models.MatchStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.MatchStatus(raw)
		switch s {
		case models.MatchScheduled, models.MatchInProgress, models.MatchCompleted, models.MatchCanceled:
			status = &s
		default:
			badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
	}

	matches, err := h.matchService.ListByScope(r.Context(), tournamentID, categoryID, round, status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
