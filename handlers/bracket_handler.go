package handlers

import (
	"net/http"
	"time"

	"github.com/naeemnh/tournamint-api/brackets"
	"github.com/naeemnh/tournamint-api/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

// GenerateHandler handles POST /tournaments/{tournamentID}/bracket.
func (h *BracketHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		CategoryID *int               `json:"category_id"`
		Kind       brackets.Kind      `json:"kind"`
		SeedOrder  []int              `json:"seed_order"`
		Settings   *brackets.Settings `json:"settings"`
		MatchTime  *time.Time         `json:"match_time"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	response, err := h.bracketService.Generate(r.Context(), services.GenerateBracketInput{
		TournamentID: tournamentID,
		CategoryID:   input.CategoryID,
		Kind:         input.Kind,
		SeedOrder:    input.SeedOrder,
		Settings:     input.Settings,
		MatchTime:    input.MatchTime,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHandler handles GET /tournaments/{tournamentID}/bracket.
func (h *BracketHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
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

	response, err := h.bracketService.Get(r.Context(), tournamentID, categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
