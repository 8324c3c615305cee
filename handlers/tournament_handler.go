package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/naeemnh/tournamint-api/middleware"
	"github.com/naeemnh/tournamint-api/models"
	"github.com/naeemnh/tournamint-api/services"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(ts services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

type tournamentInput struct {
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	RegDate         time.Time `json:"reg_date"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Location        *string   `json:"location"`
	MaxParticipants int       `json:"max_participants"`
	Status          *string   `json:"status"`
}

// CreateHandler handles POST /tournaments.
func (h *TournamentHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to create a tournament")
		return
	}

	var input tournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament := &models.Tournament{
		Name:            input.Name,
		Description:     input.Description,
		OrganizerID:     currentUserID,
		RegDate:         input.RegDate,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Location:        input.Location,
		Status:          models.StatusSoon,
		MaxParticipants: input.MaxParticipants,
	}
	if err := h.tournamentService.Create(r.Context(), tournament); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /tournaments/{tournamentID}.
func (h *TournamentHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler handles GET /tournaments with an optional status filter.
func (h *TournamentHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	var status *models.TournamentStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.TournamentStatus(raw)
		switch s {
		case models.StatusSoon, models.StatusRegistration, models.StatusActive,
			models.StatusCompleted, models.StatusCanceled:
			status = &s
		default:
			badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
	}

	tournaments, err := h.tournamentService.List(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournaments": tournaments}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PUT /tournaments/{tournamentID}.
func (h *TournamentHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	existing, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !h.requireOrganizer(w, r, existing) {
		return
	}

	var input tournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.RegDate = input.RegDate
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.Location = input.Location
	existing.MaxParticipants = input.MaxParticipants
	if input.Status != nil {
		existing.Status = models.TournamentStatus(*input.Status)
	}

	if err := h.tournamentService.Update(r.Context(), existing); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": existing}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /tournaments/{tournamentID}.
func (h *TournamentHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	existing, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !h.requireOrganizer(w, r, existing) {
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadLogoHandler handles POST /tournaments/{tournamentID}/logo with a
// multipart "logo" file field.
func (h *TournamentHandler) UploadLogoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	existing, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !h.requireOrganizer(w, r, existing) {
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		badRequestResponse(w, r, errors.New("could not parse multipart form (max 10MB)"))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, errors.New("missing logo file field"))
		return
	}
	defer file.Close()

	tournament, err := h.tournamentService.UploadLogo(r.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"tournament": tournament}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateCategoryHandler handles POST /tournaments/{tournamentID}/categories.
func (h *TournamentHandler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	category := &models.Category{
		TournamentID: tournamentID,
		Name:         input.Name,
		Description:  input.Description,
	}
	if err := h.tournamentService.CreateCategory(r.Context(), category); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListCategoriesHandler handles GET /tournaments/{tournamentID}/categories.
func (h *TournamentHandler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	categories, err := h.tournamentService.ListCategories(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"categories": categories}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RegisterParticipantHandler handles POST /tournaments/{tournamentID}/participants.
func (h *TournamentHandler) RegisterParticipantHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		CategoryID  *int    `json:"category_id"`
		UserID      *int    `json:"user_id"`
		DisplayName string  `json:"display_name"`
		Type        *string `json:"type"`
		Seed        *int    `json:"seed"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant := &models.Participant{
		TournamentID: tournamentID,
		CategoryID:   input.CategoryID,
		UserID:       input.UserID,
		DisplayName:  input.DisplayName,
		Seed:         input.Seed,
	}
	if input.Type != nil {
		participant.Type = models.ParticipantType(*input.Type)
	}

	if err := h.tournamentService.RegisterParticipant(r.Context(), participant); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListParticipantsHandler handles GET /tournaments/{tournamentID}/participants.
func (h *TournamentHandler) ListParticipantsHandler(w http.ResponseWriter, r *http.Request) {
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

	var status *models.ParticipantStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.ParticipantStatus(raw)
		switch s {
		case models.ParticipantPending, models.ParticipantConfirmed, models.ParticipantRejected:
			status = &s
		default:
			badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
	}

	participants, err := h.tournamentService.ListParticipants(r.Context(), tournamentID, categoryID, status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": participants}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateParticipantStatusHandler handles PUT /tournaments/{tournamentID}/participants/{participantID}/status.
func (h *TournamentHandler) UpdateParticipantStatusHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participantID, err := getIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	existing, err := h.tournamentService.GetByID(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if !h.requireOrganizer(w, r, existing) {
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	status := models.ParticipantStatus(input.Status)
	if err := h.tournamentService.UpdateParticipantStatus(r.Context(), tournamentID, participantID, status); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant_id": participantID, "status": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// requireOrganizer enforces that the caller owns the tournament.
func (h *TournamentHandler) requireOrganizer(w http.ResponseWriter, r *http.Request, tournament *models.Tournament) bool {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return false
	}
	if tournament.OrganizerID != currentUserID {
		forbiddenResponse(w, r, "only the tournament organizer may perform this action")
		return false
	}
	return true
}
