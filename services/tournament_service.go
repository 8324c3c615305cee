package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/naeemnh/tournamint-api/models"
	"github.com/naeemnh/tournamint-api/repositories"
	"github.com/naeemnh/tournamint-api/storage"
)

type TournamentService interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Tournament, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context, tournamentID int) ([]*models.Category, error)

	RegisterParticipant(ctx context.Context, participant *models.Participant) error
	ListParticipants(ctx context.Context, tournamentID int, categoryID *int, status *models.ParticipantStatus) ([]*models.Participant, error)
	UpdateParticipantStatus(ctx context.Context, tournamentID, participantID int, status models.ParticipantStatus) error
}

type tournamentService struct {
	tournamentRepo  repositories.TournamentRepository
	categoryRepo    repositories.CategoryRepository
	participantRepo repositories.ParticipantRepository
	uploader        storage.FileUploader
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	categoryRepo repositories.CategoryRepository,
	participantRepo repositories.ParticipantRepository,
	uploader storage.FileUploader,
) TournamentService {
	return &tournamentService{
		tournamentRepo:  tournamentRepo,
		categoryRepo:    categoryRepo,
		participantRepo: participantRepo,
		uploader:        uploader,
	}
}

func (s *tournamentService) validate(t *models.Tournament) error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTournamentNameRequired
	}
	if !t.EndDate.After(t.StartDate) {
		return ErrTournamentInvalidDates
	}
	if t.RegDate.After(t.StartDate) {
		return ErrTournamentInvalidRegDate
	}
	if t.MaxParticipants <= 0 {
		return ErrTournamentInvalidCapacity
	}
	return nil
}

func (s *tournamentService) Create(ctx context.Context, t *models.Tournament) error {
	if err := s.validate(t); err != nil {
		return err
	}
	if t.Status == "" {
		t.Status = models.StatusSoon
	}
	return s.tournamentRepo.Create(ctx, nil, t)
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.populateLogoURL(t)

	categories, err := s.categoryRepo.ListByTournament(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	t.Categories = make([]models.Category, len(categories))
	for i, c := range categories {
		t.Categories[i] = *c
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, nil, status)
	if err != nil {
		return nil, err
	}
	for _, t := range tournaments {
		s.populateLogoURL(t)
	}
	return tournaments, nil
}

func (s *tournamentService) Update(ctx context.Context, t *models.Tournament) error {
	if err := s.validate(t); err != nil {
		return err
	}
	err := s.tournamentRepo.Update(ctx, nil, t)
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	err := s.tournamentRepo.Delete(ctx, nil, id)
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}

// UploadLogo stores the logo in object storage under a fresh key, points the
// tournament at it and removes the previous object. Removal failures are
// non-fatal: the new logo is already live.
func (s *tournamentService) UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%d/logo-%s", id, uuid.NewString())
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	oldKey := t.LogoKey
	if err := s.tournamentRepo.UpdateLogoKey(ctx, nil, id, &key); err != nil {
		_ = s.uploader.Delete(ctx, key)
		return nil, err
	}
	if oldKey != nil {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	t.LogoKey = &key
	s.populateLogoURL(t)
	return t, nil
}

func (s *tournamentService) populateLogoURL(t *models.Tournament) {
	if t.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*t.LogoKey)
		t.LogoURL = &url
	}
}

func (s *tournamentService) CreateCategory(ctx context.Context, c *models.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCategoryNameRequired
	}
	if _, err := s.tournamentRepo.GetByID(ctx, nil, c.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	return s.categoryRepo.Create(ctx, nil, c)
}

func (s *tournamentService) ListCategories(ctx context.Context, tournamentID int) ([]*models.Category, error) {
	return s.categoryRepo.ListByTournament(ctx, nil, tournamentID)
}

func (s *tournamentService) RegisterParticipant(ctx context.Context, p *models.Participant) error {
	if strings.TrimSpace(p.DisplayName) == "" {
		return ErrParticipantNameRequired
	}
	if p.Type == "" {
		p.Type = models.ParticipantSolo
	}
	if p.Status == "" {
		p.Status = models.ParticipantConfirmed
	}
	if p.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, nil, *p.CategoryID)
		if err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if category.TournamentID != p.TournamentID {
			return fmt.Errorf("%w: category %d does not belong to tournament %d",
				ErrValidationFailed, *p.CategoryID, p.TournamentID)
		}
	}

	err := s.participantRepo.Create(ctx, nil, p)
	switch {
	case errors.Is(err, repositories.ErrParticipantConflict):
		return ErrRegistrationConflict
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	}
	return err
}

func (s *tournamentService) ListParticipants(ctx context.Context, tournamentID int, categoryID *int, status *models.ParticipantStatus) ([]*models.Participant, error) {
	return s.participantRepo.ListByScope(ctx, nil, tournamentID, categoryID, status)
}

func (s *tournamentService) UpdateParticipantStatus(ctx context.Context, tournamentID, participantID int, status models.ParticipantStatus) error {
	switch status {
	case models.ParticipantPending, models.ParticipantConfirmed, models.ParticipantRejected:
	default:
		return fmt.Errorf("%w: unknown participant status %q", ErrValidationFailed, status)
	}

	participant, err := s.participantRepo.GetByID(ctx, nil, participantID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}
	if participant.TournamentID != tournamentID {
		return ErrParticipantNotFound
	}

	if err := s.participantRepo.UpdateStatus(ctx, nil, participantID, status); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return err
	}
	return nil
}
