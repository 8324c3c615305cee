package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naeemnh/tournamint-api/brackets"
	"github.com/naeemnh/tournamint-api/models"
	"github.com/naeemnh/tournamint-api/repositories"
)

type GenerateBracketInput struct {
	TournamentID int
	CategoryID   *int
	Kind         brackets.Kind
	SeedOrder    []int
	Settings     *brackets.Settings
	MatchTime    *time.Time
}

type BracketService interface {
	// Generate builds and persists the bracket for a scope, materializes its
	// matches and reports the whole result. Fails with ErrBracketConflict if
	// the scope already has a bracket.
	Generate(ctx context.Context, input GenerateBracketInput) (*models.BracketResponse, error)

	Get(ctx context.Context, tournamentID int, categoryID *int) (*models.BracketResponse, error)
}

type bracketService struct {
	db              *sql.DB
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	bracketRepo     repositories.BracketRepository
	hub             *brackets.Hub
	locks           *ScopeLocker
	logger          *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	bracketRepo repositories.BracketRepository,
	hub *brackets.Hub,
	locks *ScopeLocker,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		db:              db,
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		bracketRepo:     bracketRepo,
		hub:             hub,
		locks:           locks,
		logger:          logger,
	}
}

func (s *bracketService) Generate(ctx context.Context, input GenerateBracketInput) (*models.BracketResponse, error) {
	unlock := s.locks.Lock(input.TournamentID, input.CategoryID)
	defer unlock()

	tournament, err := s.tournamentRepo.GetByID(ctx, nil, input.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	confirmed := models.ParticipantConfirmed
	participants, err := s.participantRepo.ListByScope(ctx, nil, input.TournamentID, input.CategoryID, &confirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	if len(participants) < 2 {
		return nil, brackets.ErrInsufficientParticipants
	}

	entrants := make([]brackets.Entrant, len(participants))
	for i, p := range participants {
		entrants[i] = brackets.Entrant{ID: p.ID, Name: p.DisplayName}
	}
	entrants = brackets.ApplySeedOrder(entrants, input.SeedOrder)

	settings := brackets.DefaultSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}

	generator, err := brackets.New(input.Kind)
	if err != nil {
		return nil, err
	}
	graph, totalRounds, err := generator.Generate(ctx, brackets.GenerateParams{
		Entrants: entrants,
		Settings: settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s bracket: %w", generator.Name(), err)
	}

	matchTime := tournament.StartDate
	if input.MatchTime != nil {
		matchTime = *input.MatchTime
	}
	if time.Now().After(matchTime) {
		matchTime = time.Now().Add(15 * time.Minute)
	}

	bracket := &models.Bracket{
		TournamentID: input.TournamentID,
		CategoryID:   input.CategoryID,
		Kind:         input.Kind,
		Status:       models.BracketGenerated,
		TotalRounds:  totalRounds,
		CurrentRound: 1,
		Graph:        graph,
		Settings:     settings,
	}

	var created []models.Match
	err = withTx(ctx, s.db, func(tx *sql.Tx) error {
		_, getErr := s.bracketRepo.GetByScope(ctx, tx, input.TournamentID, input.CategoryID)
		switch {
		case getErr == nil:
			return ErrBracketConflict
		case !errors.Is(getErr, repositories.ErrBracketNotFound):
			return getErr
		}

		if err := s.bracketRepo.Create(ctx, tx, bracket); err != nil {
			if errors.Is(err, repositories.ErrBracketScopeConflict) {
				// Lost a race with a concurrent generation that slipped in
				// between the check and the insert.
				return ErrInconsistentState
			}
			return err
		}

		var mErr error
		created, mErr = s.materializeMatches(ctx, tx, bracket, matchTime)
		return mErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bracket generated",
		slog.Int("tournament_id", input.TournamentID),
		slog.String("kind", string(input.Kind)),
		slog.Int("total_rounds", totalRounds),
		slog.Int("matches", len(created)),
	)
	notifyBracketUpdate(s.hub, brackets.EventBracketUpdated, input.TournamentID, input.CategoryID)

	response := &models.BracketResponse{
		Bracket:      bracket,
		Matches:      created,
		Participants: dereferenceParticipants(participants),
	}
	return response, nil
}

// materializeMatches turns bracket nodes into schedulable match records, one
// per node, each back-referencing its node id. The grand final reset is the
// one exception: it only becomes a match if the losers champion forces it.
func (s *bracketService) materializeMatches(ctx context.Context, tx *sql.Tx, bracket *models.Bracket, matchTime time.Time) ([]models.Match, error) {
	nodes := bracket.Graph.Nodes()
	created := make([]models.Match, 0, len(nodes))
	for _, node := range nodes {
		if node.ID == brackets.GrandFinalResetNodeID {
			continue
		}
		nodeID := node.ID
		round := node.Round
		match := &models.Match{
			TournamentID:    bracket.TournamentID,
			CategoryID:      bracket.CategoryID,
			P1ParticipantID: node.P1ID,
			P2ParticipantID: node.P2ID,
			MatchTime:       matchTime,
			Status:          models.MatchScheduled,
			Round:           &round,
			BracketNodeID:   &nodeID,
		}
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return nil, fmt.Errorf("failed to materialize match for node %s: %w", node.ID, err)
		}
		created = append(created, *match)
	}
	return created, nil
}

func (s *bracketService) Get(ctx context.Context, tournamentID int, categoryID *int) (*models.BracketResponse, error) {
	response := &models.BracketResponse{}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bracket, err := s.bracketRepo.GetByScope(gCtx, nil, tournamentID, categoryID)
		if err != nil {
			if errors.Is(err, repositories.ErrBracketNotFound) {
				return ErrBracketNotFound
			}
			return err
		}
		response.Bracket = bracket
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByScope(gCtx, nil, tournamentID, categoryID, nil, nil)
		if err != nil {
			return err
		}
		response.Matches = make([]models.Match, len(matches))
		for i, m := range matches {
			response.Matches[i] = *m
		}
		return nil
	})
	g.Go(func() error {
		confirmed := models.ParticipantConfirmed
		participants, err := s.participantRepo.ListByScope(gCtx, nil, tournamentID, categoryID, &confirmed)
		if err != nil {
			return err
		}
		response.Participants = dereferenceParticipants(participants)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return response, nil
}

func dereferenceParticipants(participants []*models.Participant) []models.Participant {
	out := make([]models.Participant, len(participants))
	for i, p := range participants {
		out[i] = *p
	}
	return out
}

// notifyBracketUpdate emits a realtime event to the tournament room.
// Best effort only: broadcast problems never fail the primary operation.
func notifyBracketUpdate(hub *brackets.Hub, eventType string, tournamentID int, categoryID *int) {
	if hub == nil {
		return
	}
	hub.BroadcastToRoom(fmt.Sprintf("tournament_%d", tournamentID), brackets.Message{
		Type: eventType,
		Payload: brackets.BracketUpdate{
			TournamentID: tournamentID,
			CategoryID:   categoryID,
		},
	})
}
