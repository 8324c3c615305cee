package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/naeemnh/tournamint-api/brackets"
	"github.com/naeemnh/tournamint-api/models"
	"github.com/naeemnh/tournamint-api/repositories"
	"github.com/naeemnh/tournamint-api/standings"
)

type UpdateStandingsInput struct {
	TournamentID   int
	CategoryID     *int
	RecalculateAll bool
	MatchIDs       []int
}

type StandingsService interface {
	// Update recomputes the scope's standings and reports how many rows were
	// written. With RecalculateAll every participant's statistics are rebuilt
	// from the complete match history; otherwise only participants appearing
	// in MatchIDs are recomputed. Positions are always reassigned for the
	// whole scope, atomically.
	Update(ctx context.Context, input UpdateStandingsInput) (int, error)

	Get(ctx context.Context, tournamentID int, categoryID *int) (*models.StandingsResponse, error)
}

type standingsService struct {
	db              *sql.DB
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	bracketRepo     repositories.BracketRepository
	standingRepo    repositories.StandingRepository
	hub             *brackets.Hub
	locks           *ScopeLocker
	logger          *slog.Logger
}

func NewStandingsService(
	db *sql.DB,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	bracketRepo repositories.BracketRepository,
	standingRepo repositories.StandingRepository,
	hub *brackets.Hub,
	locks *ScopeLocker,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		db:              db,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		bracketRepo:     bracketRepo,
		standingRepo:    standingRepo,
		hub:             hub,
		locks:           locks,
		logger:          logger,
	}
}

func (s *standingsService) Update(ctx context.Context, input UpdateStandingsInput) (int, error) {
	unlock := s.locks.Lock(input.TournamentID, input.CategoryID)
	defer unlock()

	var written int
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		confirmed := models.ParticipantConfirmed
		participants, err := s.participantRepo.ListByScope(ctx, tx, input.TournamentID, input.CategoryID, &confirmed)
		if err != nil {
			return fmt.Errorf("failed to list participants: %w", err)
		}
		if len(participants) == 0 {
			return ErrParticipantNotFound
		}

		matches, err := s.matchRepo.ListByScope(ctx, tx, input.TournamentID, input.CategoryID, nil, nil)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}

		bracket, err := s.bracketRepo.GetByScope(ctx, tx, input.TournamentID, input.CategoryID)
		if err != nil && !errors.Is(err, repositories.ErrBracketNotFound) {
			return err
		}

		pointsCfg := standings.DefaultPointsConfig()
		if bracket != nil {
			pointsCfg = standings.PointsConfig{
				Win:  bracket.Settings.PointsWin,
				Draw: bracket.Settings.PointsDraw,
				Loss: bracket.Settings.PointsLoss,
			}
		}

		affected := s.affectedParticipants(input, participants, matches)

		previous, err := s.standingRepo.ListByScope(ctx, tx, input.TournamentID, input.CategoryID, false)
		if err != nil {
			return err
		}
		previousByParticipant := make(map[int]*models.TournamentStanding, len(previous))
		for _, row := range previous {
			previousByParticipant[row.ParticipantID] = row
		}

		entries := make([]models.TournamentStanding, 0, len(participants))
		for _, p := range participants {
			var entry models.TournamentStanding
			if prev, ok := previousByParticipant[p.ID]; ok && !affected[p.ID] {
				entry = *prev
			} else {
				entry = standings.Compute(p.ID, matches, pointsCfg)
				entry.IsEliminated, entry.EliminationRound = eliminationFor(bracket, matches, p.ID)
			}
			entry.TournamentID = input.TournamentID
			entry.CategoryID = input.CategoryID
			entry.ParticipantName = p.DisplayName
			entry.ParticipantType = p.Type
			entries = append(entries, entry)
		}

		standings.Rank(entries)

		if err := s.standingRepo.ReplaceScope(ctx, tx, input.TournamentID, input.CategoryID, entries); err != nil {
			return err
		}
		written = len(entries)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("standings updated",
		slog.Int("tournament_id", input.TournamentID),
		slog.Bool("full_recompute", input.RecalculateAll),
		slog.Int("records", written),
	)
	notifyBracketUpdate(s.hub, brackets.EventStandingsUpdated, input.TournamentID, input.CategoryID)
	return written, nil
}

// affectedParticipants decides whose statistics must be rebuilt. A full
// recompute (or a request without match ids) touches everyone; an
// incremental one only the participants of the changed matches. Ranking is
// scope-wide either way, because position is relative.
func (s *standingsService) affectedParticipants(input UpdateStandingsInput, participants []*models.Participant, matches []*models.Match) map[int]bool {
	affected := make(map[int]bool, len(participants))
	if input.RecalculateAll || len(input.MatchIDs) == 0 {
		for _, p := range participants {
			affected[p.ID] = true
		}
		return affected
	}

	changed := make(map[int]bool, len(input.MatchIDs))
	for _, id := range input.MatchIDs {
		changed[id] = true
	}
	for _, m := range matches {
		if !changed[m.ID] {
			continue
		}
		if m.P1ParticipantID != nil {
			affected[*m.P1ParticipantID] = true
		}
		if m.P2ParticipantID != nil {
			affected[*m.P2ParticipantID] = true
		}
	}
	return affected
}

// eliminationFor reports whether the participant has lost their last
// possible match in an elimination bracket and in which round. Round robin
// never eliminates. Single elimination eliminates on the first loss; double
// elimination on a losers-bracket loss, a reset loss, or a grand final loss
// by the losers-side finalist.
func eliminationFor(bracket *models.Bracket, matches []*models.Match, participantID int) (bool, *int) {
	if bracket == nil || bracket.Graph == nil {
		return false, nil
	}
	graph := bracket.Graph
	if graph.Kind == brackets.KindRoundRobin {
		return false, nil
	}

	for _, m := range matches {
		if m.Status != models.MatchCompleted || m.WinnerID == nil || *m.WinnerID == participantID {
			continue
		}
		if !m.Involves(participantID) || m.BracketNodeID == nil {
			continue
		}
		node := graph.Find(*m.BracketNodeID)
		if node == nil {
			continue
		}

		switch graph.Kind {
		case brackets.KindSingleElimination:
			round := node.Round
			return true, &round
		case brackets.KindDoubleElimination:
			switch {
			case graph.IsLosersNode(node.ID), node.ID == brackets.GrandFinalResetNodeID:
				round := node.Round
				return true, &round
			case node.ID == brackets.GrandFinalNodeID:
				de := graph.DoubleElimination
				if de != nil && de.GrandFinal.P2ID != nil && *de.GrandFinal.P2ID == participantID {
					round := node.Round
					return true, &round
				}
			}
		}
	}
	return false, nil
}

func (s *standingsService) Get(ctx context.Context, tournamentID int, categoryID *int) (*models.StandingsResponse, error) {
	rows, err := s.standingRepo.ListByScope(ctx, s.db, tournamentID, categoryID, true)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrStandingsNotFound
	}

	response := &models.StandingsResponse{Entries: make([]models.TournamentStanding, len(rows))}
	for i, row := range rows {
		response.Entries[i] = *row
		if row.UpdatedAt.After(response.LastUpdated) {
			response.LastUpdated = row.UpdatedAt
		}
	}
	return response, nil
}
