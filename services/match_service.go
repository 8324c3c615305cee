package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/naeemnh/tournamint-api/brackets"
	"github.com/naeemnh/tournamint-api/models"
	"github.com/naeemnh/tournamint-api/repositories"
)

type SubmitResultInput struct {
	P1Score  *int
	P2Score  *int
	Sets     []models.SetScore
	WinnerID *int
	Draw     bool
}

type MatchService interface {
	// SubmitResult records a final score, advances the bracket graph when the
	// match belongs to one, and triggers an incremental standings recompute
	// for the match's scope.
	SubmitResult(ctx context.Context, matchID int, input SubmitResultInput) (*models.Match, error)

	Get(ctx context.Context, matchID int) (*models.Match, error)
	ListByScope(ctx context.Context, tournamentID int, categoryID *int, round *int, status *models.MatchStatus) ([]models.Match, error)
}

type matchService struct {
	db          *sql.DB
	matchRepo   repositories.MatchRepository
	bracketRepo repositories.BracketRepository
	standings   StandingsService
	hub         *brackets.Hub
	locks       *ScopeLocker
	logger      *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	bracketRepo repositories.BracketRepository,
	standings StandingsService,
	hub *brackets.Hub,
	locks *ScopeLocker,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:          db,
		matchRepo:   matchRepo,
		bracketRepo: bracketRepo,
		standings:   standings,
		hub:         hub,
		locks:       locks,
		logger:      logger,
	}
}

func (s *matchService) SubmitResult(ctx context.Context, matchID int, input SubmitResultInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	updated, bracketChanged, err := s.applyResult(ctx, match.TournamentID, match.CategoryID, matchID, input)
	if err != nil {
		return nil, err
	}

	// The result is committed at this point. Recompute takes the scope lock
	// itself, so it must run after applyResult has released it. A failure
	// here leaves standings stale, not wrong: the recalculation endpoint
	// repairs them.
	if _, err := s.standings.Update(ctx, UpdateStandingsInput{
		TournamentID: updated.TournamentID,
		CategoryID:   updated.CategoryID,
		MatchIDs:     []int{matchID},
	}); err != nil {
		s.logger.Error("standings recompute after match result failed",
			slog.Int("match_id", matchID),
			slog.Int("tournament_id", updated.TournamentID),
			slog.String("error", err.Error()),
		)
	}

	if bracketChanged {
		notifyBracketUpdate(s.hub, brackets.EventBracketUpdated, updated.TournamentID, updated.CategoryID)
	}
	return updated, nil
}

// applyResult holds the scope lock for the validate-update-advance
// transaction and releases it before returning.
func (s *matchService) applyResult(ctx context.Context, tournamentID int, categoryID *int, matchID int, input SubmitResultInput) (*models.Match, bool, error) {
	unlock := s.locks.Lock(tournamentID, categoryID)
	defer unlock()

	var updated *models.Match
	var bracketChanged bool
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		match, err := s.matchRepo.GetByID(ctx, tx, matchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}

		switch match.Status {
		case models.MatchCompleted:
			return ErrMatchAlreadyCompleted
		case models.MatchCanceled:
			return ErrInvalidMatchResult
		}
		if match.P1ParticipantID == nil || match.P2ParticipantID == nil {
			return ErrMatchMissingParticipants
		}

		var bracket *models.Bracket
		if match.BracketNodeID != nil {
			bracket, err = s.bracketRepo.GetByScope(ctx, tx, match.TournamentID, match.CategoryID)
			if err != nil {
				if errors.Is(err, repositories.ErrBracketNotFound) {
					return ErrInconsistentState
				}
				return err
			}
		}

		if err := validateResult(match, bracket, input); err != nil {
			return err
		}

		match.P1Score = input.P1Score
		match.P2Score = input.P2Score
		match.Sets = input.Sets
		match.WinnerID = nil
		if !input.Draw {
			match.WinnerID = input.WinnerID
		}
		match.Status = models.MatchCompleted
		if err := s.matchRepo.UpdateResult(ctx, tx, match); err != nil {
			return err
		}

		if bracket != nil {
			if err := s.advanceBracket(ctx, tx, bracket, match); err != nil {
				return err
			}
			bracketChanged = true
		}

		updated = match
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return updated, bracketChanged, nil
}

// validateResult enforces the result rules before anything is written: the
// winner must be one of the match's participants, a draw is only legal
// outside elimination brackets, and set scores cannot be negative.
func validateResult(match *models.Match, bracket *models.Bracket, input SubmitResultInput) error {
	if input.Draw {
		if bracket != nil && bracket.Kind != brackets.KindRoundRobin {
			return ErrDrawNotAllowed
		}
		if input.WinnerID != nil {
			return ErrInvalidMatchResult
		}
		return nil
	}

	if input.WinnerID == nil {
		return ErrInvalidMatchResult
	}
	if !match.Involves(*input.WinnerID) {
		return ErrInvalidMatchResult
	}
	for _, set := range input.Sets {
		if set.P1 < 0 || set.P2 < 0 {
			return ErrInvalidMatchResult
		}
	}
	return nil
}

// advanceBracket records the winner on the match's node, feeds the winner
// (and, in double elimination, the loser) into the downstream nodes and
// their materialized matches, and moves the bracket's state machine.
func (s *matchService) advanceBracket(ctx context.Context, tx *sql.Tx, bracket *models.Bracket, match *models.Match) error {
	graph := bracket.Graph
	node := graph.Find(*match.BracketNodeID)
	if node == nil {
		return ErrInconsistentState
	}
	node.WinnerID = match.WinnerID

	if match.WinnerID != nil {
		winnerID := *match.WinnerID
		loserID := otherParticipant(node, winnerID)

		if node.NextID != nil {
			if err := s.feedNode(ctx, tx, bracket, *node.NextID, node.NextSlot, winnerID, participantName(node, winnerID)); err != nil {
				return err
			}
		}
		if node.LoserNextID != nil && loserID != nil {
			if err := s.feedNode(ctx, tx, bracket, *node.LoserNextID, node.LoserNextSlot, *loserID, participantName(node, *loserID)); err != nil {
				return err
			}
		}

		if err := s.resolveFinals(ctx, tx, bracket, node, winnerID); err != nil {
			return err
		}
	}

	if bracket.Status == models.BracketGenerated {
		bracket.Status = models.BracketInProgress
	}
	if err := s.updateProgress(ctx, tx, bracket); err != nil {
		return err
	}

	return s.bracketRepo.UpdateState(ctx, tx, bracket.ID, bracket.Status, bracket.CurrentRound, graph)
}

// feedNode places a participant into a downstream node slot and mirrors the
// change onto the node's materialized match, so the schedule stays in sync
// with the graph.
func (s *matchService) feedNode(ctx context.Context, tx *sql.Tx, bracket *models.Bracket, nodeID string, slot int, participantID int, name string) error {
	target := bracket.Graph.Find(nodeID)
	if target == nil {
		return ErrInconsistentState
	}
	target.SetSlot(slot, participantID, name)

	targetMatch, err := s.matchRepo.GetByNode(ctx, tx, bracket.TournamentID, bracket.CategoryID, nodeID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			// The grand final reset has no match until it is forced.
			if nodeID == brackets.GrandFinalResetNodeID {
				return nil
			}
			return ErrInconsistentState
		}
		return err
	}
	return s.matchRepo.UpdateParticipants(ctx, tx, targetMatch.ID, target.P1ID, target.P2ID)
}

// resolveFinals handles bracket completion. A single elimination ends with
// its final node. In double elimination the first grand final ends the
// bracket only when the winners-side champion (slot 1) wins; a losers-side
// win forces the reset, which is materialized here and always decides.
func (s *matchService) resolveFinals(ctx context.Context, tx *sql.Tx, bracket *models.Bracket, node *brackets.Node, winnerID int) error {
	switch bracket.Kind {
	case brackets.KindSingleElimination:
		if final := bracket.Graph.FinalNode(); final != nil && final.ID == node.ID {
			bracket.Status = models.BracketCompleted
		}
	case brackets.KindDoubleElimination:
		switch node.ID {
		case brackets.GrandFinalNodeID:
			if node.P1ID != nil && *node.P1ID == winnerID {
				bracket.Status = models.BracketCompleted
				return nil
			}
			return s.forceGrandFinalReset(ctx, tx, bracket, node)
		case brackets.GrandFinalResetNodeID:
			bracket.Status = models.BracketCompleted
		}
	}
	return nil
}

func (s *matchService) forceGrandFinalReset(ctx context.Context, tx *sql.Tx, bracket *models.Bracket, grandFinal *brackets.Node) error {
	de := bracket.Graph.DoubleElimination
	if de == nil || de.GrandFinalReset == nil {
		return ErrInconsistentState
	}
	reset := de.GrandFinalReset
	// Same two finalists, rematch on even terms.
	if grandFinal.P1ID != nil && grandFinal.P1Name != nil {
		reset.SetSlot(1, *grandFinal.P1ID, *grandFinal.P1Name)
	}
	if grandFinal.P2ID != nil && grandFinal.P2Name != nil {
		reset.SetSlot(2, *grandFinal.P2ID, *grandFinal.P2Name)
	}

	nodeID := reset.ID
	round := reset.Round
	resetMatch := &models.Match{
		TournamentID:    bracket.TournamentID,
		CategoryID:      bracket.CategoryID,
		P1ParticipantID: reset.P1ID,
		P2ParticipantID: reset.P2ID,
		MatchTime:       time.Now().Add(15 * time.Minute),
		Status:          models.MatchScheduled,
		Round:           &round,
		BracketNodeID:   &nodeID,
	}
	if err := s.matchRepo.Create(ctx, tx, resetMatch); err != nil {
		return fmt.Errorf("failed to materialize grand final reset: %w", err)
	}
	return nil
}

// updateProgress recomputes the current round from the open matches and
// closes round robin brackets once none remain.
func (s *matchService) updateProgress(ctx context.Context, tx *sql.Tx, bracket *models.Bracket) error {
	matches, err := s.matchRepo.ListByScope(ctx, tx, bracket.TournamentID, bracket.CategoryID, nil, nil)
	if err != nil {
		return err
	}

	open := 0
	currentRound := 0
	for _, m := range matches {
		if m.Status == models.MatchCompleted || m.Status == models.MatchCanceled {
			continue
		}
		open++
		if m.Round != nil && (currentRound == 0 || *m.Round < currentRound) {
			currentRound = *m.Round
		}
	}

	if open == 0 {
		if bracket.Kind == brackets.KindRoundRobin {
			bracket.Status = models.BracketCompleted
		}
		currentRound = bracket.TotalRounds
	}
	if currentRound > 0 {
		bracket.CurrentRound = currentRound
	}
	return nil
}

func otherParticipant(node *brackets.Node, participantID int) *int {
	if node.P1ID != nil && *node.P1ID != participantID {
		return node.P1ID
	}
	if node.P2ID != nil && *node.P2ID != participantID {
		return node.P2ID
	}
	return nil
}

func participantName(node *brackets.Node, participantID int) string {
	if node.P1ID != nil && *node.P1ID == participantID && node.P1Name != nil {
		return *node.P1Name
	}
	if node.P2ID != nil && *node.P2ID == participantID && node.P2Name != nil {
		return *node.P2Name
	}
	return ""
}

func (s *matchService) Get(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListByScope(ctx context.Context, tournamentID int, categoryID *int, round *int, status *models.MatchStatus) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByScope(ctx, nil, tournamentID, categoryID, round, status)
	if err != nil {
		return nil, err
	}
	out := make([]models.Match, len(matches))
	for i, m := range matches {
		out[i] = *m
	}
	return out, nil
}
