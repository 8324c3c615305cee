package services

import "errors"

// Shared errors across services, mapped to HTTP statuses in the handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed          = errors.New("validation failed")
	ErrPasswordTooShort          = errors.New("password is too short")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrTournamentNameRequired    = errors.New("tournament name is required")
	ErrCategoryNameRequired      = errors.New("category name is required")
	ErrParticipantNameRequired   = errors.New("participant display name is required")
	ErrTournamentInvalidRegDate  = errors.New("tournament registration end date must be before start date")
	ErrTournamentInvalidDates    = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidCapacity = errors.New("tournament max participants must be positive")
	ErrMatchMissingParticipants  = errors.New("match participants are not determined yet")
	ErrMatchAlreadyCompleted     = errors.New("match result has already been recorded")
	ErrInvalidMatchResult        = errors.New("invalid match result")
	ErrDrawNotAllowed            = errors.New("elimination matches cannot end in a draw")

	// Conflicts
	ErrAuthEmailTaken       = errors.New("email address is already in use")
	ErrRegistrationConflict = errors.New("participant is already registered for this scope")
	ErrBracketConflict      = errors.New("bracket already exists for this tournament/category")

	// Concurrent regeneration or interleaved recompute detected
	// mid-transaction; the caller may retry the whole operation.
	ErrInconsistentState = errors.New("concurrent modification detected, retry the operation")

	// Authentication / authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors
	ErrUserNotFound        = errors.New("user not found")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrParticipantNotFound = errors.New("participant registration not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrBracketNotFound     = errors.New("bracket not found for this tournament/category")
	ErrStandingsNotFound   = errors.New("standings not found for this tournament/category")
)
