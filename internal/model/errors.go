package model

import "errors"

// Common errors used across the application
var (
	// Game lifecycle errors
	ErrTeamNameRequired = errors.New("both team names are required")
	ErrNoGameInProgress = errors.New("no game in progress")
	ErrNoQuestion       = errors.New("no question is set")
	ErrWrongPhase       = errors.New("action not valid in current phase")
	ErrGameOver         = errors.New("game is over")

	// Board errors
	ErrInvalidAnswerIndex = errors.New("answer index out of range")

	// Pack errors
	ErrEmptyPack       = errors.New("question pack has no questions")
	ErrInvalidQuestion = errors.New("question is missing a prompt or answers")
)
