package game

import "github.com/faceoffgame/faceoff/internal/model"

// Result is the outcome of an answer or steal submission. Submissions never
// fail with an error: wrong phase, empty input, validator outages and
// duplicate answers all come back as a normal not-matched Result.
type Result struct {
	// Matched reports whether the guess resolved to an unrevealed canonical
	// answer.
	Matched bool

	// AnswerIndex is the board index of the matched answer, -1 otherwise.
	AnswerIndex int

	// Answer is the matched canonical answer, nil otherwise.
	Answer *model.Answer

	// Points is the matched answer's point value.
	Points int

	// Confidence is 1.0 for a local match, or the validator's reported
	// confidence for a semantic match.
	Confidence float64

	// TimedOut is set when the validator call ran out of time. It affects
	// messaging only, never scoring.
	TimedOut bool

	// Strikes is the round's strike count after this submission.
	Strikes int

	// Phase is the game phase after this submission.
	Phase model.GamePhase

	// RoundEnded reports whether the round is over after this submission.
	RoundEnded bool
}

func notMatched(phase model.GamePhase) Result {
	return Result{AnswerIndex: -1, Phase: phase}
}
