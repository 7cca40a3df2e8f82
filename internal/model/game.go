package model

import "time"

// GameID uniquely identifies a game session.
type GameID string

// GamePhase represents the current phase of a game.
type GamePhase string

const (
	PhaseSetup   GamePhase = "setup"   // Team names not yet confirmed
	PhasePlaying GamePhase = "playing" // Active team answering
	PhaseSteal   GamePhase = "steal"   // Other team's one-shot guess after 3 strikes
	PhaseResults GamePhase = "results" // Game over
)

// ValidPhase reports whether the value is one of the defined phases.
func ValidPhase(p GamePhase) bool {
	switch p {
	case PhaseSetup, PhasePlaying, PhaseSteal, PhaseResults:
		return true
	}
	return false
}

// GameState is the authoritative state of one game session.
//
// Invariants maintained by the controller (and re-imposed by the
// persistence sanitizer):
//   - Question and Round are both nil or both non-nil.
//   - StealOriginalTeam is non-nil exactly while Phase is PhaseSteal; it
//     records which team was answering before the third strike flipped
//     control.
//   - RoundWinner reflects the last finalized round's beneficiary, nil when
//     no round has finalized since the last advance or nobody scored.
type GameState struct {
	ID                GameID        `json:"id"`
	Teams             [2]Team       `json:"teams"`
	ActiveTeam        TeamIndex     `json:"active_team"`
	Phase             GamePhase     `json:"phase"`
	Question          *Question     `json:"question,omitempty"`
	Round             *RoundState   `json:"round,omitempty"`
	RoundWinner       *TeamIndex    `json:"round_winner,omitempty"`
	StealOriginalTeam *TeamIndex    `json:"steal_original_team,omitempty"`
	History           []RoundRecord `json:"history"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Clone returns a deep copy of the game state, safe to hand outside the
// controller's lock.
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	c := *g
	if g.Question != nil {
		q := *g.Question
		q.Answers = make([]Answer, len(g.Question.Answers))
		copy(q.Answers, g.Question.Answers)
		c.Question = &q
	}
	c.Round = g.Round.Clone()
	c.RoundWinner = cloneTeamIndex(g.RoundWinner)
	c.StealOriginalTeam = cloneTeamIndex(g.StealOriginalTeam)
	c.History = make([]RoundRecord, len(g.History))
	copy(c.History, g.History)
	for i := range c.History {
		c.History[i].Winner = cloneTeamIndex(g.History[i].Winner)
		rev := make([]bool, len(g.History[i].Revealed))
		copy(rev, g.History[i].Revealed)
		c.History[i].Revealed = rev
	}
	return &c
}

func cloneTeamIndex(t *TeamIndex) *TeamIndex {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// DeckState is the persistable position of a question deck: a permutation
// over the pool's indices and a cursor into it.
type DeckState struct {
	Order  []int `json:"order"`
	Cursor int   `json:"cursor"`
}
