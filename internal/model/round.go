package model

import "time"

// MaxStrikes is the number of misses that transfers control to the steal.
const MaxStrikes = 3

// RoundState is the mutable per-question state: strikes recorded so far,
// which board answers have been revealed, and the accumulated pot.
// It is created fresh when a question is set and replaced when the next
// question is set.
type RoundState struct {
	Strikes  int    `json:"strikes"`
	Revealed []bool `json:"revealed"`
	Pot      int    `json:"pot"`
}

// NewRoundState creates round state for a board with the given answer count.
func NewRoundState(answerCount int) *RoundState {
	return &RoundState{
		Revealed: make([]bool, answerCount),
	}
}

// AllRevealed reports whether every answer on the board has been revealed.
func (r *RoundState) AllRevealed() bool {
	for _, rev := range r.Revealed {
		if !rev {
			return false
		}
	}
	return len(r.Revealed) > 0
}

// RevealedCount returns how many answers have been revealed.
func (r *RoundState) RevealedCount() int {
	n := 0
	for _, rev := range r.Revealed {
		if rev {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the round state.
func (r *RoundState) Clone() *RoundState {
	if r == nil {
		return nil
	}
	c := *r
	c.Revealed = make([]bool, len(r.Revealed))
	copy(c.Revealed, r.Revealed)
	return &c
}

// RoundRecord is the append-only audit record written when a round
// finalizes. Winner is nil when nobody banked points (e.g. a failed steal
// over an empty pot).
type RoundRecord struct {
	Question string     `json:"question"`
	Revealed []bool     `json:"revealed"`
	Strikes  int        `json:"strikes"`
	Winner   *TeamIndex `json:"winner"`
	Points   int        `json:"points"`
	PlayedAt time.Time  `json:"played_at"`
}

// MaxHistory bounds the round history window; oldest records are dropped
// when the cap is exceeded.
const MaxHistory = 50
