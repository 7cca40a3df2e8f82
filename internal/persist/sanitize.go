package persist

import (
	"encoding/json"
	"time"

	"github.com/faceoffgame/faceoff/internal/model"
)

// rawState mirrors model.GameState with deferred decoding of nested
// structures, so one malformed sub-structure drops without rejecting the
// whole state.
type rawState struct {
	ID                string            `json:"id"`
	Teams             []model.Team      `json:"teams"`
	ActiveTeam        int               `json:"active_team"`
	Phase             string            `json:"phase"`
	Question          json.RawMessage   `json:"question"`
	Round             json.RawMessage   `json:"round"`
	RoundWinner       *int              `json:"round_winner"`
	StealOriginalTeam *int              `json:"steal_original_team"`
	History           []json.RawMessage `json:"history"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// sanitizeState re-validates a persisted game state field by field. It
// returns nil when the state is beyond repair (no two usable teams), and a
// fully consistent state otherwise: clamped numeric ranges, reveal mask
// sized to the board, round and question both present or both absent, and
// the steal marker only while the phase allows it.
func sanitizeState(data json.RawMessage) *model.GameState {
	if len(data) == 0 {
		return nil
	}
	var raw rawState
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	if len(raw.Teams) < 2 || raw.Teams[0].Name == "" || raw.Teams[1].Name == "" {
		return nil
	}

	state := &model.GameState{
		ID:        model.GameID(raw.ID),
		Teams:     [2]model.Team{raw.Teams[0], raw.Teams[1]},
		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
	for i := range state.Teams {
		if state.Teams[i].Score < 0 {
			state.Teams[i].Score = 0
		}
	}

	state.ActiveTeam = sanitizeTeamIndexValue(raw.ActiveTeam)

	state.Phase = model.GamePhase(raw.Phase)
	if !model.ValidPhase(state.Phase) {
		state.Phase = model.PhasePlaying
	}

	state.Question = sanitizeQuestion(raw.Question)
	if state.Question != nil {
		state.Round = sanitizeRound(raw.Round, state.Question.AnswerCount())
	} else if state.Phase == model.PhaseSteal {
		// A steal without a board cannot resume; fall back to awaiting the
		// next question.
		state.Phase = model.PhasePlaying
	}

	state.RoundWinner = sanitizeTeamIndexPtr(raw.RoundWinner)

	if state.Phase == model.PhaseSteal {
		state.StealOriginalTeam = sanitizeTeamIndexPtr(raw.StealOriginalTeam)
		if state.StealOriginalTeam == nil {
			other := state.ActiveTeam.Other()
			state.StealOriginalTeam = &other
		}
	}

	state.History = sanitizeHistory(raw.History)
	return state
}

func sanitizeQuestion(data json.RawMessage) *model.Question {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	var q model.Question
	if err := json.Unmarshal(data, &q); err != nil {
		return nil
	}
	if q.Prompt == "" || len(q.Answers) == 0 {
		return nil
	}
	for i := range q.Answers {
		if q.Answers[i].Text == "" {
			return nil
		}
		if q.Answers[i].Points < 0 {
			q.Answers[i].Points = 0
		}
	}
	return &q
}

// sanitizeRound always returns a round sized to the board, repairing or
// replacing whatever was persisted. The question/round both-or-neither
// invariant is enforced by the caller.
func sanitizeRound(data json.RawMessage, answerCount int) *model.RoundState {
	round := model.NewRoundState(answerCount)
	if len(data) == 0 || string(data) == "null" {
		return round
	}
	var r model.RoundState
	if err := json.Unmarshal(data, &r); err != nil {
		return round
	}

	round.Strikes = clamp(r.Strikes, 0, model.MaxStrikes)
	if r.Pot > 0 {
		round.Pot = r.Pot
	}
	for i := 0; i < answerCount && i < len(r.Revealed); i++ {
		round.Revealed[i] = r.Revealed[i]
	}
	return round
}

func sanitizeHistory(entries []json.RawMessage) []model.RoundRecord {
	history := make([]model.RoundRecord, 0, len(entries))
	for _, data := range entries {
		var rec model.RoundRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		if rec.Question == "" {
			continue
		}
		rec.Strikes = clamp(rec.Strikes, 0, model.MaxStrikes)
		if rec.Points < 0 {
			rec.Points = 0
		}
		rec.Winner = sanitizeTeamIndexPtrTyped(rec.Winner)
		history = append(history, rec)
	}
	if len(history) > model.MaxHistory {
		history = history[len(history)-model.MaxHistory:]
	}
	return history
}

func sanitizeDeck(data json.RawMessage) model.DeckState {
	if len(data) == 0 {
		return model.DeckState{}
	}
	var d model.DeckState
	if err := json.Unmarshal(data, &d); err != nil {
		return model.DeckState{}
	}
	// Permutation validity depends on the live pool size; the deck's
	// Restore checks that and reshuffles on mismatch.
	return d
}

func sanitizeTeamIndexValue(v int) model.TeamIndex {
	t := model.TeamIndex(v)
	if !t.Valid() {
		return model.TeamA
	}
	return t
}

func sanitizeTeamIndexPtr(v *int) *model.TeamIndex {
	if v == nil {
		return nil
	}
	t := model.TeamIndex(*v)
	if !t.Valid() {
		return nil
	}
	return &t
}

func sanitizeTeamIndexPtrTyped(v *model.TeamIndex) *model.TeamIndex {
	if v == nil || !v.Valid() {
		return nil
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
