package response

import (
	"time"

	"github.com/faceoffgame/faceoff/internal/model"
	"github.com/faceoffgame/faceoff/internal/services/game"
	"github.com/faceoffgame/faceoff/internal/services/pack"
)

// Team represents a team in API responses
type Team struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Score int    `json:"score"`
}

// TeamFromModel converts a model.Team to a response Team
func TeamFromModel(t model.Team) Team {
	return Team{
		Name:  t.Name,
		Color: t.Color,
		Score: t.Score,
	}
}

// BoardAnswer is one answer slot on the board. The text and points of an
// unrevealed answer are withheld so the client cannot peek.
type BoardAnswer struct {
	Revealed bool   `json:"revealed"`
	Text     string `json:"text,omitempty"`
	Points   int    `json:"points,omitempty"`
}

// Board represents the current question as the players may see it
type Board struct {
	Question string        `json:"question"`
	Answers  []BoardAnswer `json:"answers"`
	Strikes  int           `json:"strikes"`
	Pot      int           `json:"pot"`
}

// BoardFromModel builds the board view, hiding unrevealed answers
func BoardFromModel(q *model.Question, round *model.RoundState) *Board {
	if q == nil || round == nil {
		return nil
	}
	answers := make([]BoardAnswer, len(q.Answers))
	for i, a := range q.Answers {
		if i < len(round.Revealed) && round.Revealed[i] {
			answers[i] = BoardAnswer{Revealed: true, Text: a.Text, Points: a.Points}
		}
	}
	return &Board{
		Question: q.Prompt,
		Answers:  answers,
		Strikes:  round.Strikes,
		Pot:      round.Pot,
	}
}

// GameState represents the current game state
type GameState struct {
	ID          string  `json:"id"`
	Phase       string  `json:"phase"`
	Teams       [2]Team `json:"teams"`
	ActiveTeam  int     `json:"active_team"`
	Board       *Board  `json:"board"`
	RoundWinner *int    `json:"round_winner,omitempty"`
	RoundEnded  bool    `json:"round_ended"`
}

// GameStateFromModel converts model.GameState to a response GameState
func GameStateFromModel(st *model.GameState, roundEnded bool) GameState {
	var winner *int
	if st.RoundWinner != nil {
		w := int(*st.RoundWinner)
		winner = &w
	}
	return GameState{
		ID:          string(st.ID),
		Phase:       string(st.Phase),
		Teams:       [2]Team{TeamFromModel(st.Teams[0]), TeamFromModel(st.Teams[1])},
		ActiveTeam:  int(st.ActiveTeam),
		Board:       BoardFromModel(st.Question, st.Round),
		RoundWinner: winner,
		RoundEnded:  roundEnded,
	}
}

// SubmitResult is the response after a guess or steal resolves
type SubmitResult struct {
	Matched     bool    `json:"matched"`
	AnswerIndex int     `json:"answer_index"`
	Answer      string  `json:"answer,omitempty"`
	Points      int     `json:"points,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	TimedOut    bool    `json:"timed_out,omitempty"`
	Strikes     int     `json:"strikes"`
	Phase       string  `json:"phase"`
	RoundEnded  bool    `json:"round_ended"`
}

// SubmitResultFromGame converts a game.Result
func SubmitResultFromGame(res game.Result) SubmitResult {
	out := SubmitResult{
		Matched:     res.Matched,
		AnswerIndex: res.AnswerIndex,
		Confidence:  res.Confidence,
		TimedOut:    res.TimedOut,
		Strikes:     res.Strikes,
		Phase:       string(res.Phase),
		RoundEnded:  res.RoundEnded,
	}
	if res.Answer != nil {
		out.Answer = res.Answer.Text
		out.Points = res.Answer.Points
	}
	return out
}

// RoundRecord represents a completed round in the history
type RoundRecord struct {
	Question string    `json:"question"`
	Revealed []bool    `json:"revealed"`
	Strikes  int       `json:"strikes"`
	Winner   *int      `json:"winner"`
	Points   int       `json:"points"`
	PlayedAt time.Time `json:"played_at"`
}

// HistoryFromModel converts the round history
func HistoryFromModel(records []model.RoundRecord) []RoundRecord {
	out := make([]RoundRecord, len(records))
	for i, rec := range records {
		var winner *int
		if rec.Winner != nil {
			w := int(*rec.Winner)
			winner = &w
		}
		out[i] = RoundRecord{
			Question: rec.Question,
			Revealed: rec.Revealed,
			Strikes:  rec.Strikes,
			Winner:   winner,
			Points:   rec.Points,
			PlayedAt: rec.PlayedAt,
		}
	}
	return out
}

// Pack represents the active question pack
type Pack struct {
	Name      string `json:"name"`
	Questions int    `json:"questions"`
}

// PackFromModel summarizes a pack without exposing its answers
func PackFromModel(p pack.Pack) Pack {
	return Pack{
		Name:      p.Name,
		Questions: len(p.Questions),
	}
}
