package persist

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/faceoffgame/faceoff/internal/dependencies/mocks"
	"github.com/faceoffgame/faceoff/internal/model"
	"github.com/faceoffgame/faceoff/internal/storage/memory"
	"github.com/faceoffgame/faceoff/internal/testutil"
)

type AdapterSuite struct {
	suite.Suite
	store   *memory.Storage
	clock   *mocks.MockClock
	adapter *Adapter
	ctx     context.Context
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterSuite))
}

func (s *AdapterSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.adapter = NewAdapter(s.store, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *AdapterSuite) sampleState() *model.GameState {
	winner := model.TeamB
	return &model.GameState{
		ID: "game-1",
		Teams: [2]model.Team{
			{Name: "Red", Color: "red", Score: 120},
			{Name: "Blue", Color: "blue", Score: 70},
		},
		ActiveTeam: model.TeamB,
		Phase:      model.PhasePlaying,
		Question: &model.Question{
			Prompt: "Name something you do before bed",
			Answers: []model.Answer{
				{Text: "Brush teeth", Points: 60},
				{Text: "Read", Points: 40},
			},
		},
		Round: &model.RoundState{
			Strikes:  1,
			Revealed: []bool{true, false},
			Pot:      60,
		},
		RoundWinner: &winner,
		History: []model.RoundRecord{
			{
				Question: "Earlier question",
				Revealed: []bool{true, true},
				Strikes:  2,
				Winner:   &winner,
				Points:   100,
				PlayedAt: s.clock.Now(),
			},
		},
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
}

func (s *AdapterSuite) TestRoundTrip() {
	state := s.sampleState()
	deck := model.DeckState{Order: []int{2, 0, 1}, Cursor: 1}

	s.adapter.Save(s.ctx, state, deck)

	snap := s.adapter.Load(s.ctx)
	s.Require().NotNil(snap)
	s.Equal(SnapshotVersion, snap.Version)
	s.Equal(s.clock.Now(), snap.Timestamp)
	s.Equal(state, snap.Payload.State)
	s.Equal(deck, snap.Payload.Deck)
}

func (s *AdapterSuite) TestLoadWithNoSnapshotReturnsNil() {
	s.Nil(s.adapter.Load(s.ctx))
}

func (s *AdapterSuite) TestLoadWithCorruptJSONReturnsNil() {
	s.Require().NoError(s.store.Set(s.ctx, "faceoff:snapshot", "{not json"))
	s.Nil(s.adapter.Load(s.ctx))
}

func (s *AdapterSuite) TestLoadWithVersionMismatchReturnsNil() {
	state := s.sampleState()
	s.adapter.Save(s.ctx, state, model.DeckState{})

	// Rewrite the envelope with an old version
	raw, err := s.store.Get(s.ctx, "faceoff:snapshot")
	s.Require().NoError(err)
	var env map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal([]byte(raw), &env))
	env["version"] = json.RawMessage("1")
	rewritten, err := json.Marshal(env)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Set(s.ctx, "faceoff:snapshot", string(rewritten)))

	s.Nil(s.adapter.Load(s.ctx))
}

func (s *AdapterSuite) TestClearRemovesSnapshot() {
	s.adapter.Save(s.ctx, s.sampleState(), model.DeckState{})
	s.Require().NotNil(s.adapter.Load(s.ctx))

	s.adapter.Clear(s.ctx)
	s.Nil(s.adapter.Load(s.ctx))
}

func (s *AdapterSuite) saveRaw(state string) {
	snapshot := `{"version":2,"timestamp":"2024-06-01T12:00:00Z","payload":{"state":` + state + `,"deck":{"order":[0],"cursor":0}}}`
	s.Require().NoError(s.store.Set(s.ctx, "faceoff:snapshot", snapshot))
}

func (s *AdapterSuite) TestLoadClampsOutOfRangeFields() {
	s.saveRaw(`{
		"teams": [{"name":"Red","score":-5},{"name":"Blue","score":40}],
		"active_team": 7,
		"phase": "playing",
		"question": {"question":"Q","answers":[{"text":"A","points":-10},{"text":"B","points":50}]},
		"round": {"strikes": 9, "revealed": [true], "pot": -3}
	}`)

	snap := s.adapter.Load(s.ctx)
	s.Require().NotNil(snap)
	state := snap.Payload.State

	s.Equal(0, state.Teams[0].Score)
	s.Equal(model.TeamA, state.ActiveTeam)
	s.Equal(0, state.Question.Answers[0].Points)
	s.Equal(model.MaxStrikes, state.Round.Strikes)
	s.Equal(0, state.Round.Pot)
	// Reveal mask resized to the board
	s.Equal([]bool{true, false}, state.Round.Revealed)
}

func (s *AdapterSuite) TestLoadWithoutTeamsReturnsNil() {
	s.saveRaw(`{"teams":[{"name":"OnlyOne"}],"phase":"playing"}`)
	s.Nil(s.adapter.Load(s.ctx))
}

func (s *AdapterSuite) TestLoadDropsMalformedQuestionAndRound() {
	s.saveRaw(`{
		"teams": [{"name":"Red"},{"name":"Blue"}],
		"phase": "playing",
		"question": {"question":"","answers":[]},
		"round": {"strikes":1,"revealed":[true],"pot":50}
	}`)

	snap := s.adapter.Load(s.ctx)
	s.Require().NotNil(snap)
	// Both dropped together: a round without a question is unusable
	s.Nil(snap.Payload.State.Question)
	s.Nil(snap.Payload.State.Round)
}

func (s *AdapterSuite) TestLoadRepairsMissingRound() {
	s.saveRaw(`{
		"teams": [{"name":"Red"},{"name":"Blue"}],
		"phase": "playing",
		"question": {"question":"Q","answers":[{"text":"A","points":100}]}
	}`)

	snap := s.adapter.Load(s.ctx)
	s.Require().NotNil(snap)
	s.Require().NotNil(snap.Payload.State.Round)
	s.Equal([]bool{false}, snap.Payload.State.Round.Revealed)
	s.Equal(0, snap.Payload.State.Round.Strikes)
}

func (s *AdapterSuite) TestLoadClearsStealMarkerOutsideStealPhase() {
	s.saveRaw(`{
		"teams": [{"name":"Red"},{"name":"Blue"}],
		"phase": "playing",
		"steal_original_team": 0,
		"question": {"question":"Q","answers":[{"text":"A","points":100}]}
	}`)

	snap := s.adapter.Load(s.ctx)
	s.Require().NotNil(snap)
	s.Nil(snap.Payload.State.StealOriginalTeam)
}

func (s *AdapterSuite) TestLoadDefaultsStealMarkerInStealPhase() {
	s.saveRaw(`{
		"teams": [{"name":"Red"},{"name":"Blue"}],
		"phase": "steal",
		"active_team": 1,
		"question": {"question":"Q","answers":[{"text":"A","points":100}]}
	}`)

	snap := s.adapter.Load(s.ctx)
	s.Require().NotNil(snap)
	s.Require().NotNil(snap.Payload.State.StealOriginalTeam)
	s.Equal(model.TeamA, *snap.Payload.State.StealOriginalTeam)
}

func (s *AdapterSuite) TestLoadDropsBadHistoryEntries() {
	s.saveRaw(`{
		"teams": [{"name":"Red"},{"name":"Blue"}],
		"phase": "playing",
		"history": [
			{"question":"Good one","strikes":2,"points":50},
			{"question":"","strikes":1,"points":10},
			{"question":"Bad winner","winner":5,"points":20}
		]
	}`)

	snap := s.adapter.Load(s.ctx)
	s.Require().NotNil(snap)
	s.Require().Len(snap.Payload.State.History, 2)
	s.Equal("Good one", snap.Payload.State.History[0].Question)
	s.Equal("Bad winner", snap.Payload.State.History[1].Question)
	s.Nil(snap.Payload.State.History[1].Winner)
}

func (s *AdapterSuite) TestLoadWithInvalidPhaseDefaultsToPlaying() {
	s.saveRaw(`{"teams":[{"name":"Red"},{"name":"Blue"}],"phase":"bogus"}`)

	snap := s.adapter.Load(s.ctx)
	s.Require().NotNil(snap)
	s.Equal(model.PhasePlaying, snap.Payload.State.Phase)
}
