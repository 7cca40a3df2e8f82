package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faceoffgame/faceoff/internal/dependencies/mocks"
	"github.com/faceoffgame/faceoff/internal/model"
)

func testPool() []model.Question {
	return []model.Question{
		{Prompt: "q0", Answers: []model.Answer{{Text: "a", Points: 50}}},
		{Prompt: "q1", Answers: []model.Answer{{Text: "b", Points: 50}}},
		{Prompt: "q2", Answers: []model.Answer{{Text: "c", Points: 50}}},
	}
}

func TestDrawYieldsEachQuestionOncePerPass(t *testing.T) {
	d := New(testPool(), mocks.NewMockRandom())

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		q := d.Draw()
		require.NotNil(t, q)
		assert.False(t, seen[q.Prompt], "question %s repeated within a pass", q.Prompt)
		seen[q.Prompt] = true
	}
	assert.Len(t, seen, 3)
}

func TestDrawReshufflesAfterExhaustion(t *testing.T) {
	d := New(testPool(), mocks.NewMockRandom())

	for i := 0; i < 3; i++ {
		require.NotNil(t, d.Draw())
	}
	assert.Equal(t, 0, d.Remaining())

	// Fourth draw starts a new pass
	q := d.Draw()
	require.NotNil(t, q)
	assert.Contains(t, []string{"q0", "q1", "q2"}, q.Prompt)
	assert.Equal(t, 2, d.Remaining())
}

func TestDrawOnEmptyPoolReturnsNil(t *testing.T) {
	d := New(nil, mocks.NewMockRandom())
	assert.Nil(t, d.Draw())
	assert.Nil(t, d.Peek())
}

func TestPeekDoesNotAdvance(t *testing.T) {
	d := New(testPool(), mocks.NewMockRandom())

	p1 := d.Peek()
	p2 := d.Peek()
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	assert.Equal(t, p1.Prompt, p2.Prompt)

	drawn := d.Draw()
	require.NotNil(t, drawn)
	assert.Equal(t, p1.Prompt, drawn.Prompt)
}

func TestPeekReturnsNilAtEndOfPass(t *testing.T) {
	d := New(testPool(), mocks.NewMockRandom())

	for i := 0; i < 3; i++ {
		require.NotNil(t, d.Draw())
	}

	// Peek never reshuffles, so the exhausted pass peeks nil even though
	// a draw would succeed.
	assert.Nil(t, d.Peek())
	assert.NotNil(t, d.Draw())
}

func TestResetRewindsTheDeck(t *testing.T) {
	d := New(testPool(), mocks.NewMockRandom())

	require.NotNil(t, d.Draw())
	require.NotNil(t, d.Draw())
	d.Reset()
	assert.Equal(t, 3, d.Remaining())
}

func TestShuffleUsesInjectedRandom(t *testing.T) {
	rnd := mocks.NewMockRandom()
	// Fisher-Yates over 3 elements asks for Intn(3) then Intn(2)
	rnd.QueueIntn(0, 0)
	d := New(testPool(), rnd)

	// [0 1 2] -> swap(2,0) -> [2 1 0] -> swap(1,0) -> [1 2 0]
	assert.Equal(t, "q1", d.Draw().Prompt)
	assert.Equal(t, "q2", d.Draw().Prompt)
	assert.Equal(t, "q0", d.Draw().Prompt)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	d := New(testPool(), mocks.NewMockRandom())
	require.NotNil(t, d.Draw())

	state := d.Snapshot()
	assert.Equal(t, 1, state.Cursor)

	d2 := New(testPool(), mocks.NewMockRandom())
	require.True(t, d2.Restore(state))
	assert.Equal(t, d.Remaining(), d2.Remaining())
	assert.Equal(t, d.Peek().Prompt, d2.Peek().Prompt)
}

func TestRestoreRejectsMalformedState(t *testing.T) {
	tests := []struct {
		name  string
		state model.DeckState
	}{
		{"wrong length", model.DeckState{Order: []int{0, 1}, Cursor: 0}},
		{"duplicate index", model.DeckState{Order: []int{0, 0, 2}, Cursor: 0}},
		{"index out of range", model.DeckState{Order: []int{0, 1, 5}, Cursor: 0}},
		{"cursor out of range", model.DeckState{Order: []int{0, 1, 2}, Cursor: 4}},
		{"negative cursor", model.DeckState{Order: []int{0, 1, 2}, Cursor: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(testPool(), mocks.NewMockRandom())
			assert.False(t, d.Restore(tt.state))
			// Falls back to a playable full pass
			assert.Equal(t, 3, d.Remaining())
		})
	}
}
