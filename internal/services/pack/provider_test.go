package pack

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faceoffgame/faceoff/internal/model"
	"github.com/faceoffgame/faceoff/internal/storage/memory"
	"github.com/faceoffgame/faceoff/internal/testutil"
)

func newProvider() (*Provider, *memory.Storage) {
	store := memory.New()
	return New(store, testutil.NopLogger()), store
}

func validPack() Pack {
	return Pack{
		Name: "Test Pack",
		Questions: []model.Question{
			{Prompt: "Q1", Answers: []model.Answer{{Text: "A", Points: 60}, {Text: "B", Points: 40}}},
			{Prompt: "Q2", Answers: []model.Answer{{Text: "C", Points: 100}}},
		},
	}
}

func TestNewStartsWithDefaultPack(t *testing.T) {
	p, _ := newProvider()
	active := p.Active()
	assert.Equal(t, "Starter Pack", active.Name)
	assert.NotEmpty(t, active.Questions)
}

func TestSetActiveReplacesAndPersists(t *testing.T) {
	p, store := newProvider()
	ctx := context.Background()

	require.NoError(t, p.SetActive(ctx, validPack()))
	assert.Equal(t, "Test Pack", p.Active().Name)

	stored, err := store.Get(ctx, "faceoff:pack")
	require.NoError(t, err)
	var persisted Pack
	require.NoError(t, json.Unmarshal([]byte(stored), &persisted))
	assert.Equal(t, "Test Pack", persisted.Name)
}

func TestSetActiveRejectsInvalidPacks(t *testing.T) {
	p, _ := newProvider()
	ctx := context.Background()

	err := p.SetActive(ctx, Pack{Name: "Empty"})
	assert.ErrorIs(t, err, model.ErrEmptyPack)

	err = p.SetActive(ctx, Pack{
		Name:      "No answers",
		Questions: []model.Question{{Prompt: "Q"}},
	})
	assert.ErrorIs(t, err, model.ErrInvalidQuestion)

	err = p.SetActive(ctx, Pack{
		Name:      "Blank answer",
		Questions: []model.Question{{Prompt: "Q", Answers: []model.Answer{{Text: ""}}}},
	})
	assert.ErrorIs(t, err, model.ErrInvalidQuestion)

	// Active pack untouched after rejected updates
	assert.Equal(t, "Starter Pack", p.Active().Name)
}

func TestSubscribeReceivesChangeEvents(t *testing.T) {
	p, _ := newProvider()
	ch := p.Subscribe()
	defer p.Unsubscribe(ch)

	require.NoError(t, p.SetActive(context.Background(), validPack()))

	select {
	case ev := <-ch:
		assert.Equal(t, "Test Pack", ev.Pack.Name)
		assert.Len(t, ev.Pack.Questions, 2)
	default:
		t.Fatal("expected a pack event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	p, _ := newProvider()
	ch := p.Subscribe()
	p.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Double unsubscribe is a no-op
	p.Unsubscribe(ch)
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	p, _ := newProvider()
	ch := p.Subscribe()
	defer p.Unsubscribe(ch)

	// Overflow the buffer; SetActive must not block
	for i := 0; i < subscriberBuffer+3; i++ {
		require.NoError(t, p.SetActive(context.Background(), validPack()))
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestLoadFromFile(t *testing.T) {
	p, _ := newProvider()

	path := filepath.Join(t.TempDir(), "pack.json")
	data, err := json.Marshal(validPack())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	require.NoError(t, p.LoadFromFile(context.Background(), path))
	assert.Equal(t, "Test Pack", p.Active().Name)
}

func TestLoadFromFileMissing(t *testing.T) {
	p, _ := newProvider()
	err := p.LoadFromFile(context.Background(), "/does/not/exist.json")
	assert.Error(t, err)
	assert.Equal(t, "Starter Pack", p.Active().Name)
}

func TestLoadFromStorageRestoresPersistedPack(t *testing.T) {
	p, store := newProvider()
	ctx := context.Background()
	require.NoError(t, p.SetActive(ctx, validPack()))

	// A fresh provider over the same store picks the pack back up
	p2 := New(store, testutil.NopLogger())
	assert.Equal(t, "Starter Pack", p2.Active().Name)
	p2.LoadFromStorage(ctx)
	assert.Equal(t, "Test Pack", p2.Active().Name)
}

func TestLoadFromStorageIgnoresGarbage(t *testing.T) {
	p, store := newProvider()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "faceoff:pack", "{broken"))

	p.LoadFromStorage(ctx)
	assert.Equal(t, "Starter Pack", p.Active().Name)
}
