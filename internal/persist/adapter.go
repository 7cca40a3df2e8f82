package persist

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/faceoffgame/faceoff/internal/dependencies/clock"
	"github.com/faceoffgame/faceoff/internal/model"
	"github.com/faceoffgame/faceoff/internal/storage"
)

// SnapshotVersion is the current snapshot schema version. A persisted
// snapshot with any other version is discarded wholesale on load; within a
// version, individual fields are sanitized instead.
const SnapshotVersion = 2

// snapshotKey is the storage key the game snapshot lives under.
const snapshotKey = "faceoff:snapshot"

// opTimeout bounds every storage operation so a dead backend fails fast
// instead of hanging the caller.
const opTimeout = 2 * time.Second

// Snapshot is the durable form of a game: the sanitized state plus the
// deck's position.
type Snapshot struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Payload   `json:"payload"`
}

// Payload carries the snapshot's game data.
type Payload struct {
	State *model.GameState `json:"state"`
	Deck  model.DeckState  `json:"deck"`
}

// Adapter saves and loads game snapshots through a flat KV store. Its
// operations never return errors to callers: a failed save is logged and
// dropped, a failed or malformed load yields nil, as if no prior state
// existed. Persisted data may be stale across schema changes, so every
// loaded field is re-validated; that sanitization is part of the contract,
// not an optimization.
type Adapter struct {
	store  storage.Store
	clock  clock.Clock
	logger *slog.Logger
}

// NewAdapter creates a snapshot adapter over the given store.
func NewAdapter(store storage.Store, clk clock.Clock, logger *slog.Logger) *Adapter {
	return &Adapter{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Save writes the snapshot. Failures are logged and swallowed.
func (a *Adapter) Save(ctx context.Context, state *model.GameState, deck model.DeckState) {
	snap := Snapshot{
		Version:   SnapshotVersion,
		Timestamp: a.clock.Now(),
		Payload: Payload{
			State: state,
			Deck:  deck,
		},
	}

	data, err := json.Marshal(snap)
	if err != nil {
		a.logger.Warn("snapshot marshal failed", slog.String("error", err.Error()))
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := a.store.Set(opCtx, snapshotKey, string(data)); err != nil {
		a.logger.Warn("snapshot save failed", slog.String("error", err.Error()))
	}
}

// Load reads and sanitizes the persisted snapshot. It returns nil on any
// failure: missing key, storage error, malformed JSON, version mismatch, or
// a state that cannot be repaired field-by-field.
func (a *Adapter) Load(ctx context.Context) *Snapshot {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := a.store.Get(opCtx, snapshotKey)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			a.logger.Warn("snapshot load failed", slog.String("error", err.Error()))
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(data), &env); err != nil {
		a.logger.Warn("snapshot unmarshal failed", slog.String("error", err.Error()))
		return nil
	}

	if env.Version != SnapshotVersion {
		a.logger.Info("snapshot version mismatch, discarding",
			slog.Int("found", env.Version),
			slog.Int("want", SnapshotVersion),
		)
		return nil
	}

	state := sanitizeState(env.Payload.State)
	if state == nil {
		return nil
	}

	return &Snapshot{
		Version:   env.Version,
		Timestamp: env.Timestamp,
		Payload: Payload{
			State: state,
			Deck:  sanitizeDeck(env.Payload.Deck),
		},
	}
}

// Clear removes the persisted snapshot. Failures are logged and swallowed.
func (a *Adapter) Clear(ctx context.Context) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := a.store.Delete(opCtx, snapshotKey); err != nil {
		a.logger.Warn("snapshot clear failed", slog.String("error", err.Error()))
	}
}

// envelope mirrors Snapshot but defers payload decoding so each
// sub-structure can be validated (or dropped) independently.
type envelope struct {
	Version   int        `json:"version"`
	Timestamp time.Time  `json:"timestamp"`
	Payload   rawPayload `json:"payload"`
}

type rawPayload struct {
	State json.RawMessage `json:"state"`
	Deck  json.RawMessage `json:"deck"`
}
