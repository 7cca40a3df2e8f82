package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/faceoffgame/faceoff/internal/dependencies/clock"
	"github.com/faceoffgame/faceoff/internal/dependencies/random"
	"github.com/faceoffgame/faceoff/internal/persist"
	"github.com/faceoffgame/faceoff/internal/services/deck"
	"github.com/faceoffgame/faceoff/internal/services/game"
	"github.com/faceoffgame/faceoff/internal/services/pack"
	"github.com/faceoffgame/faceoff/internal/services/validator"
	"github.com/faceoffgame/faceoff/internal/storage"
	"github.com/faceoffgame/faceoff/internal/storage/memory"
	redisstorage "github.com/faceoffgame/faceoff/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	PackProvider   *pack.Provider
	Validator      validator.Validator
	Deck           *deck.Deck
	Persister      *persist.Adapter
	GameController *game.Controller

	stopPackWatch func()
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ValidatorConfig configures the external answer validator (optional)
	// A zero value disables external validation
	ValidatorConfig validator.Config
	// ConfidenceFloor rejects validator matches below this confidence (optional)
	ConfidenceFloor float64
	// PackPath is a question pack file to load at startup (optional)
	// When empty, a pack persisted in storage or the built-in pack is used
	PackPath string
}

// New creates a new application with all dependencies wired. Any previously
// persisted game state and question pack are restored from storage.
func New(ctx context.Context, cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	packProvider := pack.New(store, logger)
	if cfg.PackPath != "" {
		if err := packProvider.LoadFromFile(ctx, cfg.PackPath); err != nil {
			return nil, err
		}
	} else {
		packProvider.LoadFromStorage(ctx)
	}

	validatorClient := validator.NewClient(cfg.ValidatorConfig, clk, logger)
	persister := persist.NewAdapter(store, clk, logger)
	gameDeck := deck.New(packProvider.Active().Questions, rnd)

	gameController := game.NewController(gameDeck, validatorClient, persister, clk, logger, game.Options{
		ConfidenceFloor: cfg.ConfidenceFloor,
	})
	gameController.Restore(persister.Load(ctx))

	app := &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		PackProvider:   packProvider,
		Validator:      validatorClient,
		Deck:           gameDeck,
		Persister:      persister,
		GameController: gameController,
	}
	app.watchPackChanges(logger)

	return app, nil
}

// watchPackChanges feeds pack replacements into the game controller so the
// next round draws from the new questions.
func (a *App) watchPackChanges(logger *slog.Logger) {
	events := a.PackProvider.Subscribe()
	done := make(chan struct{})
	a.stopPackWatch = func() {
		a.PackProvider.Unsubscribe(events)
		<-done
	}

	go func() {
		defer close(done)
		for ev := range events {
			logger.Info("question pack replaced",
				slog.String("pack", ev.Pack.Name),
				slog.Int("questions", len(ev.Pack.Questions)),
			)
			a.GameController.ReplaceQuestions(context.Background(), ev.Pack.Questions)
		}
	}()
}

// Close releases the app's resources
func (a *App) Close() error {
	if a.stopPackWatch != nil {
		a.stopPackWatch()
	}
	if a.GameController != nil {
		a.GameController.Close()
	}
	return a.Storage.Close()
}
