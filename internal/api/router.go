package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/faceoffgame/faceoff/internal/api/handler"
	apimiddleware "github.com/faceoffgame/faceoff/internal/api/middleware"
	"github.com/faceoffgame/faceoff/internal/middleware"
	"github.com/faceoffgame/faceoff/internal/services/game"
	"github.com/faceoffgame/faceoff/internal/services/pack"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	PackProvider   *pack.Provider
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController)
	packHandler := handler.NewPackHandler(cfg.PackProvider)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Game lifecycle
	api.HandleFunc("/game", gameHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game", gameHandler.Reset).Methods(http.MethodDelete)
	api.HandleFunc("/game/end", gameHandler.End).Methods(http.MethodPost)

	// Round play
	api.HandleFunc("/game/answers", gameHandler.SubmitAnswer).Methods(http.MethodPost)
	api.HandleFunc("/game/steal", gameHandler.SubmitSteal).Methods(http.MethodPost)
	api.HandleFunc("/game/advance", gameHandler.Advance).Methods(http.MethodPost)

	// Host overrides
	api.HandleFunc("/game/reveal", gameHandler.Reveal).Methods(http.MethodPost)
	api.HandleFunc("/game/strikes", gameHandler.Strike).Methods(http.MethodPost)

	// History
	api.HandleFunc("/game/history", gameHandler.GetHistory).Methods(http.MethodGet)
	api.HandleFunc("/game/history", gameHandler.ClearHistory).Methods(http.MethodDelete)

	// Question pack
	api.HandleFunc("/pack", packHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/pack", packHandler.Set).Methods(http.MethodPut)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
