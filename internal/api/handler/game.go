package handler

import (
	"encoding/json"
	"net/http"

	"github.com/faceoffgame/faceoff/internal/api/request"
	"github.com/faceoffgame/faceoff/internal/api/response"
	"github.com/faceoffgame/faceoff/internal/model"
	"github.com/faceoffgame/faceoff/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	controller *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller) *GameHandler {
	return &GameHandler{controller: controller}
}

// Start handles POST /api/v1/game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.controller.StartGame(r.Context(), req.TeamA, req.TeamB); err != nil {
		WriteError(w, err)
		return
	}

	h.writeState(w, http.StatusCreated)
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	st := h.controller.State()
	if st.Phase == model.PhaseSetup {
		WriteError(w, model.ErrNoGameInProgress)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(st, h.controller.RoundEnded()))
}

// SubmitAnswer handles POST /api/v1/game/answers
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	res := h.controller.SubmitAnswer(r.Context(), req.Answer)
	response.JSON(w, http.StatusOK, response.SubmitResultFromGame(res))
}

// SubmitSteal handles POST /api/v1/game/steal
func (h *GameHandler) SubmitSteal(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	res := h.controller.SubmitSteal(r.Context(), req.Answer)
	response.JSON(w, http.StatusOK, response.SubmitResultFromGame(res))
}

// Reveal handles POST /api/v1/game/reveal
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var req request.RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.controller.RevealAnswerByIndex(r.Context(), req.Index); err != nil {
		WriteError(w, err)
		return
	}

	h.writeState(w, http.StatusOK)
}

// Strike handles POST /api/v1/game/strikes
func (h *GameHandler) Strike(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.RegisterStrike(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	h.writeState(w, http.StatusOK)
}

// Advance handles POST /api/v1/game/advance
func (h *GameHandler) Advance(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.EndRoundAdvance(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	h.writeState(w, http.StatusOK)
}

// End handles POST /api/v1/game/end
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.EndGame(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	h.writeState(w, http.StatusOK)
}

// GetHistory handles GET /api/v1/game/history
func (h *GameHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HistoryFromModel(h.controller.History()))
}

// ClearHistory handles DELETE /api/v1/game/history
func (h *GameHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.controller.ClearHistory(r.Context())
	response.NoContent(w)
}

// Reset handles DELETE /api/v1/game
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.controller.ResetPersistentState(r.Context())
	response.NoContent(w)
}

func (h *GameHandler) writeState(w http.ResponseWriter, status int) {
	st := h.controller.State()
	response.JSON(w, status, response.GameStateFromModel(st, h.controller.RoundEnded()))
}
