package handler

import (
	"encoding/json"
	"net/http"

	"github.com/faceoffgame/faceoff/internal/api/request"
	"github.com/faceoffgame/faceoff/internal/api/response"
	"github.com/faceoffgame/faceoff/internal/model"
	"github.com/faceoffgame/faceoff/internal/services/pack"
)

// PackHandler handles question pack endpoints
type PackHandler struct {
	provider *pack.Provider
}

// NewPackHandler creates a new pack handler
func NewPackHandler(provider *pack.Provider) *PackHandler {
	return &PackHandler{provider: provider}
}

// Get handles GET /api/v1/pack
func (h *PackHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.PackFromModel(h.provider.Active()))
}

// Set handles PUT /api/v1/pack
func (h *PackHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req request.SetPackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		answers := make([]model.Answer, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = model.Answer{Text: a.Text, Points: a.Points}
		}
		questions[i] = model.Question{Prompt: q.Question, Answers: answers}
	}

	p := pack.Pack{Name: req.Name, Questions: questions}
	if err := h.provider.SetActive(r.Context(), p); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PackFromModel(h.provider.Active()))
}
