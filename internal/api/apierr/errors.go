package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/faceoffgame/faceoff/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeTeamNameRequired   = "TEAM_NAME_REQUIRED"
	CodeNoGameInProgress   = "NO_GAME_IN_PROGRESS"
	CodeNoQuestion         = "NO_QUESTION"
	CodeWrongPhase         = "WRONG_PHASE"
	CodeGameOver           = "GAME_OVER"
	CodeInvalidAnswerIndex = "INVALID_ANSWER_INDEX"
	CodeEmptyPack          = "EMPTY_PACK"
	CodeInvalidQuestion    = "INVALID_QUESTION"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrTeamNameRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeTeamNameRequired, "Both team names are required"}}
	case errors.Is(err, model.ErrNoGameInProgress):
		return &httpError{http.StatusNotFound, APIError{CodeNoGameInProgress, "No game in progress"}}
	case errors.Is(err, model.ErrNoQuestion):
		return &httpError{http.StatusConflict, APIError{CodeNoQuestion, "No question on the board"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Action not valid in the current phase"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "The game is over"}}
	case errors.Is(err, model.ErrInvalidAnswerIndex):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidAnswerIndex, "Answer index out of range"}}
	case errors.Is(err, model.ErrEmptyPack):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyPack, "Question pack has no questions"}}
	case errors.Is(err, model.ErrInvalidQuestion):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidQuestion, "Question is malformed"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
