package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/faceoffgame/faceoff/internal/dependencies/clock"
	"github.com/faceoffgame/faceoff/internal/model"
)

// DefaultConfidence is assumed when the validator reports a match without
// a confidence value.
const DefaultConfidence = 0.85

// Request is the payload sent to the semantic validator service.
type Request struct {
	Question     string         `json:"question"`
	BoardAnswers []model.Answer `json:"boardAnswers"`
	PlayerAnswer string         `json:"playerAnswer"`
}

// Response is the validator's verdict. Every failure mode of the call
// (transport error, timeout, malformed body, cool-down skip) collapses to
// Matched=false; callers never see an error.
type Response struct {
	Matched       bool    `json:"matched"`
	MatchedAnswer string  `json:"matchedAnswer,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
	Points        int     `json:"points,omitempty"`

	// TimedOut distinguishes "the call did not complete in time" from "the
	// validator confidently rejected". It only affects messaging, never
	// scoring.
	TimedOut bool `json:"timedOut,omitempty"`

	// Skipped is set when the call was not attempted (no endpoint
	// configured, or the cool-down window is open).
	Skipped bool `json:"-"`
}

// Validator decides whether a free-text guess semantically matches one of a
// question's canonical answers.
type Validator interface {
	Validate(ctx context.Context, question model.Question, playerAnswer string) Response
}

// Config holds validator client settings.
type Config struct {
	// URL is the validator endpoint. Empty disables the client.
	URL string

	// Timeout bounds each call; expiry is reported as TimedOut.
	Timeout time.Duration

	// FailureThreshold is the consecutive-failure count that opens the
	// cool-down window.
	FailureThreshold int

	// CoolDown is how long calls are skipped after repeated failures, so an
	// unreachable validator doesn't add its timeout to every guess.
	CoolDown time.Duration
}

// DefaultConfig returns sensible defaults for the validator client.
func DefaultConfig() Config {
	return Config{
		Timeout:          6 * time.Second,
		FailureThreshold: 3,
		CoolDown:         time.Minute,
	}
}

// Client calls the semantic validator over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger

	mu            sync.Mutex
	failureStreak int
	coolDownUntil time.Time
}

// Ensure Client implements Validator
var _ Validator = (*Client)(nil)

// NewClient creates a validator client. A Config with an empty URL yields a
// client whose Validate always reports no match.
func NewClient(cfg Config, clk clock.Clock, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = DefaultConfig().FailureThreshold
	}
	if cfg.CoolDown <= 0 {
		cfg.CoolDown = DefaultConfig().CoolDown
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		clock:      clk,
		logger:     logger,
	}
}

// Validate asks the remote service whether playerAnswer matches one of the
// question's board answers. The call is bounded by the configured timeout.
func (c *Client) Validate(ctx context.Context, question model.Question, playerAnswer string) Response {
	if c.cfg.URL == "" {
		return Response{Skipped: true}
	}
	if c.inCoolDown() {
		c.logger.Debug("validator call skipped during cool-down")
		return Response{Skipped: true}
	}

	body, err := json.Marshal(Request{
		Question:     question.Prompt,
		BoardAnswers: question.Answers,
		PlayerAnswer: playerAnswer,
	})
	if err != nil {
		return Response{}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return c.failure("request build failed", err, false)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded)
		return c.failure("validator call failed", err, timedOut)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.failure("validator returned non-200", errors.New(resp.Status), false)
	}

	// Confidence decodes through a pointer so an omitted field and an
	// explicit zero stay distinguishable. Only an omitted confidence on a
	// match is promoted to the default; an explicit zero survives for the
	// caller's floor to reject.
	var wire struct {
		Matched       bool     `json:"matched"`
		MatchedAnswer string   `json:"matchedAnswer"`
		Confidence    *float64 `json:"confidence"`
		Points        int      `json:"points"`
		TimedOut      bool     `json:"timedOut"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&wire); err != nil {
		return c.failure("validator response malformed", err, false)
	}

	c.success()

	result := Response{
		Matched:       wire.Matched,
		MatchedAnswer: wire.MatchedAnswer,
		Points:        wire.Points,
		TimedOut:      wire.TimedOut,
	}
	switch {
	case wire.Confidence != nil:
		result.Confidence = *wire.Confidence
	case wire.Matched:
		result.Confidence = DefaultConfidence
	}
	return result
}

func (c *Client) inCoolDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock.Now().Before(c.coolDownUntil)
}

func (c *Client) success() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failureStreak = 0
}

func (c *Client) failure(msg string, err error, timedOut bool) Response {
	c.mu.Lock()
	c.failureStreak++
	streak := c.failureStreak
	if streak >= c.cfg.FailureThreshold {
		c.coolDownUntil = c.clock.Now().Add(c.cfg.CoolDown)
	}
	c.mu.Unlock()

	c.logger.Warn(msg,
		slog.String("error", err.Error()),
		slog.Int("failure_streak", streak),
		slog.Bool("timed_out", timedOut),
	)
	return Response{TimedOut: timedOut}
}
