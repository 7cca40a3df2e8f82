package validator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faceoffgame/faceoff/internal/dependencies/mocks"
	"github.com/faceoffgame/faceoff/internal/model"
	"github.com/faceoffgame/faceoff/internal/testutil"
)

func testQuestion() model.Question {
	return model.Question{
		Prompt: "Name something people do to relax",
		Answers: []model.Answer{
			{Text: "Watch TV", Points: 40},
			{Text: "Read", Points: 30},
		},
	}
}

func newTestClient(url string, clk *mocks.MockClock) *Client {
	cfg := DefaultConfig()
	cfg.URL = url
	cfg.Timeout = time.Second
	return NewClient(cfg, clk, testutil.NopLogger())
}

func TestValidateSendsRequestAndParsesMatch(t *testing.T) {
	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Response{
			Matched:       true,
			MatchedAnswer: "Watch TV",
			Confidence:    0.92,
			Points:        40,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL, mocks.NewMockClock(time.Now()))
	resp := client.Validate(context.Background(), testQuestion(), "watching television")

	assert.True(t, resp.Matched)
	assert.Equal(t, "Watch TV", resp.MatchedAnswer)
	assert.Equal(t, 0.92, resp.Confidence)
	assert.False(t, resp.TimedOut)

	assert.Equal(t, "Name something people do to relax", got.Question)
	assert.Len(t, got.BoardAnswers, 2)
	assert.Equal(t, "watching television", got.PlayerAnswer)
}

func TestValidateDefaultsMissingConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matched":true,"matchedAnswer":"Read"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, mocks.NewMockClock(time.Now()))
	resp := client.Validate(context.Background(), testQuestion(), "reading")

	assert.True(t, resp.Matched)
	assert.Equal(t, DefaultConfidence, resp.Confidence)
}

func TestValidateKeepsExplicitZeroConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matched":true,"matchedAnswer":"Read","confidence":0}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, mocks.NewMockClock(time.Now()))
	resp := client.Validate(context.Background(), testQuestion(), "reading")

	// An explicit zero is not promoted to the default; the caller's
	// confidence floor rejects it.
	assert.True(t, resp.Matched)
	assert.Equal(t, 0.0, resp.Confidence)
}

func TestValidateWithoutURLSkips(t *testing.T) {
	client := newTestClient("", mocks.NewMockClock(time.Now()))
	resp := client.Validate(context.Background(), testQuestion(), "anything")

	assert.False(t, resp.Matched)
	assert.True(t, resp.Skipped)
}

func TestValidateTreatsServerErrorAsNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, mocks.NewMockClock(time.Now()))
	resp := client.Validate(context.Background(), testQuestion(), "anything")

	assert.False(t, resp.Matched)
	assert.False(t, resp.TimedOut)
}

func TestValidateTreatsMalformedBodyAsNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, mocks.NewMockClock(time.Now()))
	resp := client.Validate(context.Background(), testQuestion(), "anything")

	assert.False(t, resp.Matched)
}

func TestValidateFlagsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The server only watches for client disconnects once the request
		// body is consumed; drain it so the context cancellation below can
		// ever fire and Close doesn't hang.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.URL = server.URL
	cfg.Timeout = 50 * time.Millisecond
	client := NewClient(cfg, mocks.NewMockClock(time.Now()), testutil.NopLogger())

	resp := client.Validate(context.Background(), testQuestion(), "anything")

	assert.False(t, resp.Matched)
	assert.True(t, resp.TimedOut)
}

func TestRepeatedFailuresOpenCoolDown(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	clk := mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.URL = server.URL
	cfg.Timeout = time.Second
	cfg.FailureThreshold = 3
	cfg.CoolDown = time.Minute
	client := NewClient(cfg, clk, testutil.NopLogger())

	q := testQuestion()
	for i := 0; i < 3; i++ {
		client.Validate(context.Background(), q, "guess")
	}
	assert.Equal(t, 3, calls)

	// Cool-down open: calls are skipped entirely
	resp := client.Validate(context.Background(), q, "guess")
	assert.True(t, resp.Skipped)
	assert.Equal(t, 3, calls)

	// After the window passes, calls resume
	clk.Advance(2 * time.Minute)
	resp = client.Validate(context.Background(), q, "guess")
	assert.False(t, resp.Skipped)
	assert.Equal(t, 4, calls)
}

func TestSuccessResetsFailureStreak(t *testing.T) {
	failing := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"matched":false}`))
	}))
	defer server.Close()

	clk := mocks.NewMockClock(time.Now())
	cfg := DefaultConfig()
	cfg.URL = server.URL
	cfg.Timeout = time.Second
	cfg.FailureThreshold = 3
	client := NewClient(cfg, clk, testutil.NopLogger())

	q := testQuestion()
	client.Validate(context.Background(), q, "guess")
	client.Validate(context.Background(), q, "guess")

	failing = false
	client.Validate(context.Background(), q, "guess")

	// Two more failures should not trip the threshold after the reset
	failing = true
	client.Validate(context.Background(), q, "guess")
	resp := client.Validate(context.Background(), q, "guess")
	assert.False(t, resp.Skipped)
}