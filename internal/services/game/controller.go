package game

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/faceoffgame/faceoff/internal/dependencies/clock"
	"github.com/faceoffgame/faceoff/internal/model"
	"github.com/faceoffgame/faceoff/internal/persist"
	"github.com/faceoffgame/faceoff/internal/services/deck"
	"github.com/faceoffgame/faceoff/internal/services/matching"
	"github.com/faceoffgame/faceoff/internal/services/validator"
)

// DefaultConfidenceFloor is the minimum validator confidence accepted when
// no floor is configured. The floor is enforced here regardless of any
// threshold the validator applies internally.
const DefaultConfidenceFloor = 0.5

// Default team display colors.
var teamColors = [2]string{"blue", "orange"}

// Options tunes controller behavior.
type Options struct {
	// ConfidenceFloor rejects validator matches below this confidence.
	ConfidenceFloor float64
}

// Controller is the authoritative game state machine. All transitions are
// serialized behind one mutex; the only operation that leaves the lock is
// the validator call, during which a second concurrent submission is
// rejected rather than queued.
type Controller struct {
	deck      *deck.Deck
	validator validator.Validator
	persister *persist.Adapter
	clock     clock.Clock
	logger    *slog.Logger

	confidenceFloor float64

	mu         sync.Mutex
	state      *model.GameState
	submitting bool
	roundGen   uint64

	// Snapshot writes run on a background writer so transitions never wait
	// on storage. Only the newest queued snapshot is kept.
	saveMu   sync.Mutex
	saveCond *sync.Cond
	pending  *pendingSave
	saving   bool
	closed   bool
	saveDone chan struct{}
}

type pendingSave struct {
	state *model.GameState
	deck  model.DeckState
}

// NewController creates a game controller in the setup phase.
func NewController(
	d *deck.Deck,
	v validator.Validator,
	persister *persist.Adapter,
	clk clock.Clock,
	logger *slog.Logger,
	opts Options,
) *Controller {
	floor := opts.ConfidenceFloor
	if floor <= 0 {
		floor = DefaultConfidenceFloor
	}
	c := &Controller{
		deck:            d,
		validator:       v,
		persister:       persister,
		clock:           clk,
		logger:          logger,
		confidenceFloor: floor,
		state:           &model.GameState{Phase: model.PhaseSetup},
		saveDone:        make(chan struct{}),
	}
	c.saveCond = sync.NewCond(&c.saveMu)
	go c.saveLoop()
	return c
}

// Close drains any queued snapshot write and stops the background writer.
func (c *Controller) Close() {
	c.saveMu.Lock()
	c.closed = true
	c.saveCond.Broadcast()
	c.saveMu.Unlock()
	<-c.saveDone
}

// Flush blocks until every queued snapshot write has reached storage.
func (c *Controller) Flush() {
	c.saveMu.Lock()
	for c.pending != nil || c.saving {
		c.saveCond.Wait()
	}
	c.saveMu.Unlock()
}

func (c *Controller) saveLoop() {
	defer close(c.saveDone)
	c.saveMu.Lock()
	for {
		for c.pending == nil && !c.closed {
			c.saveCond.Wait()
		}
		if c.pending == nil {
			c.saveMu.Unlock()
			return
		}
		p := c.pending
		c.pending = nil
		c.saving = true
		c.saveMu.Unlock()

		c.persister.Save(context.Background(), p.state, p.deck)

		c.saveMu.Lock()
		c.saving = false
		c.saveCond.Broadcast()
	}
}

// Restore installs a previously persisted snapshot. A deck position that no
// longer fits the current pool is discarded for a fresh shuffle.
func (c *Controller) Restore(snap *persist.Snapshot) {
	if snap == nil || snap.Payload.State == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = snap.Payload.State.Clone()
	c.roundGen++
	if !c.deck.Restore(snap.Payload.Deck) {
		c.logger.Warn("persisted deck position invalid, reshuffling")
	}
	c.logger.Info("game restored",
		slog.String("game_id", string(c.state.ID)),
		slog.String("phase", string(c.state.Phase)),
	)
}

// StartGame begins a new game with the given team names: scores reset,
// team A active, empty history, fresh deck order and the first question
// drawn.
func (c *Controller) StartGame(ctx context.Context, teamA, teamB string) error {
	teamA = strings.TrimSpace(teamA)
	teamB = strings.TrimSpace(teamB)
	if teamA == "" || teamB == "" {
		return model.ErrTeamNameRequired
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.state = &model.GameState{
		ID: model.GameID(uuid.NewString()),
		Teams: [2]model.Team{
			{Name: teamA, Color: teamColors[0]},
			{Name: teamB, Color: teamColors[1]},
		},
		ActiveTeam: model.TeamA,
		Phase:      model.PhasePlaying,
		History:    []model.RoundRecord{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	c.deck.Reset()
	if q := c.deck.Draw(); q != nil {
		c.setQuestionLocked(*q)
	}
	c.persistLocked()

	c.logger.Info("game started",
		slog.String("game_id", string(c.state.ID)),
		slog.String("team_a", teamA),
		slog.String("team_b", teamB),
	)
	return nil
}

// SetNextQuestion installs a specific question with fresh round state,
// bypassing the deck. Only valid while playing.
func (c *Controller) SetNextQuestion(ctx context.Context, q model.Question) error {
	if q.Prompt == "" || len(q.Answers) == 0 {
		return model.ErrInvalidQuestion
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != model.PhasePlaying {
		return model.ErrWrongPhase
	}
	c.setQuestionLocked(q)
	c.state.UpdatedAt = c.clock.Now()
	c.persistLocked()
	return nil
}

// SubmitAnswer resolves a guess during the playing phase. A miss registers
// a strike; the third strike flips control to the other team and enters the
// steal phase with the pot carried over.
func (c *Controller) SubmitAnswer(ctx context.Context, text string) Result {
	c.mu.Lock()

	// A finalized round keeps its revealed board until the next advance;
	// stray submissions against it must not mutate anything.
	if c.state.Phase != model.PhasePlaying || c.state.Round == nil || c.submitting || c.roundEndedLocked() {
		res := notMatched(c.state.Phase)
		c.mu.Unlock()
		return res
	}

	norm := matching.Normalize(text)
	if norm == "" {
		// Empty guesses are automatic misses, not errors
		res := c.strikeLocked()
		c.mu.Unlock()
		return res
	}

	if idx := c.localMatchLocked(norm); idx >= 0 {
		var res Result
		if c.state.Round.Revealed[idx] {
			// Already revealed: a miss, so an answer can't be credited twice
			res = c.strikeLocked()
		} else {
			res = c.revealLocked(idx, 1.0, false)
		}
		c.mu.Unlock()
		return res
	}

	idx, conf, timedOut, valid := c.consultValidator(ctx, text)
	defer c.mu.Unlock()
	if !valid {
		// The round changed while the validator was in flight; this
		// submission no longer applies to anything.
		res := notMatched(c.state.Phase)
		res.TimedOut = timedOut
		return res
	}
	if idx >= 0 {
		return c.revealLocked(idx, conf, timedOut)
	}
	res := c.strikeLocked()
	res.TimedOut = timedOut
	return res
}

// SubmitSteal resolves the stealing team's single guess. A hit banks the
// pot to the stealing team; a miss, empty guess or already-revealed answer
// forfeits it back to the team that had control before the strikes. Either
// way the round finalizes and all remaining answers are revealed.
func (c *Controller) SubmitSteal(ctx context.Context, text string) Result {
	c.mu.Lock()

	if c.state.Phase != model.PhaseSteal || c.state.Round == nil || c.submitting {
		res := notMatched(c.state.Phase)
		c.mu.Unlock()
		return res
	}

	norm := matching.Normalize(text)
	if norm == "" {
		res := c.forfeitStealLocked(false)
		c.mu.Unlock()
		return res
	}

	if idx := c.localMatchLocked(norm); idx >= 0 {
		var res Result
		if c.state.Round.Revealed[idx] {
			res = c.forfeitStealLocked(false)
		} else {
			res = c.winStealLocked(idx, 1.0, false)
		}
		c.mu.Unlock()
		return res
	}

	idx, conf, timedOut, valid := c.consultValidator(ctx, text)
	defer c.mu.Unlock()
	if !valid {
		res := notMatched(c.state.Phase)
		res.TimedOut = timedOut
		return res
	}
	if idx >= 0 {
		return c.winStealLocked(idx, conf, timedOut)
	}
	return c.forfeitStealLocked(timedOut)
}

// RevealAnswerByIndex reveals a board answer directly (host override).
// Revealing an already-revealed answer is a no-op.
func (c *Controller) RevealAnswerByIndex(ctx context.Context, idx int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != model.PhasePlaying {
		return model.ErrWrongPhase
	}
	if c.state.Round == nil || c.state.Question == nil {
		return model.ErrNoQuestion
	}
	if idx < 0 || idx >= c.state.Question.AnswerCount() {
		return model.ErrInvalidAnswerIndex
	}
	if c.state.Round.Revealed[idx] {
		return nil
	}
	c.revealLocked(idx, 1.0, false)
	return nil
}

// RegisterStrike records a miss directly (host override).
func (c *Controller) RegisterStrike(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != model.PhasePlaying {
		return model.ErrWrongPhase
	}
	if c.state.Round == nil {
		return model.ErrNoQuestion
	}
	if c.roundEndedLocked() {
		return model.ErrWrongPhase
	}
	c.strikeLocked()
	return nil
}

// EndRoundAdvance moves to the next question: the active team flips (so
// turns alternate even through a steal), round state clears, and the next
// question is drawn from the deck. The state may briefly hold no question
// when the pool is empty; that is legal and expected.
func (c *Controller) EndRoundAdvance(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Phase {
	case model.PhasePlaying, model.PhaseSteal:
	default:
		return model.ErrNoGameInProgress
	}

	c.state.ActiveTeam = c.state.ActiveTeam.Other()
	c.state.Question = nil
	c.state.Round = nil
	c.state.RoundWinner = nil
	c.state.StealOriginalTeam = nil
	c.state.Phase = model.PhasePlaying
	c.roundGen++

	if q := c.deck.Draw(); q != nil {
		c.setQuestionLocked(*q)
	}
	c.state.UpdatedAt = c.clock.Now()
	c.persistLocked()
	return nil
}

// EndGame moves the game to the terminal results phase.
func (c *Controller) EndGame(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Phase {
	case model.PhaseSetup:
		return model.ErrNoGameInProgress
	case model.PhaseResults:
		return model.ErrGameOver
	}

	c.state.Phase = model.PhaseResults
	c.state.Question = nil
	c.state.Round = nil
	c.state.StealOriginalTeam = nil
	c.roundGen++
	c.state.UpdatedAt = c.clock.Now()
	c.persistLocked()

	c.logger.Info("game ended",
		slog.String("game_id", string(c.state.ID)),
		slog.Int("score_a", c.state.Teams[0].Score),
		slog.Int("score_b", c.state.Teams[1].Score),
	)
	return nil
}

// ClearHistory discards the round history.
func (c *Controller) ClearHistory(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.History = []model.RoundRecord{}
	c.state.UpdatedAt = c.clock.Now()
	c.persistLocked()
}

// ResetPersistentState wipes stored state and returns to the setup phase.
func (c *Controller) ResetPersistentState(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop any queued write and wait out an in-flight one so a stale
	// snapshot cannot land after the clear.
	c.saveMu.Lock()
	c.pending = nil
	for c.saving {
		c.saveCond.Wait()
	}
	c.saveMu.Unlock()

	c.persister.Clear(ctx)
	c.state = &model.GameState{Phase: model.PhaseSetup}
	c.roundGen++
	c.deck.Reset()
}

// ReplaceQuestions rebuilds the deck over a new question pool, typically in
// response to a pack change. The round in progress is unaffected; the next
// advance draws from the new pool.
func (c *Controller) ReplaceQuestions(ctx context.Context, questions []model.Question) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deck.Replace(questions)
	if c.state.Phase != model.PhaseSetup {
		c.persistLocked()
	}
	c.logger.Info("question deck rebuilt", slog.Int("questions", len(questions)))
}

// State returns a deep copy of the current game state.
func (c *Controller) State() *model.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// RoundEnded reports whether the current round is over: every answer
// revealed, or a steal in progress with nothing left to steal.
func (c *Controller) RoundEnded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roundEndedLocked()
}

// History returns a copy of the round history.
func (c *Controller) History() []model.RoundRecord {
	return c.State().History
}

// --- internals ---

func (c *Controller) setQuestionLocked(q model.Question) {
	c.state.Question = &q
	c.state.Round = model.NewRoundState(q.AnswerCount())
	c.state.RoundWinner = nil
	c.roundGen++
}

// localMatchLocked returns the first board index whose normalized canonical
// text loosely matches the normalized guess, or -1.
func (c *Controller) localMatchLocked(norm string) int {
	for i, a := range c.state.Question.Answers {
		if matching.LooselyMatches(matching.Normalize(a.Text), norm) {
			return i
		}
	}
	return -1
}

// consultValidator releases the lock for the duration of the external call
// and re-acquires it. The caller holds the lock on entry and after return.
// valid is false when the round changed while the call was in flight.
// idx is the resolved board index of an accepted match, or -1.
func (c *Controller) consultValidator(ctx context.Context, raw string) (idx int, conf float64, timedOut bool, valid bool) {
	question := *c.state.Question
	gen := c.roundGen
	c.submitting = true
	c.mu.Unlock()

	resp := c.validator.Validate(ctx, question, raw)

	c.mu.Lock()
	c.submitting = false

	if c.roundGen != gen || c.state.Round == nil {
		return -1, 0, resp.TimedOut, false
	}

	if resp.Matched && resp.Confidence >= c.confidenceFloor {
		// The validator may return paraphrased or re-cased text; resolve it
		// back to a definite board index through local matching. Failure to
		// resolve is a miss.
		if i := c.localMatchLocked(matching.Normalize(resp.MatchedAnswer)); i >= 0 && !c.state.Round.Revealed[i] {
			return i, resp.Confidence, resp.TimedOut, true
		}
	}
	return -1, 0, resp.TimedOut, true
}

// revealLocked marks an answer revealed, adds its points to the pot, and
// finalizes the round when the board is complete. The pot banks to the
// active team within this same call.
func (c *Controller) revealLocked(idx int, conf float64, timedOut bool) Result {
	st := c.state
	ans := st.Question.Answers[idx]
	st.Round.Revealed[idx] = true
	st.Round.Pot += ans.Points

	if st.Round.AllRevealed() {
		winner := st.ActiveTeam
		c.finalizeRoundLocked(&winner)
	}

	st.UpdatedAt = c.clock.Now()
	c.persistLocked()

	return Result{
		Matched:     true,
		AnswerIndex: idx,
		Answer:      &ans,
		Points:      ans.Points,
		Confidence:  conf,
		TimedOut:    timedOut,
		Strikes:     st.Round.Strikes,
		Phase:       st.Phase,
		RoundEnded:  c.roundEndedLocked(),
	}
}

// strikeLocked registers a miss. The third strike flips control to the
// other team and enters the steal phase; the pot carries over untouched.
func (c *Controller) strikeLocked() Result {
	st := c.state
	if st.Round.Strikes < model.MaxStrikes {
		st.Round.Strikes++
	}

	if st.Round.Strikes >= model.MaxStrikes && st.Phase == model.PhasePlaying {
		prev := st.ActiveTeam
		st.ActiveTeam = prev.Other()
		st.StealOriginalTeam = &prev
		st.Phase = model.PhaseSteal

		c.logger.Info("steal phase entered",
			slog.String("game_id", string(st.ID)),
			slog.Int("stealing_team", int(st.ActiveTeam)),
			slog.Int("pot", st.Round.Pot),
		)
	}

	st.UpdatedAt = c.clock.Now()
	c.persistLocked()

	return Result{
		AnswerIndex: -1,
		Strikes:     st.Round.Strikes,
		Phase:       st.Phase,
		RoundEnded:  c.roundEndedLocked(),
	}
}

// winStealLocked resolves a successful steal: the guessed answer is
// revealed, the pot banks unchanged to the stealing team, and the round
// finalizes.
func (c *Controller) winStealLocked(idx int, conf float64, timedOut bool) Result {
	st := c.state
	ans := st.Question.Answers[idx]
	st.Round.Revealed[idx] = true

	winner := st.ActiveTeam
	c.finalizeRoundLocked(&winner)

	st.UpdatedAt = c.clock.Now()
	c.persistLocked()

	return Result{
		Matched:     true,
		AnswerIndex: idx,
		Answer:      &ans,
		Points:      ans.Points,
		Confidence:  conf,
		TimedOut:    timedOut,
		Strikes:     st.Round.Strikes,
		Phase:       st.Phase,
		RoundEnded:  true,
	}
}

// forfeitStealLocked resolves a failed steal: the pot banks to the team
// that had control before the strikes, or nobody when it is empty.
func (c *Controller) forfeitStealLocked(timedOut bool) Result {
	st := c.state

	var winner *model.TeamIndex
	if st.Round.Pot > 0 && st.StealOriginalTeam != nil {
		w := *st.StealOriginalTeam
		winner = &w
	}
	c.finalizeRoundLocked(winner)

	st.UpdatedAt = c.clock.Now()
	c.persistLocked()

	return Result{
		AnswerIndex: -1,
		TimedOut:    timedOut,
		Strikes:     st.Round.Strikes,
		Phase:       st.Phase,
		RoundEnded:  true,
	}
}

// finalizeRoundLocked banks the pot, writes the history record, clears the
// steal marker and reveals the whole board for display. The history record
// snapshots which answers were genuinely revealed before that display
// reveal.
func (c *Controller) finalizeRoundLocked(winner *model.TeamIndex) {
	st := c.state

	pot := st.Round.Pot
	if winner != nil {
		st.Teams[*winner].Score += pot
	}

	snapshot := make([]bool, len(st.Round.Revealed))
	copy(snapshot, st.Round.Revealed)
	for i := range st.Round.Revealed {
		st.Round.Revealed[i] = true
	}

	st.RoundWinner = winner
	st.StealOriginalTeam = nil
	st.Phase = model.PhasePlaying
	st.Round.Pot = 0

	record := model.RoundRecord{
		Question: st.Question.Prompt,
		Revealed: snapshot,
		Strikes:  st.Round.Strikes,
		Winner:   winner,
		Points:   pot,
		PlayedAt: c.clock.Now(),
	}
	st.History = append(st.History, record)
	if len(st.History) > model.MaxHistory {
		st.History = st.History[len(st.History)-model.MaxHistory:]
	}
	c.roundGen++

	winnerName := "nobody"
	if winner != nil {
		winnerName = st.Teams[*winner].Name
	}
	c.logger.Info("round finalized",
		slog.String("game_id", string(st.ID)),
		slog.String("winner", winnerName),
		slog.Int("points", pot),
	)
}

func (c *Controller) roundEndedLocked() bool {
	st := c.state
	if st.Round == nil {
		return false
	}
	if st.Round.AllRevealed() {
		return true
	}
	return st.Phase == model.PhaseSteal && st.Round.Pot == 0
}

// persistLocked queues a snapshot write as a side effect of a transition.
// The write happens on the background writer; failures are the adapter's
// problem and gameplay never waits on them.
func (c *Controller) persistLocked() {
	if c.persister == nil {
		return
	}
	p := &pendingSave{state: c.state.Clone(), deck: c.deck.Snapshot()}
	c.saveMu.Lock()
	if !c.closed {
		c.pending = p
		c.saveCond.Broadcast()
	}
	c.saveMu.Unlock()
}
