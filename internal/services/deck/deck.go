package deck

import (
	"sync"

	"github.com/faceoffgame/faceoff/internal/dependencies/random"
	"github.com/faceoffgame/faceoff/internal/model"
)

// Deck yields each question of a pool exactly once per pass in a shuffled
// order, reshuffling when the pass is exhausted.
//
// A reshuffle is uniform over all permutations, so the last question of one
// pass can by chance equal the first question of the next. That back-to-back
// repeat is accepted behavior, not guarded against.
type Deck struct {
	mu     sync.Mutex
	pool   []model.Question
	order  []int
	cursor int
	random random.Random
}

// New creates a deck over the given pool with a fresh shuffle.
func New(pool []model.Question, rnd random.Random) *Deck {
	d := &Deck{
		pool:   pool,
		random: rnd,
	}
	d.reshuffleLocked()
	return d
}

// Draw returns the next question in the current shuffled order, advancing
// the cursor. When the pass is exhausted it reshuffles and resets the cursor
// before drawing. Returns nil only when the pool is empty.
func (d *Deck) Draw() *model.Question {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pool) == 0 {
		return nil
	}
	if d.cursor >= len(d.order) {
		d.reshuffleLocked()
	}
	q := d.pool[d.order[d.cursor]]
	d.cursor++
	return &q
}

// Peek returns what Draw would return without advancing state. Peek never
// reshuffles, so at the end of a pass it returns nil even though a Draw
// would reshuffle and succeed. Callers must tolerate nil peeks.
func (d *Deck) Peek() *model.Question {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pool) == 0 || d.cursor >= len(d.order) {
		return nil
	}
	q := d.pool[d.order[d.cursor]]
	return &q
}

// Reset forces a fresh shuffle and rewinds the cursor, discarding the
// current position.
func (d *Deck) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reshuffleLocked()
}

// Replace swaps in a new question pool and reshuffles.
func (d *Deck) Replace(pool []model.Question) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pool = pool
	d.reshuffleLocked()
}

// Size returns the number of questions in the pool.
func (d *Deck) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pool)
}

// Remaining returns how many questions are left in the current pass.
func (d *Deck) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.order) - d.cursor
}

// Snapshot captures the current order and cursor for persistence.
func (d *Deck) Snapshot() model.DeckState {
	d.mu.Lock()
	defer d.mu.Unlock()
	order := make([]int, len(d.order))
	copy(order, d.order)
	return model.DeckState{Order: order, Cursor: d.cursor}
}

// Restore installs a previously captured order and cursor. It reports false
// and reshuffles instead when the state does not describe a valid
// permutation of the current pool or the cursor is out of range.
func (d *Deck) Restore(state model.DeckState) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !validPermutation(state.Order, len(d.pool)) || state.Cursor < 0 || state.Cursor > len(state.Order) {
		d.reshuffleLocked()
		return false
	}
	d.order = make([]int, len(state.Order))
	copy(d.order, state.Order)
	d.cursor = state.Cursor
	return true
}

func (d *Deck) reshuffleLocked() {
	d.order = make([]int, len(d.pool))
	for i := range d.order {
		d.order[i] = i
	}
	random.Shuffle(d.random, len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
	d.cursor = 0
}

// validPermutation reports whether order is a permutation of [0, n).
func validPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}
