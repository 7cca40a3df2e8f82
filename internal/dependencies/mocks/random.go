package mocks

import (
	"github.com/faceoffgame/faceoff/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
//
// Intn returns queued results in order. Once the queue is exhausted it
// returns n-1, which makes a Fisher-Yates shuffle driven by it a no-op:
// an un-scripted MockRandom yields the identity permutation.
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or n-1 if none remain
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		if n <= 0 {
			return 0
		}
		return n - 1
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
}
