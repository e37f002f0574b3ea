package window

import (
	"sync"

	"github.com/Carmen-Shannon/beagle-go/common"
)

// inputState tracks held keys and the cursor movement accumulated since it was last read.
// Callbacks write it on the event thread and the frame reads it, so every access is locked.
type inputState struct {
	mu   sync.Mutex
	keys map[common.KeyCode]bool

	lastX, lastY float64
	hasLast      bool
	dx, dy       float64
}

func newInputState() *inputState {
	return &inputState{keys: make(map[common.KeyCode]bool)}
}

func (s *inputState) keyDown(k common.KeyCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[k] = true
}

func (s *inputState) keyUp(k common.KeyCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, k)
}

func (s *inputState) isDown(k common.KeyCode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[k]
}

// cursorMoved records a new absolute cursor position. The first position only seeds the origin
// so the initial jump from (0, 0) is not reported as movement.
func (s *inputState) cursorMoved(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasLast {
		s.dx += x - s.lastX
		s.dy += y - s.lastY
	}
	s.lastX, s.lastY = x, y
	s.hasLast = true
}

// takeMouseDelta returns the movement since the previous call and resets it.
func (s *inputState) takeMouseDelta() (float32, float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dx, dy := s.dx, s.dy
	s.dx, s.dy = 0, 0
	return float32(dx), float32(dy)
}

// reset forgets held keys and the cursor origin, e.g. after focus loss.
func (s *inputState) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.keys)
	s.hasLast = false
	s.dx, s.dy = 0, 0
}
