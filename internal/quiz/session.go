package quiz

import (
	"sync"
	"sync/atomic"
)

// Actions is what the host page can do with the chosen option.
type Actions interface {
	ClearHighlights()
	Highlight(index int, text string)
	Click(index int, text string)
}

type nopActions struct{}

func (nopActions) ClearHighlights()      {}
func (nopActions) Highlight(int, string) {}
func (nopActions) Click(int, string)     {}

// Session is the state kept for one watched page: whether a model request
// is outstanding and which question was last seen.
type Session struct {
	actions Actions

	busy atomic.Bool

	mu       sync.Mutex
	lastSeen string

	pending sync.WaitGroup
}

func NewSession(actions Actions) *Session {
	if actions == nil {
		actions = nopActions{}
	}
	return &Session{actions: actions}
}

// Observe records question as the last seen one and reports whether it
// differs from the previous value.
func (s *Session) Observe(question string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if question == s.lastSeen {
		return false
	}
	s.lastSeen = question
	return true
}

func (s *Session) LastSeen() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) Busy() bool {
	return s.busy.Load()
}

func (s *Session) tryAcquire() bool {
	return s.busy.CompareAndSwap(false, true)
}

func (s *Session) release() {
	s.busy.Store(false)
}

func (s *Session) Wait() {
	s.pending.Wait()
}
