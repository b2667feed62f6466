package logquery

import (
	"context"
	"sync"
)

// Sequencer orders overlapping submissions. Each submission takes a ticket;
// taking a new ticket cancels the previous one's context. Only the newest
// ticket is current, so the last issued query wins regardless of which
// response arrives last.
type Sequencer struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Next cancels the in-flight request, if any, and returns a ticket id with a
// context derived from parent.
func (s *Sequencer) Next(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	s.cancel = cancel
	return ctx, s.seq
}

// Supersede cancels the in-flight request without starting a new one.
func (s *Sequencer) Supersede() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	return s.seq
}

// IsCurrent reports whether id is the newest ticket.
func (s *Sequencer) IsCurrent(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id == s.seq
}

// Done releases the context of ticket id. It reports whether id was still
// current.
func (s *Sequencer) Done(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.seq {
		return false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return true
}
