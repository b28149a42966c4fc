package coach

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Purpose groups requests that supersede each other.
type Purpose int

const (
	PurposeScript Purpose = iota
	PurposeAnswer
	PurposeJudge
	PurposeLookup
	PurposeIdeas
)

// String returns a human-readable purpose name.
func (p Purpose) String() string {
	switch p {
	case PurposeScript:
		return "script"
	case PurposeAnswer:
		return "answer"
	case PurposeJudge:
		return "judge"
	case PurposeLookup:
		return "lookup"
	case PurposeIdeas:
		return "ideas"
	default:
		return "unknown"
	}
}

// Ticket identifies one in-flight request. Its context is cancelled when
// a newer ticket for the same purpose begins.
type Ticket struct {
	ID      uuid.UUID
	Purpose Purpose

	ctx    context.Context
	cancel context.CancelFunc
}

// Context returns the request context.
func (t *Ticket) Context() context.Context { return t.ctx }

// Flights tracks the current ticket per purpose.
type Flights struct {
	mu      sync.Mutex
	current map[Purpose]*Ticket
}

// NewFlights creates an empty tracker.
func NewFlights() *Flights {
	return &Flights{current: make(map[Purpose]*Ticket)}
}

// Begin issues a ticket for the purpose and cancels the previous one.
func (f *Flights) Begin(parent context.Context, p Purpose) *Ticket {
	ctx, cancel := context.WithCancel(parent)
	t := &Ticket{ID: uuid.New(), Purpose: p, ctx: ctx, cancel: cancel}

	f.mu.Lock()
	defer f.mu.Unlock()
	if prev, ok := f.current[p]; ok {
		prev.cancel()
	}
	f.current[p] = t
	return t
}

// IsCurrent reports whether t is still the newest ticket for its purpose.
func (f *Flights) IsCurrent(t *Ticket) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current[t.Purpose] == t && t.ctx.Err() == nil
}

// Complete runs deliver if t is still current, then retires the ticket.
// deliver runs under the tracker lock, so a ticket begun concurrently can
// never be overtaken by a stale result. It must not call back into f.
func (f *Flights) Complete(t *Ticket, deliver func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer t.cancel()

	if f.current[t.Purpose] != t || t.ctx.Err() != nil {
		return false
	}
	delete(f.current, t.Purpose)
	if deliver != nil {
		deliver()
	}
	return true
}

// Cancel cancels the current tickets for the given purposes.
func (f *Flights) Cancel(purposes ...Purpose) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range purposes {
		if t, ok := f.current[p]; ok {
			t.cancel()
			delete(f.current, p)
		}
	}
}

// CancelAll cancels every ticket.
func (f *Flights) CancelAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for p, t := range f.current {
		t.cancel()
		delete(f.current, p)
	}
}
