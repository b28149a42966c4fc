// Package engine implements the lesson navigation gate: the ordered slide
// deck and the completion check that guards forward moves.
package engine

import (
	"sync"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// TransitionFunc is called after every successful move.
type TransitionFunc func(from, to domain.SlideID, index int)

// Option configures the engine.
type Option func(*Engine)

// WithOnTransition registers a listener for slide changes. Listeners run
// synchronously on the caller's goroutine after the move is applied.
func WithOnTransition(fn TransitionFunc) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, fn)
	}
}

// WithStartIndex opens the deck on a later slide. Out-of-range values are
// ignored.
func WithStartIndex(i int) Option {
	return func(e *Engine) {
		if i >= 0 && i < len(e.slides) {
			e.index = i
		}
	}
}

// Engine walks the slide deck. It depends only on interfaces and is fully
// testable with fakes.
type Engine struct {
	mu        sync.Mutex
	slides    []domain.SlideID
	index     int
	progress  domain.StateReader
	cues      domain.CuePlayer
	listeners []TransitionFunc
	log       *logger.Logger
}

// New creates a navigation engine positioned on the first slide.
func New(progress domain.StateReader, cues domain.CuePlayer, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		slides:   domain.Slides(),
		progress: progress,
		cues:     cues,
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Current returns the slide on screen.
func (e *Engine) Current() domain.SlideID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slides[e.index]
}

// Index returns the zero-based position of the current slide.
func (e *Engine) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// Len returns the number of slides.
func (e *Engine) Len() int {
	return len(e.slides)
}

// IsLast reports whether the current slide is the final one.
func (e *Engine) IsLast() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index == len(e.slides)-1
}

// CanAdvance reports whether Next is permitted right now. The last slide has
// no forward gate.
func (e *Engine) CanAdvance() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canAdvanceLocked()
}

func (e *Engine) canAdvanceLocked() bool {
	if e.index == len(e.slides)-1 {
		return true
	}
	return e.progress.IsComplete(e.slides[e.index])
}

// Next moves forward one slide. It returns false when the current slide is
// not complete yet or there is nowhere to go. Blocked attempts are silent.
func (e *Engine) Next() bool {
	e.mu.Lock()
	if !e.canAdvanceLocked() {
		cur := e.slides[e.index]
		e.mu.Unlock()
		e.log.Debug("engine: next blocked on %s", cur)
		return false
	}
	if e.index == len(e.slides)-1 {
		e.mu.Unlock()
		return false
	}
	return e.moveLocked(e.index + 1)
}

// Prev moves back one slide. Going back is never gated.
func (e *Engine) Prev() bool {
	e.mu.Lock()
	if e.index == 0 {
		e.mu.Unlock()
		return false
	}
	return e.moveLocked(e.index - 1)
}

// moveLocked applies the move, releases the lock and notifies.
func (e *Engine) moveLocked(to int) bool {
	from := e.slides[e.index]
	e.index = to
	target := e.slides[to]
	listeners := append([]TransitionFunc(nil), e.listeners...)
	e.mu.Unlock()

	e.cues.Play(domain.CueTransition)
	e.log.Info("engine: %s -> %s (%d/%d)", from, target, to+1, len(e.slides))

	for _, fn := range listeners {
		fn(from, target, to)
	}
	return true
}
