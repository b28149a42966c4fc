// Package nudge watches for a learner who has stalled on a mission and
// offers that mission's hint.
package nudge

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/speech"
)

// SlideSource reports the slide on screen. engine.Engine satisfies it.
type SlideSource interface {
	Current() domain.SlideID
}

// HintSource returns the hint for a slide. lesson.Catalog satisfies it.
type HintSource interface {
	Hint(slide domain.SlideID) string
}

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher checks.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.interval = d }
}

// WithIdleThreshold sets how long the learner must be idle before a nudge.
func WithIdleThreshold(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.idle = d }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) { w.now = now }
}

// Watcher periodically checks whether the learner has been idle on an
// incomplete slide for longer than the threshold and, if so, shows and
// speaks that slide's hint. Each slide is nudged at most once per idle
// stretch; any activity or slide change re-arms it.
type Watcher struct {
	slides   SlideSource
	state    domain.StateReader
	hints    HintSource
	out      domain.Notifier
	voice    speech.Speaker // optional
	log      *logger.Logger
	interval time.Duration
	idle     time.Duration
	now      func() time.Time

	mu         sync.Mutex
	lastActive time.Time
	nudged     map[domain.SlideID]bool
}

// NewWatcher creates a watcher. voice may be nil.
func NewWatcher(slides SlideSource, state domain.StateReader, hints HintSource, out domain.Notifier, voice speech.Speaker, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		slides:   slides,
		state:    state,
		hints:    hints,
		out:      out,
		voice:    voice,
		log:      log,
		interval: 15 * time.Second,
		idle:     90 * time.Second,
		now:      time.Now,
		nudged:   make(map[domain.SlideID]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.lastActive = w.now()
	return w
}

// Touch records learner activity.
func (w *Watcher) Touch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastActive = w.now()
	clear(w.nudged)
}

// Run starts the watcher loop. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("nudge: watcher started (interval=%s, idle=%s)", w.interval, w.idle)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("nudge: watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check runs one cycle and reports whether a nudge was sent.
func (w *Watcher) check(ctx context.Context) bool {
	slide := w.slides.Current()
	if w.state.IsComplete(slide) {
		return false
	}

	w.mu.Lock()
	idleFor := w.now().Sub(w.lastActive)
	if idleFor < w.idle || w.nudged[slide] {
		w.mu.Unlock()
		return false
	}
	w.nudged[slide] = true
	w.mu.Unlock()

	hint := w.hints.Hint(slide)
	if hint == "" {
		w.log.Debug("nudge: no hint for %s", slide)
		return false
	}

	w.log.Debug("nudge: idle %s on %s", idleFor.Round(time.Second), slide)
	if err := w.out.Notify(ctx, "[Hint] "+hint); err != nil {
		w.log.Error("nudge: notify: %v", err)
	}
	if w.voice != nil {
		w.voice.Say(hint, speech.PriorityLow)
	}
	return true
}
