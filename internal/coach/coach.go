// Package coach narrates slides and answers questions. Requests run in the
// background; a newer request of the same kind supersedes an older one, so
// a slow reply for a slide the learner already left is never shown.
package coach

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/speech"
)

// ScriptWriter produces the narration for a slide. gpt.Personalizer
// satisfies it.
type ScriptWriter interface {
	Script(ctx context.Context, slide domain.SlideID, s domain.UserState) string
}

// Answerer answers a free-form question. gpt.Agent satisfies it.
type Answerer interface {
	Ask(ctx context.Context, question, lessonScript string, s domain.UserState) string
}

// Voice speaks coach lines. speech.Mouth satisfies it.
type Voice interface {
	Say(text string, priority speech.Priority)
	Interrupt()
}

// Option configures the coach.
type Option func(*Coach)

// WithRequestTimeout bounds each background model request.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Coach) { c.timeout = d }
}

// Coach owns the background model requests and delivers their results.
type Coach struct {
	scripts ScriptWriter
	answers Answerer
	state   domain.StateReader
	out     domain.Notifier
	voice   Voice
	flights *Flights
	timeout time.Duration
	log     *logger.Logger

	mu     sync.Mutex
	slide  domain.SlideID
	script string
	closed bool

	wg sync.WaitGroup
}

// New creates a coach.
func New(scripts ScriptWriter, answers Answerer, state domain.StateReader, out domain.Notifier, voice Voice, log *logger.Logger, opts ...Option) *Coach {
	c := &Coach{
		scripts: scripts,
		answers: answers,
		state:   state,
		out:     out,
		voice:   voice,
		flights: NewFlights(),
		timeout: 20 * time.Second,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Script returns the narration currently on screen.
func (c *Coach) Script() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.script
}

// Narrate starts narration for a newly shown slide. Outstanding script and
// answer requests are cancelled and current speech is cut off.
func (c *Coach) Narrate(ctx context.Context, slide domain.SlideID) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.slide = slide
	c.script = ""
	c.mu.Unlock()

	c.flights.Cancel(PurposeScript, PurposeAnswer)
	c.voice.Interrupt()

	snap := c.state.Snapshot()
	c.Go(ctx, PurposeScript, func(ctx context.Context) string {
		return c.scripts.Script(ctx, slide, snap)
	}, func(text string) {
		c.mu.Lock()
		c.script = text
		c.mu.Unlock()
		c.deliver(text, speech.PriorityNormal)
	})
}

// Ask answers a question with the current slide's narration as context.
// A newer question supersedes an unanswered one.
func (c *Coach) Ask(ctx context.Context, question string) {
	c.voice.Interrupt()
	script := c.Script()
	snap := c.state.Snapshot()
	c.Go(ctx, PurposeAnswer, func(ctx context.Context) string {
		return c.answers.Ask(ctx, question, script, snap)
	}, func(text string) {
		c.deliver(text, speech.PriorityHigh)
	})
}

// Go runs work in the background under a new ticket for the purpose and
// hands its result to deliver only if no newer ticket replaced it.
func (c *Coach) Go(ctx context.Context, p Purpose, work func(ctx context.Context) string, deliver func(string)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	ticket := c.flights.Begin(ctx, p)
	c.log.Debug("coach: %s flight %s started", p, ticket.ID)

	go func() {
		defer c.wg.Done()

		reqCtx, cancel := context.WithTimeout(ticket.Context(), c.timeout)
		defer cancel()
		result := work(reqCtx)

		ok := c.flights.Complete(ticket, func() {
			if result != "" {
				deliver(result)
			}
		})
		if !ok {
			c.log.Debug("coach: %s flight %s superseded, dropping result", p, ticket.ID)
		}
	}()
}

// Close cancels every request and waits for the background goroutines.
func (c *Coach) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.flights.CancelAll()
	c.wg.Wait()
}

func (c *Coach) deliver(text string, priority speech.Priority) {
	if err := c.out.Notify(context.Background(), "[Coach] "+text); err != nil {
		c.log.Warn("coach: notify failed: %v", err)
	}
	c.voice.Say(text, priority)
}
