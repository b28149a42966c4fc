package mission

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hammamikhairi/fuelquest/internal/completion"
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/state"
)

// Creatine dosing.
const (
	MaxDoseGrams   = 5.0
	BatteryPerGram = 4.0
)

// RoundLength is the number of problems in one math challenge.
const RoundLength = completion.PerfectRound

// FullBatteryTime is the time per problem at 100 % battery. Lower battery
// levels scale it down proportionally.
const FullBatteryTime = 6 * time.Second

// ErrRoundActive is returned when a round is started while one is running.
var ErrRoundActive = errors.New("a math round is already running")

// ErrNoRound is returned when answering without a running round.
var ErrNoRound = errors.New("no math round is running")

// Battery is the creatine mission: dose creatine, then play the math
// challenge at 80 % and 100 % battery.
type Battery struct {
	store Store
	cues  domain.CuePlayer
	log   *logger.Logger
	rng   *rand.Rand
	now   func() time.Time

	mu    sync.Mutex
	round *Round
}

// BatteryOption configures the battery mission.
type BatteryOption func(*Battery)

// WithRand fixes the problem generator, for tests.
func WithRand(r *rand.Rand) BatteryOption {
	return func(b *Battery) { b.rng = r }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) BatteryOption {
	return func(b *Battery) { b.now = now }
}

// NewBattery creates the creatine mission.
func NewBattery(store Store, cues domain.CuePlayer, log *logger.Logger, opts ...BatteryOption) *Battery {
	b := &Battery{
		store: store,
		cues:  cues,
		log:   log,
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetDose sets the daily creatine dose, clamped to 0-5 g. The battery
// charges 4 % per gram from the 80 % baseline.
func (b *Battery) SetDose(grams float64) float64 {
	grams = math.Max(0, math.Min(grams, MaxDoseGrams))
	level := domain.BatteryBaseline + BatteryPerGram*grams
	b.store.UpdateCreatine(state.CreatineUpdate{CreatineGrams: &grams, BatteryLevel: &level})
	b.cues.Play(domain.CueClick)
	if level == domain.BatteryFull {
		b.cues.Play(domain.CueSuccess)
	}
	b.evaluate()
	return level
}

// RecordRound stores a finished round at the current battery level. Only
// the 80 % and 100 % levels are scored; other levels are ignored.
func (b *Battery) RecordRound(correct int) {
	correct = max(0, min(correct, RoundLength))
	score := &domain.Score{Correct: correct, Wrong: RoundLength - correct}
	c := b.store.Snapshot().Creatine

	switch c.BatteryLevel {
	case domain.BatteryBaseline:
		b.store.UpdateCreatine(state.CreatineUpdate{Round80Score: score})
	case domain.BatteryFull:
		attempts := c.Attempts100 + 1
		b.store.UpdateCreatine(state.CreatineUpdate{Round100Score: score, Attempts100: &attempts})
	default:
		b.log.Debug("mission: round at %.0f%% battery not scored", c.BatteryLevel)
		return
	}

	if correct == RoundLength {
		b.cues.Play(domain.CueSuccess)
	}
	b.evaluate()
}

// StartRound begins a math challenge timed by the current battery level.
func (b *Battery) StartRound() (*Round, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.round != nil {
		return nil, ErrRoundActive
	}

	level := b.store.Snapshot().Creatine.BatteryLevel
	per := time.Duration(float64(FullBatteryTime) * level / domain.BatteryFull)
	r := &Round{Battery: level, PerProblem: per, started: b.now()}
	for i := 0; i < RoundLength; i++ {
		r.Problems = append(r.Problems, newProblem(b.rng))
	}
	r.asked = r.started
	b.round = r
	b.log.Debug("mission: round started at %.0f%% (%s per problem)", level, per)
	return r, nil
}

// InRound reports whether a math challenge is running.
func (b *Battery) InRound() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.round != nil
}

// Answer scores the answer to the current problem. A late answer counts as
// wrong. When the last problem is answered the round is recorded.
func (b *Battery) Answer(value int) (Outcome, error) {
	b.mu.Lock()
	r := b.round
	if r == nil {
		b.mu.Unlock()
		return Outcome{}, ErrNoRound
	}

	now := b.now()
	p := r.Problems[r.index]
	late := now.Sub(r.asked) > r.PerProblem
	ok := !late && value == p.Answer
	if ok {
		r.correct++
	}
	r.index++
	r.asked = now

	out := Outcome{Correct: ok, Late: late, Expected: p.Answer, Done: r.index == len(r.Problems), Score: r.correct}
	if !out.Done {
		out.Next = &r.Problems[r.index]
	} else {
		b.round = nil
	}
	b.mu.Unlock()

	if ok {
		b.cues.Play(domain.CueClick)
	} else {
		b.cues.Play(domain.CueError)
	}
	if out.Done {
		b.RecordRound(out.Score)
	}
	return out, nil
}

// Abort drops a running round without scoring it.
func (b *Battery) Abort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.round = nil
}

func (b *Battery) evaluate() {
	b.store.EvaluateSlide(domain.SlideCreatine, func(s domain.UserState) bool {
		return completion.Creatine(s.Creatine)
	})
}

// Problem is one arithmetic question.
type Problem struct {
	Text   string
	Answer int
}

func newProblem(rng *rand.Rand) Problem {
	a, c := rng.IntN(9)+2, rng.IntN(9)+2
	if rng.IntN(2) == 0 {
		return Problem{Text: fmt.Sprintf("%d x %d", a, c), Answer: a * c}
	}
	a, c = rng.IntN(40)+10, rng.IntN(40)+10
	return Problem{Text: fmt.Sprintf("%d + %d", a, c), Answer: a + c}
}

// Round is a running math challenge.
type Round struct {
	Battery    float64
	PerProblem time.Duration
	Problems   []Problem

	started time.Time
	asked   time.Time
	index   int
	correct int
}

// First returns the opening problem.
func (r *Round) First() Problem { return r.Problems[0] }

// Outcome is the result of answering one problem.
type Outcome struct {
	Correct  bool
	Late     bool
	Expected int
	Done     bool
	Score    int
	Next     *Problem
}
