package mission

import (
	"fmt"

	"github.com/hammamikhairi/fuelquest/internal/completion"
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// SugarLab is the energy-management mission: pick foods and watch the
// simulated blood-sugar curve.
type SugarLab struct {
	store Store
	menu  Menu
	cues  domain.CuePlayer
	log   *logger.Logger
}

// NewSugarLab creates the sugar mission.
func NewSugarLab(store Store, menu Menu, cues domain.CuePlayer, log *logger.Logger) *SugarLab {
	return &SugarLab{store: store, menu: menu, cues: cues, log: log}
}

// Add puts a menu food on the plate and returns the new classification.
func (l *SugarLab) Add(name string) (completion.CurveClass, error) {
	f, ok := lesson.FindFood(l.menu.SugarFoods(), name)
	if !ok {
		return l.Classification(), fmt.Errorf("sugar food %q: %w", name, domain.ErrNotFound)
	}

	prev, foods := l.store.AddSugarFood(f)
	before := completion.ClassifyCurve(prev)
	after := completion.ClassifyCurve(foods)

	l.cues.Play(domain.CueClick)
	switch {
	case after == completion.CurveGood && before != completion.CurveGood:
		l.cues.Play(domain.CueSuccess)
	case isBad(after) && !isBad(before):
		l.cues.Play(domain.CueAlarm)
	}

	l.log.Debug("mission: sugar +%s -> %s", f.Name, after)
	l.evaluate()
	return after, nil
}

// Reset clears the plate.
func (l *SugarLab) Reset() {
	l.cues.Play(domain.CueClick)
	l.store.SetSugarFoods([]domain.FoodItem{})
	l.evaluate()
}

// Classification grades the current plate.
func (l *SugarLab) Classification() completion.CurveClass {
	return completion.ClassifyCurve(l.store.Snapshot().SugarFoods)
}

// Curve samples the current plate's energy curve.
func (l *SugarLab) Curve() []completion.Point {
	return completion.BuildCurve(l.store.Snapshot().SugarFoods)
}

func (l *SugarLab) evaluate() {
	l.store.EvaluateSlide(domain.SlideSugar, func(s domain.UserState) bool {
		return completion.Sugar(s.SugarFoods)
	})
}

func isBad(c completion.CurveClass) bool {
	switch c {
	case completion.CurveCrash, completion.CurveDanger, completion.CurveOverload:
		return true
	default:
		return false
	}
}
