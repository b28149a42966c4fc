package mission

import (
	"fmt"
	"math"
	"sync"

	"github.com/hammamikhairi/fuelquest/internal/completion"
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Meal-builder gauges top out at these values.
const (
	MaxMealProtein = 60.0
	MaxMealFat     = 60.0
	MaxMealCarbs   = 100.0
)

// MealBuilder is the protein mission: stack foods into one meal.
type MealBuilder struct {
	store Store
	menu  Menu
	cues  domain.CuePlayer
	log   *logger.Logger

	mu          sync.Mutex
	macros      domain.Macros
	proteinMet  bool
	fatBlownOut bool
}

// NewMealBuilder creates the meal-builder mission.
func NewMealBuilder(store Store, menu Menu, cues domain.CuePlayer, log *logger.Logger) *MealBuilder {
	return &MealBuilder{store: store, menu: menu, cues: cues, log: log}
}

// Macros returns the current meal.
func (b *MealBuilder) Macros() domain.Macros {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.macros
}

// Add stacks a menu food onto the meal. Each gauge is capped.
func (b *MealBuilder) Add(name string) (domain.Macros, error) {
	f, ok := lesson.FindMealFood(b.menu.MealFoods(), name)
	if !ok {
		return b.Macros(), fmt.Errorf("meal food %q: %w", name, domain.ErrNotFound)
	}

	b.cues.Play(domain.CueClick)

	b.mu.Lock()
	m := b.macros
	m.Protein = math.Min(m.Protein+f.Protein, MaxMealProtein)
	m.Fat = math.Min(m.Fat+f.Fat, MaxMealFat)
	m.Carbs = math.Min(m.Carbs+f.Carbs, MaxMealCarbs)
	m.Calories = Calories(m)
	b.macros = m

	proteinMet := m.Protein >= completion.MealProteinMin
	blowout := completion.FatBlowout(m)
	successCue := proteinMet && !b.proteinMet && !blowout
	alarmCue := blowout && !b.fatBlownOut
	b.proteinMet = proteinMet
	b.fatBlownOut = blowout
	b.mu.Unlock()

	if successCue {
		b.cues.Play(domain.CueSuccess)
	}
	if alarmCue {
		b.cues.Play(domain.CueAlarm)
	}

	b.log.Debug("mission: meal +%s -> %+v", f.Name, m)
	b.commit(m)
	return m, nil
}

// Reset empties the meal.
func (b *MealBuilder) Reset() {
	b.cues.Play(domain.CueClick)

	b.mu.Lock()
	b.macros = domain.Macros{}
	b.proteinMet = false
	b.fatBlownOut = false
	b.mu.Unlock()

	b.commit(domain.Macros{})
}

func (b *MealBuilder) commit(m domain.Macros) {
	b.store.UpdateProteinMeal(m)
	b.store.SetSlideCompletion(domain.SlideProtein, completion.Protein(m))
}

// Calories uses 4 kcal per gram of protein and carbs and 9 per gram of fat.
func Calories(m domain.Macros) float64 {
	return 4*m.Protein + 4*m.Carbs + 9*m.Fat
}
