// Package state holds the shared user-state store every mission writes into.
package state

import (
	"math"
	"sync"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Compile-time interface check.
var _ domain.StateReader = (*Store)(nil)

// Unit conversion and protein dosing.
const (
	LbsPerKg     = 2.205
	ProteinPerKg = 1.6
)

// DashboardUpdate is a partial dashboard payload. Nil fields keep their
// current value.
type DashboardUpdate struct {
	WeightLbs *float64
	Foods     []domain.FoodItem
}

// CreatineUpdate is a partial creatine payload. Nil fields keep their
// current value.
type CreatineUpdate struct {
	BatteryLevel  *float64
	CreatineGrams *float64
	Round80Score  *domain.Score
	Round100Score *domain.Score
	Attempts100   *int
}

// Store is the process-wide user state. Every update goes through a named
// method and is applied atomically; updates never fail. Safe for
// concurrent access.
type Store struct {
	mu    sync.RWMutex
	state domain.UserState
	log   *logger.Logger
}

// NewStore creates a store holding the initial empty state.
func NewStore(log *logger.Logger) *Store {
	return &Store{
		state: domain.NewUserState(),
		log:   log,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() domain.UserState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// IsComplete reports the completion flag of a slide.
func (s *Store) IsComplete(slide domain.SlideID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SlideCompletion[slide]
}

// SetUserName replaces the learner's name.
func (s *Store) SetUserName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.UserName = name
	s.log.Debug("state: user name set to %q", name)
}

// UpdateDashboard merges weight and/or foods. Kilograms, protein target and
// totals are derived here so they can never disagree with their inputs.
func (s *Store) UpdateDashboard(u DashboardUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.WeightLbs != nil {
		lbs := *u.WeightLbs
		kg := lbs / LbsPerKg
		s.state.WeightLbs = &lbs
		s.state.WeightKg = &kg
		s.state.ProteinTarget = nil
		if lbs > 0 {
			target := int(math.Round(kg * ProteinPerKg))
			s.state.ProteinTarget = &target
		}
	}
	if u.Foods != nil {
		s.state.DashboardFoods = append([]domain.FoodItem(nil), u.Foods...)
		s.state.DashboardTotals = domain.SumFoods(s.state.DashboardFoods)
	}

	s.log.Debug("state: dashboard updated (foods=%d, protein=%.0fg)",
		len(s.state.DashboardFoods), s.state.DashboardTotals.Protein)
}

// AddDashboardFood appends one food and re-derives the totals in a single
// step, so concurrent adds are never lost.
func (s *Store) AddDashboardFood(f domain.FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.DashboardFoods = append(s.state.DashboardFoods, f)
	s.state.DashboardTotals = domain.SumFoods(s.state.DashboardFoods)
	s.log.Debug("state: dashboard +%s (foods=%d)", f.Name, len(s.state.DashboardFoods))
}

// UpdateProteinMeal overwrites the meal-builder snapshot.
func (s *Store) UpdateProteinMeal(m domain.Macros) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.ProteinMealMacros = m
	s.log.Debug("state: meal macros p=%.1f f=%.1f c=%.1f cal=%.0f", m.Protein, m.Fat, m.Carbs, m.Calories)
}

// SetSugarFoods replaces the sugar-lab food list.
func (s *Store) SetSugarFoods(foods []domain.FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SugarFoods = append([]domain.FoodItem(nil), foods...)
	s.log.Debug("state: sugar foods=%d", len(foods))
}

// AddSugarFood puts one food on the sugar plate and returns the plate
// before and after the add.
func (s *Store) AddSugarFood(f domain.FoodItem) (before, after []domain.FoodItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before = append([]domain.FoodItem(nil), s.state.SugarFoods...)
	s.state.SugarFoods = append(s.state.SugarFoods, f)
	after = append([]domain.FoodItem(nil), s.state.SugarFoods...)
	s.log.Debug("state: sugar +%s (foods=%d)", f.Name, len(after))
	return before, after
}

// SetEquippedHabits replaces the equipped habit set. Unknown ids and
// duplicates are dropped; order of first appearance is kept.
func (s *Store) SetEquippedHabits(habits []domain.HabitID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[domain.HabitID]bool, len(habits))
	out := make([]domain.HabitID, 0, len(habits))
	for _, h := range habits {
		if !domain.IsHabit(h) {
			s.log.Warn("state: ignoring unknown habit %q", h)
			continue
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	s.state.EquippedHabits = out
	s.log.Debug("state: equipped habits %v", out)
}

// EquipHabit adds one habit unless it is already equipped. It returns the
// set before and after the call.
func (s *Store) EquipHabit(h domain.HabitID) (before, after []domain.HabitID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before = append([]domain.HabitID(nil), s.state.EquippedHabits...)
	if !domain.IsHabit(h) || s.state.HasHabit(h) {
		return before, before
	}
	s.state.EquippedHabits = append(s.state.EquippedHabits, h)
	s.log.Debug("state: equipped %s", h)
	return before, append([]domain.HabitID(nil), s.state.EquippedHabits...)
}

// UnequipHabit removes one habit. It returns the set before and after the
// call.
func (s *Store) UnequipHabit(h domain.HabitID) (before, after []domain.HabitID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before = append([]domain.HabitID(nil), s.state.EquippedHabits...)
	kept := make([]domain.HabitID, 0, len(before))
	for _, e := range before {
		if e != h {
			kept = append(kept, e)
		}
	}
	s.state.EquippedHabits = kept
	s.log.Debug("state: unequipped %s", h)
	return before, append([]domain.HabitID(nil), kept...)
}

// UpdateCreatine merges the non-nil creatine fields.
func (s *Store) UpdateCreatine(u CreatineUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &s.state.Creatine
	if u.BatteryLevel != nil {
		c.BatteryLevel = *u.BatteryLevel
	}
	if u.CreatineGrams != nil {
		c.CreatineGrams = *u.CreatineGrams
	}
	if u.Round80Score != nil {
		v := *u.Round80Score
		c.Round80Score = &v
	}
	if u.Round100Score != nil {
		v := *u.Round100Score
		c.Round100Score = &v
	}
	if u.Attempts100 != nil {
		c.Attempts100 = *u.Attempts100
	}
	s.log.Debug("state: creatine battery=%.0f%% grams=%.1f attempts100=%d", c.BatteryLevel, c.CreatineGrams, c.Attempts100)
}

// SetHabitQuizAnswer records the learner's answer for one habit.
func (s *Store) SetHabitQuizAnswer(habit domain.HabitID, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.HabitQuizAnswers[habit] = answer
	s.log.Debug("state: quiz answer for %s recorded", habit)
}

// SetSlideCompletion sets one slide's flag. Unknown slides are ignored so
// the key set stays fixed.
func (s *Store) SetSlideCompletion(slide domain.SlideID, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.IsSlide(slide) {
		s.log.Warn("state: ignoring completion for unknown slide %q", slide)
		return
	}
	if s.state.SlideCompletion[slide] != done {
		s.log.Info("state: slide %s complete=%v", slide, done)
	}
	s.state.SlideCompletion[slide] = done
}

// EvaluateSlide recomputes a slide's flag from the live state under the
// write lock and returns it. done must not call back into the store.
func (s *Store) EvaluateSlide(slide domain.SlideID, done func(domain.UserState) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.IsSlide(slide) {
		s.log.Warn("state: ignoring completion for unknown slide %q", slide)
		return false
	}
	v := done(s.state)
	if s.state.SlideCompletion[slide] != v {
		s.log.Info("state: slide %s complete=%v", slide, v)
	}
	s.state.SlideCompletion[slide] = v
	return v
}
