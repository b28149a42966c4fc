// Package mission implements the interactive part of each slide. Every
// mutating call updates the mission's local state, re-runs the slide's
// completion predicate and writes both to the store before returning.
package mission

import (
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/state"
)

// Store is the part of the state store missions write to.
type Store interface {
	Snapshot() domain.UserState
	SetUserName(name string)
	UpdateDashboard(u state.DashboardUpdate)
	UpdateProteinMeal(m domain.Macros)
	AddDashboardFood(f domain.FoodItem)
	SetSugarFoods(foods []domain.FoodItem)
	AddSugarFood(f domain.FoodItem) (before, after []domain.FoodItem)
	EquipHabit(h domain.HabitID) (before, after []domain.HabitID)
	UnequipHabit(h domain.HabitID) (before, after []domain.HabitID)
	UpdateCreatine(u state.CreatineUpdate)
	SetHabitQuizAnswer(habit domain.HabitID, answer string)
	SetSlideCompletion(slide domain.SlideID, done bool)
	EvaluateSlide(slide domain.SlideID, done func(domain.UserState) bool) bool
}

var _ Store = (*state.Store)(nil)

// Menu lists the foods each mission offers. lesson.Catalog satisfies it.
type Menu interface {
	DashboardFoods() []domain.FoodItem
	MealFoods() []domain.MealFood
	SugarFoods() []domain.FoodItem
}

var _ Menu = (*lesson.Catalog)(nil)
