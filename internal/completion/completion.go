// Package completion holds the per-slide completion predicates. They are
// pure functions over the user state; missions call them after every local
// change and write the result to the store.
package completion

import "github.com/hammamikhairi/fuelquest/internal/domain"

// Protein meal targets.
const (
	MealProteinMin  = 30.0
	MealCarbsMin    = 20.0
	MealFatMax      = 25.0
	MealCaloriesMax = 500.0
)

// Creatine targets.
const (
	PerfectRound    = 5
	FullBatteryRuns = 2
)

// Evaluate runs the predicate for the given slide.
func Evaluate(slide domain.SlideID, s domain.UserState) bool {
	switch slide {
	case domain.SlideDashboard:
		return Dashboard(s)
	case domain.SlideProtein:
		return Protein(s.ProteinMealMacros)
	case domain.SlideCreatine:
		return Creatine(s.Creatine)
	case domain.SlideSugar:
		return Sugar(s.SugarFoods)
	case domain.SlideStrategy:
		return Strategy(s.EquippedHabits)
	default:
		return false
	}
}

// Dashboard is complete once a name, a weight and at least one food are in.
func Dashboard(s domain.UserState) bool {
	return s.UserName != "" && s.WeightLbs != nil && len(s.DashboardFoods) > 0
}

// Protein is complete when the meal hits both minimums without breaking
// either limit. All bounds are inclusive.
func Protein(m domain.Macros) bool {
	return m.Protein >= MealProteinMin &&
		m.Carbs >= MealCarbsMin &&
		m.Fat <= MealFatMax &&
		m.Calories <= MealCaloriesMax
}

// FatBlowout reports whether the meal is over the fat limit.
func FatBlowout(m domain.Macros) bool {
	return m.Fat > MealFatMax
}

// Creatine is complete after a perfect full-battery round or two completed
// full-battery attempts.
func Creatine(c domain.CreatineState) bool {
	if c.Round100Score != nil && c.Round100Score.Correct == PerfectRound {
		return true
	}
	return c.Attempts100 >= FullBatteryRuns
}

// Sugar is complete when the blood-sugar curve is classified good.
func Sugar(foods []domain.FoodItem) bool {
	return ClassifyCurve(foods) == CurveGood
}

// Strategy is complete when every habit is equipped.
func Strategy(habits []domain.HabitID) bool {
	have := make(map[domain.HabitID]bool, len(habits))
	for _, h := range habits {
		have[h] = true
	}
	for _, h := range domain.Habits() {
		if !have[h] {
			return false
		}
	}
	return true
}
