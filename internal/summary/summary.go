// Package summary renders the user state as plain-text context for the
// language model. Output is deterministic for a given state.
package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/fuelquest/internal/domain"
)

// NoData is returned by Summarize when nothing has been entered yet.
const NoData = "No user data entered yet."

// Summarize returns the full progress summary, one fact per line.
func Summarize(s domain.UserState) string {
	var parts []string

	if s.UserName != "" {
		parts = append(parts, "User's name: "+s.UserName)
	}

	if hasWeight(s) {
		parts = append(parts, fmt.Sprintf("User's weight: %s lbs (%.1f kg)", num(*s.WeightLbs), kg(s)))
		if s.ProteinTarget != nil {
			parts = append(parts, fmt.Sprintf("Calculated protein target: %dg daily", *s.ProteinTarget))
		}
	}

	if len(s.DashboardFoods) > 0 {
		t := s.DashboardTotals
		parts = append(parts,
			"Foods added today: "+names(s.DashboardFoods),
			fmt.Sprintf("Current totals: %s calories, %sg protein, %sg carbs", num(t.Calories), num(t.Protein), num(t.Carbs)),
		)
		if hasTarget(s) {
			if remaining := float64(*s.ProteinTarget) - t.Protein; remaining > 0 {
				parts = append(parts, fmt.Sprintf("Still needs %sg more protein to hit goal", num(remaining)))
			} else {
				parts = append(parts, "Protein goal achieved!")
			}
		}
	}

	if m := s.ProteinMealMacros; m.Calories > 0 {
		parts = append(parts, fmt.Sprintf("Current meal builder: %sg protein, %sg fat, %sg carbs, %s calories",
			num(m.Protein), num(m.Fat), num(m.Carbs), num(m.Calories)))
	}

	if len(s.SugarFoods) > 0 {
		parts = append(parts, "Sugar slide foods: "+names(s.SugarFoods))
		if n := domain.CountCategory(s.SugarFoods, domain.CategorySugar); n >= 2 {
			parts = append(parts, fmt.Sprintf("Warning: %d high-sugar items selected - risk of blood sugar crash!", n))
		}
	}

	if c := s.Creatine; c.CreatineGrams > 0 {
		parts = append(parts, fmt.Sprintf("Creatine dose: %sg (battery at %s%%)", num(c.CreatineGrams), num(c.BatteryLevel)))
		if c.Round80Score != nil {
			parts = append(parts, fmt.Sprintf("Math challenge at 80%% battery: %d/5 correct", c.Round80Score.Correct))
		}
		if c.Round100Score != nil {
			parts = append(parts, fmt.Sprintf("Math challenge at 100%% battery: %d/5 correct", c.Round100Score.Correct))
			if c.Round80Score != nil {
				if gain := c.Round100Score.Correct - c.Round80Score.Correct; gain > 0 {
					parts = append(parts, fmt.Sprintf("Improvement with creatine: +%d correct answers!", gain))
				}
			}
		}
	}

	if len(s.EquippedHabits) > 0 {
		parts = append(parts, "Equipped habits: "+habits(s.EquippedHabits))
		if len(s.EquippedHabits) == len(domain.Habits()) {
			parts = append(parts, "All habits equipped - mission ready!")
		}
	}

	if len(parts) == 0 {
		return NoData
	}
	return strings.Join(parts, "\n")
}

// ForSlide returns only the context relevant to one slide's script. An
// empty string means there is nothing worth personalizing.
func ForSlide(slide domain.SlideID, s domain.UserState) string {
	var parts []string

	if s.UserName != "" {
		parts = append(parts, "User's name: "+s.UserName)
	}

	switch slide {
	case domain.SlideProtein:
		if hasWeight(s) {
			parts = append(parts, fmt.Sprintf("Weight: %s lbs (%.1f kg)", num(*s.WeightLbs), kg(s)))
			if s.ProteinTarget != nil {
				parts = append(parts, fmt.Sprintf("Daily protein target: %dg", *s.ProteinTarget))
			}
		}
		if len(s.DashboardFoods) > 0 {
			parts = append(parts,
				"Foods they added in Mission 1: "+names(s.DashboardFoods),
				fmt.Sprintf("Current protein intake: %sg", num(s.DashboardTotals.Protein)),
			)
		}

	case domain.SlideCreatine:
		if hasTarget(s) {
			parts = append(parts, fmt.Sprintf("Their protein target is %dg", *s.ProteinTarget))
		}
		if p := s.ProteinMealMacros.Protein; p > 0 {
			parts = append(parts, fmt.Sprintf("In Mission 2, they built a meal with %sg protein", num(p)))
		}

	case domain.SlideSugar:
		c := s.Creatine
		if c.Round100Score != nil {
			low := 0
			if c.Round80Score != nil {
				low = c.Round80Score.Correct
			}
			high := c.Round100Score.Correct
			parts = append(parts, fmt.Sprintf("In the math challenge, they scored %d/5 at 80%% battery and %d/5 at 100%% battery", low, high))
			if high > low {
				parts = append(parts, fmt.Sprintf("They improved by %d correct answers with full creatine!", high-low))
			}
		}

	case domain.SlideStrategy:
		if p := s.DashboardTotals.Protein; p > 0 {
			parts = append(parts, fmt.Sprintf("Total protein logged today: %sg", num(p)))
		}
		if len(s.SugarFoods) > 0 {
			parts = append(parts, "Sugar lesson foods: "+names(s.SugarFoods))
		}
		if done := s.CompletedSlides(); len(done) > 0 {
			ids := make([]string, len(done))
			for i, d := range done {
				ids[i] = string(d)
			}
			parts = append(parts, "Completed missions: "+strings.Join(ids, ", "))
		}
	}

	return strings.Join(parts, "\n")
}

func hasWeight(s domain.UserState) bool {
	return s.WeightLbs != nil && *s.WeightLbs != 0
}

func kg(s domain.UserState) float64 {
	if s.WeightKg == nil {
		return 0
	}
	return *s.WeightKg
}

func names(foods []domain.FoodItem) string {
	out := make([]string, len(foods))
	for i, f := range foods {
		out[i] = f.Name
	}
	return strings.Join(out, ", ")
}

func habits(ids []domain.HabitID) string {
	out := make([]string, len(ids))
	for i, h := range ids {
		out[i] = string(h)
	}
	return strings.Join(out, ", ")
}

// hasTarget is false for a missing or zero protein target. A zero target
// comes from a tiny weight and cannot be "achieved".
func hasTarget(s domain.UserState) bool {
	return s.ProteinTarget != nil && *s.ProteinTarget > 0
}

// num prints whole numbers without a decimal point.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
