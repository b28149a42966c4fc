package domain

// SlideID names one mission of the lesson.
type SlideID string

const (
	SlideDashboard SlideID = "dashboard"
	SlideProtein   SlideID = "protein"
	SlideCreatine  SlideID = "creatine"
	SlideSugar     SlideID = "sugar"
	SlideStrategy  SlideID = "strategy"
)

var slideOrder = []SlideID{
	SlideDashboard,
	SlideProtein,
	SlideCreatine,
	SlideSugar,
	SlideStrategy,
}

// Slides returns the lesson order.
func Slides() []SlideID {
	return append([]SlideID(nil), slideOrder...)
}

// IsSlide reports whether id is one of the fixed slides.
func IsSlide(id SlideID) bool {
	for _, s := range slideOrder {
		if s == id {
			return true
		}
	}
	return false
}

// Title returns the on-screen mission title.
func (s SlideID) Title() string {
	switch s {
	case SlideDashboard:
		return "Fuel Dashboard"
	case SlideProtein:
		return "The Anabolic Threshold"
	case SlideCreatine:
		return "The Brain Battery"
	case SlideSugar:
		return "Energy Management"
	case SlideStrategy:
		return "Daily Loadout"
	default:
		return string(s)
	}
}

// HabitID names one of the strategy-mission habits.
type HabitID string

const (
	HabitSmoothie HabitID = "smoothie"
	HabitYogurt   HabitID = "yogurt"
	HabitCreatine HabitID = "creatine"
	HabitActivity HabitID = "activity"
)

var habitOrder = []HabitID{HabitSmoothie, HabitYogurt, HabitCreatine, HabitActivity}

// Habits returns the four fixed habits.
func Habits() []HabitID {
	return append([]HabitID(nil), habitOrder...)
}

// IsHabit reports whether id is one of the fixed habits.
func IsHabit(id HabitID) bool {
	for _, h := range habitOrder {
		if h == id {
			return true
		}
	}
	return false
}
