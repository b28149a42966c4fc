package domain

// UserState is everything the learner has entered or unlocked during one
// run. It is owned by the state store; consumers only see copies.
type UserState struct {
	UserName string

	WeightLbs     *float64
	WeightKg      *float64
	ProteinTarget *int

	DashboardFoods  []FoodItem
	DashboardTotals Totals

	ProteinMealMacros Macros

	SugarFoods []FoodItem

	Creatine CreatineState

	EquippedHabits   []HabitID
	HabitQuizAnswers map[HabitID]string

	SlideCompletion map[SlideID]bool
}

// NewUserState returns the initial all-empty state with every slide
// marked incomplete.
func NewUserState() UserState {
	completion := make(map[SlideID]bool, len(slideOrder))
	for _, id := range slideOrder {
		completion[id] = false
	}
	return UserState{
		Creatine:         CreatineState{BatteryLevel: BatteryBaseline},
		HabitQuizAnswers: make(map[HabitID]string),
		SlideCompletion:  completion,
	}
}

// Clone returns a deep copy. Pointer fields are re-allocated so the copy
// shares nothing with the original.
func (s UserState) Clone() UserState {
	out := s
	out.WeightLbs = cloneFloat(s.WeightLbs)
	out.WeightKg = cloneFloat(s.WeightKg)
	if s.ProteinTarget != nil {
		v := *s.ProteinTarget
		out.ProteinTarget = &v
	}
	out.DashboardFoods = append([]FoodItem(nil), s.DashboardFoods...)
	out.SugarFoods = append([]FoodItem(nil), s.SugarFoods...)
	out.EquippedHabits = append([]HabitID(nil), s.EquippedHabits...)
	out.Creatine = s.Creatine.Clone()

	out.HabitQuizAnswers = make(map[HabitID]string, len(s.HabitQuizAnswers))
	for k, v := range s.HabitQuizAnswers {
		out.HabitQuizAnswers[k] = v
	}
	out.SlideCompletion = make(map[SlideID]bool, len(s.SlideCompletion))
	for k, v := range s.SlideCompletion {
		out.SlideCompletion[k] = v
	}
	return out
}

// HasHabit reports whether the habit is equipped.
func (s UserState) HasHabit(id HabitID) bool {
	for _, h := range s.EquippedHabits {
		if h == id {
			return true
		}
	}
	return false
}

// CompletedSlides returns the completed slide ids in lesson order.
func (s UserState) CompletedSlides() []SlideID {
	var out []SlideID
	for _, id := range slideOrder {
		if s.SlideCompletion[id] {
			out = append(out, id)
		}
	}
	return out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// FoodItem is a food the learner added to one of the missions. Sugar-lab
// items also carry their glycemic shape. Values never change once added.
type FoodItem struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Emoji    string       `yaml:"emoji,omitempty"`
	Calories float64      `yaml:"calories"`
	Protein  float64      `yaml:"protein"`
	Carbs    float64      `yaml:"carbs"`
	Spike    float64      `yaml:"spike,omitempty"`
	Duration float64      `yaml:"duration,omitempty"`
	Category FoodCategory `yaml:"category,omitempty"`
}

// FoodCategory is the glycemic tag of a sugar-lab food.
type FoodCategory string

const (
	CategorySugar FoodCategory = "sugar"
	CategoryCarb  FoodCategory = "carb"
	CategoryGood  FoodCategory = "good"
)

// CountCategory returns how many foods carry the given tag.
func CountCategory(foods []FoodItem, c FoodCategory) int {
	n := 0
	for _, f := range foods {
		if f.Category == c {
			n++
		}
	}
	return n
}

// Totals is the running sum over the dashboard foods.
type Totals struct {
	Calories float64
	Protein  float64
	Carbs    float64
}

// SumFoods folds a food list into totals.
func SumFoods(foods []FoodItem) Totals {
	var t Totals
	for _, f := range foods {
		t.Calories += f.Calories
		t.Protein += f.Protein
		t.Carbs += f.Carbs
	}
	return t
}

// Macros is a meal-builder snapshot.
type Macros struct {
	Protein  float64
	Fat      float64
	Carbs    float64
	Calories float64
}

// MealFood is one button in the meal builder.
type MealFood struct {
	Name    string  `yaml:"name"`
	Emoji   string  `yaml:"emoji,omitempty"`
	Protein float64 `yaml:"protein"`
	Fat     float64 `yaml:"fat"`
	Carbs   float64 `yaml:"carbs"`
}

// Battery levels for the creatine mission.
const (
	BatteryBaseline = 80.0
	BatteryFull     = 100.0
)

// Score is the result of one math-challenge round.
type Score struct {
	Correct int
	Wrong   int
}

// CreatineState tracks the brain-battery mission.
type CreatineState struct {
	BatteryLevel  float64
	CreatineGrams float64
	Round80Score  *Score
	Round100Score *Score
	// Attempts100 counts completed rounds played at full battery.
	Attempts100 int
}

// Clone returns a deep copy.
func (c CreatineState) Clone() CreatineState {
	out := c
	if c.Round80Score != nil {
		v := *c.Round80Score
		out.Round80Score = &v
	}
	if c.Round100Score != nil {
		v := *c.Round100Score
		out.Round100Score = &v
	}
	return out
}
