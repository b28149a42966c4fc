package state

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

func newTestStore() *Store {
	return NewStore(logger.New(logger.LevelOff, nil))
}

func ptr[T any](v T) *T { return &v }

func TestInitialState(t *testing.T) {
	s := newTestStore()
	snap := s.Snapshot()

	want := map[domain.SlideID]bool{
		domain.SlideDashboard: false,
		domain.SlideProtein:   false,
		domain.SlideCreatine:  false,
		domain.SlideSugar:     false,
		domain.SlideStrategy:  false,
	}
	if diff := cmp.Diff(want, snap.SlideCompletion); diff != "" {
		t.Fatalf("completion keys mismatch (-want +got):\n%s", diff)
	}
	if snap.WeightLbs != nil || snap.ProteinTarget != nil {
		t.Fatal("expected no weight or target initially")
	}
	if snap.Creatine.BatteryLevel != domain.BatteryBaseline {
		t.Fatalf("expected battery %v, got %v", domain.BatteryBaseline, snap.Creatine.BatteryLevel)
	}
}

func TestDashboardDerivedFields(t *testing.T) {
	tests := []struct {
		name       string
		lbs        float64
		wantTarget *int
	}{
		{"100 lbs", 100, ptr(73)},
		{"80 lbs", 80, ptr(58)},
		{"zero weight has no target", 0, nil},
		{"negative weight accepted without target", -10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			s.UpdateDashboard(DashboardUpdate{WeightLbs: ptr(tt.lbs)})
			snap := s.Snapshot()

			if snap.WeightLbs == nil || *snap.WeightLbs != tt.lbs {
				t.Fatalf("expected weight %v, got %v", tt.lbs, snap.WeightLbs)
			}
			if snap.WeightKg == nil || *snap.WeightKg != tt.lbs/LbsPerKg {
				t.Fatalf("expected kg %v, got %v", tt.lbs/LbsPerKg, snap.WeightKg)
			}
			if diff := cmp.Diff(tt.wantTarget, snap.ProteinTarget); diff != "" {
				t.Fatalf("target mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDashboardTotalsFollowFoods(t *testing.T) {
	s := newTestStore()
	foods := []domain.FoodItem{
		{ID: "eggs", Name: "Eggs", Calories: 140, Protein: 12, Carbs: 1},
		{ID: "oats", Name: "Oatmeal", Calories: 150, Protein: 5, Carbs: 27},
	}
	s.UpdateDashboard(DashboardUpdate{Foods: foods})

	want := domain.Totals{Calories: 290, Protein: 17, Carbs: 28}
	if diff := cmp.Diff(want, s.Snapshot().DashboardTotals); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}

	// Resetting to an empty list zeroes the totals.
	s.UpdateDashboard(DashboardUpdate{Foods: []domain.FoodItem{}})
	if got := s.Snapshot().DashboardTotals; got != (domain.Totals{}) {
		t.Fatalf("expected zero totals after reset, got %+v", got)
	}
}

func TestMergePreservesOmittedFields(t *testing.T) {
	s := newTestStore()
	s.UpdateCreatine(CreatineUpdate{Round80Score: &domain.Score{Correct: 3, Wrong: 2}})
	s.UpdateCreatine(CreatineUpdate{BatteryLevel: ptr(100.0)})

	c := s.Snapshot().Creatine
	if c.Round80Score == nil || c.Round80Score.Correct != 3 {
		t.Fatalf("round80 score lost after battery update: %+v", c.Round80Score)
	}
	if c.BatteryLevel != 100 {
		t.Fatalf("expected battery 100, got %v", c.BatteryLevel)
	}

	s.UpdateDashboard(DashboardUpdate{WeightLbs: ptr(120.0)})
	s.UpdateDashboard(DashboardUpdate{Foods: []domain.FoodItem{{ID: "milk", Protein: 8}}})
	snap := s.Snapshot()
	if snap.WeightLbs == nil || *snap.WeightLbs != 120 {
		t.Fatal("weight lost after foods-only update")
	}

	s.SetUserName("Max")
	s.SetHabitQuizAnswer(domain.HabitSmoothie, "protein and greens")
	s.SetHabitQuizAnswer(domain.HabitYogurt, "lots of protein")
	snap = s.Snapshot()
	if snap.HabitQuizAnswers[domain.HabitSmoothie] != "protein and greens" {
		t.Fatal("first quiz answer lost after second answer")
	}
	if snap.UserName != "Max" || len(snap.DashboardFoods) != 1 {
		t.Fatal("unrelated fields changed")
	}
}

func TestUpdatesAreIdempotent(t *testing.T) {
	s := newTestStore()
	apply := func() {
		s.SetUserName("Ada")
		s.UpdateDashboard(DashboardUpdate{WeightLbs: ptr(90.0), Foods: []domain.FoodItem{{ID: "tofu", Protein: 10}}})
		s.UpdateProteinMeal(domain.Macros{Protein: 30, Fat: 10, Carbs: 20, Calories: 290})
		s.SetEquippedHabits([]domain.HabitID{domain.HabitSmoothie, domain.HabitYogurt})
		s.UpdateCreatine(CreatineUpdate{CreatineGrams: ptr(5.0), Attempts100: ptr(1)})
		s.SetSlideCompletion(domain.SlideDashboard, true)
	}

	apply()
	first := s.Snapshot()
	apply()
	second := s.Snapshot()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("state changed on repeated updates (-first +second):\n%s", diff)
	}
}

func TestEquippedHabitsDedupAndFilter(t *testing.T) {
	s := newTestStore()
	s.SetEquippedHabits([]domain.HabitID{
		domain.HabitYogurt, "pizza", domain.HabitYogurt, domain.HabitActivity,
	})

	want := []domain.HabitID{domain.HabitYogurt, domain.HabitActivity}
	if diff := cmp.Diff(want, s.Snapshot().EquippedHabits); diff != "" {
		t.Fatalf("habits mismatch (-want +got):\n%s", diff)
	}
}

func TestCompletionKeysAreFixed(t *testing.T) {
	s := newTestStore()
	s.SetSlideCompletion("bonus", true)
	s.SetSlideCompletion(domain.SlideSugar, true)

	snap := s.Snapshot()
	if len(snap.SlideCompletion) != 5 {
		t.Fatalf("expected 5 completion keys, got %d", len(snap.SlideCompletion))
	}
	if _, ok := snap.SlideCompletion["bonus"]; ok {
		t.Fatal("unknown slide key was added")
	}
	if !s.IsComplete(domain.SlideSugar) {
		t.Fatal("expected sugar complete")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := newTestStore()
	s.UpdateDashboard(DashboardUpdate{WeightLbs: ptr(100.0), Foods: []domain.FoodItem{{ID: "a", Name: "A"}}})
	s.UpdateCreatine(CreatineUpdate{Round100Score: &domain.Score{Correct: 4}})

	snap := s.Snapshot()
	*snap.WeightLbs = 1
	snap.DashboardFoods[0].Name = "changed"
	snap.Creatine.Round100Score.Correct = 0
	snap.SlideCompletion[domain.SlideDashboard] = true

	fresh := s.Snapshot()
	if *fresh.WeightLbs != 100 {
		t.Fatal("weight mutated through snapshot")
	}
	if fresh.DashboardFoods[0].Name != "A" {
		t.Fatal("food mutated through snapshot")
	}
	if fresh.Creatine.Round100Score.Correct != 4 {
		t.Fatal("score mutated through snapshot")
	}
	if fresh.SlideCompletion[domain.SlideDashboard] {
		t.Fatal("completion mutated through snapshot")
	}
}

func TestConcurrentAppendsAreNotLost(t *testing.T) {
	s := newTestStore()
	habits := domain.Habits()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AddDashboardFood(domain.FoodItem{ID: "egg", Protein: 6})
		}()
		go func() {
			defer wg.Done()
			s.EquipHabit(habits[i%len(habits)])
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if len(snap.DashboardFoods) != 50 || snap.DashboardTotals.Protein != 300 {
		t.Fatalf("got %d foods, %.0fg protein", len(snap.DashboardFoods), snap.DashboardTotals.Protein)
	}
	if len(snap.EquippedHabits) != len(habits) {
		t.Fatalf("expected every habit once, got %v", snap.EquippedHabits)
	}
}

func TestEquipAndUnequipHabit(t *testing.T) {
	s := newTestStore()

	before, after := s.EquipHabit(domain.HabitYogurt)
	if len(before) != 0 || len(after) != 1 {
		t.Fatalf("equip: before=%v after=%v", before, after)
	}
	if _, after := s.EquipHabit(domain.HabitYogurt); len(after) != 1 {
		t.Fatalf("equipping twice duplicated the habit: %v", after)
	}
	if _, after := s.EquipHabit("pizza"); len(after) != 1 {
		t.Fatalf("unknown habit was equipped: %v", after)
	}
	s.EquipHabit(domain.HabitCreatine)

	_, after = s.UnequipHabit(domain.HabitYogurt)
	if diff := cmp.Diff([]domain.HabitID{domain.HabitCreatine}, after); diff != "" {
		t.Fatalf("unequip mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateSlide(t *testing.T) {
	s := newTestStore()
	s.AddSugarFood(domain.FoodItem{ID: "apple"})

	got := s.EvaluateSlide(domain.SlideSugar, func(st domain.UserState) bool { return len(st.SugarFoods) == 1 })
	if !got || !s.IsComplete(domain.SlideSugar) {
		t.Fatal("expected sugar complete")
	}
	if s.EvaluateSlide("bonus", func(domain.UserState) bool { return true }) {
		t.Fatal("unknown slide must not evaluate")
	}
}
