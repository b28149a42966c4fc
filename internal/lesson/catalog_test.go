package lesson

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

func newTestCatalog() *Catalog {
	return NewCatalog(logger.New(logger.LevelOff, nil))
}

func TestDefaultsCoverEverySlideAndHabit(t *testing.T) {
	c := newTestCatalog()
	for _, s := range domain.Slides() {
		if c.Script(s) == "" {
			t.Fatalf("missing script for %s", s)
		}
		if c.Hint(s) == "" {
			t.Fatalf("missing hint for %s", s)
		}
	}
	for _, h := range domain.Habits() {
		q, err := c.Quiz(h)
		if err != nil {
			t.Fatalf("quiz %s: %v", h, err)
		}
		if q.Question == "" || len(q.Keywords) == 0 {
			t.Fatalf("incomplete quiz for %s: %+v", h, q)
		}
	}
	if len(c.MealFoods()) != 10 {
		t.Fatalf("expected 10 meal foods, got %d", len(c.MealFoods()))
	}
}

func TestQuizUnknownHabit(t *testing.T) {
	_, err := newTestCatalog().Quiz("pizza")
	if !errors.Is(err, domain.ErrUnknownHabit) {
		t.Fatalf("expected ErrUnknownHabit, got %v", err)
	}
}

func TestQuizMatches(t *testing.T) {
	q := Quiz{Keywords: []string{"Protein", "greens"}}

	tests := []struct {
		answer string
		want   bool
	}{
		{"it has PROTEIN", true},
		{"hidden greens!", true},
		{"sugar", false},
		{"   ", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := q.Matches(tt.answer); got != tt.want {
				t.Fatalf("Matches(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestFindFood(t *testing.T) {
	foods := newTestCatalog().SugarFoods()

	tests := []struct {
		query  string
		wantID string
		wantOK bool
	}{
		{"oatmeal", "oatmeal", true},
		{"Gummy Bears", "gummy-bears", true},
		{"greek", "greek-yogurt", true},
		{"pizza", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			f, ok := FindFood(foods, tt.query)
			if ok != tt.wantOK || f.ID != tt.wantID {
				t.Fatalf("FindFood(%q) = %q, %v; want %q, %v", tt.query, f.ID, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestFindMealFood(t *testing.T) {
	foods := newTestCatalog().MealFoods()
	f, ok := FindMealFood(foods, "pea")
	if !ok || f.Name != "Pea Protein" {
		t.Fatalf("expected Pea Protein, got %q %v", f.Name, ok)
	}
	if _, ok := FindMealFood(foods, "steak"); ok {
		t.Fatal("expected no match")
	}
}

func TestMenusAreCopies(t *testing.T) {
	c := newTestCatalog()
	foods := c.DashboardFoods()
	foods[0].Name = "changed"
	if c.DashboardFoods()[0].Name == "changed" {
		t.Fatal("menu mutated through returned slice")
	}
}

const overrideYAML = `
scripts:
  sugar: "Custom sugar script."
meal_ideas:
  - "Tofu scramble"
`

func TestLoadFileOverlays(t *testing.T) {
	c := newTestCatalog()
	path := filepath.Join(t.TempDir(), "lesson.yaml")
	if err := os.WriteFile(path, []byte(overrideYAML), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	protein := c.Script(domain.SlideProtein)
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := c.Script(domain.SlideSugar); got != "Custom sugar script." {
		t.Fatalf("sugar script not replaced: %q", got)
	}
	if c.Script(domain.SlideProtein) != protein {
		t.Fatal("untouched script changed")
	}
	if ideas := c.MealIdeas(); len(ideas) != 1 || ideas[0] != "Tofu scramble" {
		t.Fatalf("meal ideas not replaced: %v", ideas)
	}
	if len(c.SugarFoods()) == 0 {
		t.Fatal("absent section should keep defaults")
	}
}

func TestLoadFileRejectsBadContent(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown slide", "scripts:\n  bonus: hi\n"},
		{"unknown habit", "quizzes:\n  pizza:\n    question: q\n    keywords: [a]\n"},
		{"quiz without keywords", "quizzes:\n  yogurt:\n    question: q\n"},
		{"bad category", "sugar_foods:\n  - name: Cake\n    category: dessert\n"},
		{"not yaml", "scripts: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCatalog()
			path := filepath.Join(t.TempDir(), "lesson.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("writing file: %v", err)
			}
			if err := c.LoadFile(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if err := newTestCatalog().LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	c := newTestCatalog()
	path := filepath.Join(t.TempDir(), "lesson.yaml")
	if err := os.WriteFile(path, []byte("hints:\n  sugar: first\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx, path) }()

	deadline := time.Now().Add(3 * time.Second)
	for c.Hint(domain.SlideSugar) != "second" {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("watch did not pick up the change")
		}
		// Rewrite until the watcher is registered and sees an event.
		_ = os.WriteFile(path, []byte("hints:\n  sugar: second\n"), 0o644)
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watch returned %v", err)
	}
}

func TestWatchSurvivesRenameSaves(t *testing.T) {
	c := newTestCatalog()
	dir := t.TempDir()
	path := filepath.Join(dir, "lesson.yaml")
	if err := os.WriteFile(path, []byte("hints:\n  sugar: first\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	// saveByRename writes a temp file and moves it over the lesson file.
	saveByRename := func(hint string) {
		tmp := filepath.Join(dir, ".lesson.yaml.swp")
		_ = os.WriteFile(tmp, []byte("hints:\n  sugar: "+hint+"\n"), 0o644)
		_ = os.Rename(tmp, path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx, path) }()

	for _, hint := range []string{"second", "third"} {
		deadline := time.Now().Add(3 * time.Second)
		for c.Hint(domain.SlideSugar) != hint {
			if time.Now().After(deadline) {
				cancel()
				t.Fatalf("watch did not pick up %q", hint)
			}
			saveByRename(hint)
			time.Sleep(50 * time.Millisecond)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watch returned %v", err)
	}
}
