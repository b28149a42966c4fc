// Package lesson holds the lesson content: slide scripts, hints, habit
// quizzes and the food menus each mission offers.
package lesson

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Content is the overridable lesson data. The YAML file uses the same shape.
type Content struct {
	Scripts        map[domain.SlideID]string `yaml:"scripts"`
	Hints          map[domain.SlideID]string `yaml:"hints"`
	Quizzes        map[domain.HabitID]Quiz   `yaml:"quizzes"`
	DashboardFoods []domain.FoodItem         `yaml:"dashboard_foods"`
	MealFoods      []domain.MealFood         `yaml:"meal_foods"`
	SugarFoods     []domain.FoodItem         `yaml:"sugar_foods"`
	MealIdeas      []string                  `yaml:"meal_ideas"`
	Celebrations   []string                  `yaml:"celebrations"`
}

// Catalog serves lesson content. Safe for concurrent reads while a reload
// is applied.
type Catalog struct {
	mu      sync.RWMutex
	content Content
	log     *logger.Logger
}

// NewCatalog creates a catalog preloaded with the built-in lesson.
func NewCatalog(log *logger.Logger) *Catalog {
	return &Catalog{content: defaults(), log: log}
}

// Script returns the base narration for a slide.
func (c *Catalog) Script(slide domain.SlideID) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.content.Scripts[slide]
}

// Hint returns the nudge spoken when the learner is stuck on a slide.
func (c *Catalog) Hint(slide domain.SlideID) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.content.Hints[slide]
}

// Quiz returns the habit quiz.
func (c *Catalog) Quiz(habit domain.HabitID) (Quiz, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q, ok := c.content.Quizzes[habit]
	if !ok {
		return Quiz{}, domain.ErrUnknownHabit
	}
	return q, nil
}

// DashboardFoods returns the quick-add menu for the fuel dashboard.
func (c *Catalog) DashboardFoods() []domain.FoodItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.FoodItem(nil), c.content.DashboardFoods...)
}

// MealFoods returns the meal-builder buttons.
func (c *Catalog) MealFoods() []domain.MealFood {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.MealFood(nil), c.content.MealFoods...)
}

// SugarFoods returns the sugar-lab menu.
func (c *Catalog) SugarFoods() []domain.FoodItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.FoodItem(nil), c.content.SugarFoods...)
}

// MealIdeas returns the canned meal ideas.
func (c *Catalog) MealIdeas() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.content.MealIdeas...)
}

// Celebration returns a random canned celebration line.
func (c *Catalog) Celebration() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.content.Celebrations) == 0 {
		return ""
	}
	return c.content.Celebrations[rand.Intn(len(c.content.Celebrations))]
}

// FindFood looks a food up by id or case-insensitive name.
func FindFood(foods []domain.FoodItem, query string) (domain.FoodItem, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return domain.FoodItem{}, false
	}
	for _, f := range foods {
		if strings.ToLower(f.ID) == q || strings.ToLower(f.Name) == q {
			return f, true
		}
	}
	// Fall back to a prefix match so "greek" finds "Greek Yogurt".
	for _, f := range foods {
		if strings.HasPrefix(strings.ToLower(f.Name), q) {
			return f, true
		}
	}
	return domain.FoodItem{}, false
}

// FindMealFood looks a meal-builder food up by case-insensitive name or
// name prefix.
func FindMealFood(foods []domain.MealFood, query string) (domain.MealFood, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return domain.MealFood{}, false
	}
	for _, f := range foods {
		if strings.ToLower(f.Name) == q {
			return f, true
		}
	}
	for _, f := range foods {
		if strings.HasPrefix(strings.ToLower(f.Name), q) {
			return f, true
		}
	}
	return domain.MealFood{}, false
}

// overlay replaces every section present in next. Map sections merge per
// key so a file can override a single script.
func (c *Catalog) overlay(next Content) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := &c.content
	for k, v := range next.Scripts {
		cur.Scripts[k] = v
	}
	for k, v := range next.Hints {
		cur.Hints[k] = v
	}
	for k, v := range next.Quizzes {
		cur.Quizzes[k] = v
	}
	if len(next.DashboardFoods) > 0 {
		cur.DashboardFoods = next.DashboardFoods
	}
	if len(next.MealFoods) > 0 {
		cur.MealFoods = next.MealFoods
	}
	if len(next.SugarFoods) > 0 {
		cur.SugarFoods = next.SugarFoods
	}
	if len(next.MealIdeas) > 0 {
		cur.MealIdeas = next.MealIdeas
	}
	if len(next.Celebrations) > 0 {
		cur.Celebrations = next.Celebrations
	}
}
