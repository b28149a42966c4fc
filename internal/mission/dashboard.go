package mission

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/fuelquest/internal/completion"
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/state"
)

// Dashboard is the fuel dashboard: name, weight and today's foods.
type Dashboard struct {
	store Store
	menu  Menu
	cues  domain.CuePlayer
	log   *logger.Logger
}

// NewDashboard creates the dashboard mission.
func NewDashboard(store Store, menu Menu, cues domain.CuePlayer, log *logger.Logger) *Dashboard {
	return &Dashboard{store: store, menu: menu, cues: cues, log: log}
}

// SetName records the learner's name.
func (d *Dashboard) SetName(name string) {
	d.store.SetUserName(strings.TrimSpace(name))
	d.cues.Play(domain.CueClick)
	d.evaluate()
}

// SetWeight records the weight in pounds. The store derives kilograms and
// the protein target.
func (d *Dashboard) SetWeight(lbs float64) {
	d.store.UpdateDashboard(state.DashboardUpdate{WeightLbs: &lbs})
	d.cues.Play(domain.CueClick)
	d.evaluate()
}

// AddFood adds a menu food by id or name.
func (d *Dashboard) AddFood(query string) (domain.FoodItem, error) {
	f, ok := lesson.FindFood(d.menu.DashboardFoods(), query)
	if !ok {
		return domain.FoodItem{}, fmt.Errorf("food %q: %w", query, domain.ErrNotFound)
	}
	d.AddCustomFood(f)
	return f, nil
}

// AddCustomFood adds a food that is not on the menu, such as one looked up
// by the coach.
func (d *Dashboard) AddCustomFood(f domain.FoodItem) {
	d.store.AddDashboardFood(f)
	d.cues.Play(domain.CueClick)
	d.log.Debug("mission: dashboard added %s", f.Name)
	d.evaluate()
}

// Reset clears today's foods. Name and weight stay.
func (d *Dashboard) Reset() {
	d.store.UpdateDashboard(state.DashboardUpdate{Foods: []domain.FoodItem{}})
	d.cues.Play(domain.CueClick)
	d.evaluate()
}

func (d *Dashboard) evaluate() {
	d.store.EvaluateSlide(domain.SlideDashboard, completion.Dashboard)
}
