package main

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/fuelquest/internal/coach"
	"github.com/hammamikhairi/fuelquest/internal/conversation"
	"github.com/hammamikhairi/fuelquest/internal/display"
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/engine"
	"github.com/hammamikhairi/fuelquest/internal/gpt"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/mission"
	"github.com/hammamikhairi/fuelquest/internal/nudge"
	"github.com/hammamikhairi/fuelquest/internal/speech"
	"github.com/hammamikhairi/fuelquest/internal/state"
)

// newTestApp wires the app the way main does, with every external
// collaborator offline.
func newTestApp(t *testing.T, opts ...engine.Option) *cliApp {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := state.NewStore(log)
	catalog := lesson.NewCatalog(log)
	agent := gpt.NewAgent(gpt.Offline{}, log)
	noop := speech.NewNoOp(log)
	cues := speech.NoCues{}

	a := &cliApp{
		store:    store,
		catalog:  catalog,
		agent:    agent,
		parser:   conversation.NewKeywordParser(log),
		cues:     cues,
		voice:    noop,
		listener: noop,
		voiceCh:  make(chan string, 1),
		timeout:  time.Second,
		log:      log,
		ctx:      context.Background(),
	}
	a.engine = engine.New(store, cues, log, append(opts, engine.WithOnTransition(a.onTransition))...)
	a.ui = display.NewUI(a.status)
	text := conversation.NewCLINotifier(log, a.ui.Printf)
	a.notifier = speech.NewSpeakingNotifier(text, noop, log)
	a.coach = coach.New(gpt.NewPersonalizer(gpt.Offline{}, catalog, log), agent, store, text, noop, log)
	t.Cleanup(a.coach.Close)

	a.dashboard = mission.NewDashboard(store, catalog, cues, log)
	a.meal = mission.NewMealBuilder(store, catalog, cues, log)
	a.battery = mission.NewBattery(store, cues, log)
	a.sugar = mission.NewSugarLab(store, catalog, cues, log)
	a.loadout = mission.NewLoadout(store, catalog, agent, cues, log)
	a.nudge = nudge.NewWatcher(a.engine, store, catalog, text, noop, log)
	a.bestLevel = a.engine.Rank(false).Level
	return a
}

// send parses and dispatches one line of input.
func (a *cliApp) send(t *testing.T, input string) bool {
	t.Helper()
	intent, err := a.parser.Parse(context.Background(), input, a.engine.Current())
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return a.handleIntent(context.Background(), intent)
}

func TestDashboardUnlocksProtein(t *testing.T) {
	a := newTestApp(t)

	a.send(t, "name Sam")
	a.send(t, "weight 100")
	a.send(t, "next")
	if got := a.engine.Current(); got != domain.SlideDashboard {
		t.Fatalf("next should be blocked, on %s", got)
	}
	if !a.status().Slides[1].Locked {
		t.Fatal("protein should be locked before the dashboard is done")
	}

	a.send(t, "add greek yogurt")
	if got := a.store.Snapshot().DashboardTotals.Protein; got != 17 {
		t.Fatalf("protein total = %v, want 17", got)
	}
	a.send(t, "next")
	if got := a.engine.Current(); got != domain.SlideProtein {
		t.Fatalf("expected protein slide, on %s", got)
	}
	if a.bestLevel != 2 {
		t.Errorf("bestLevel = %d, want 2", a.bestLevel)
	}

	a.send(t, "back")
	if got := a.engine.Current(); got != domain.SlideDashboard {
		t.Fatalf("back should always work, on %s", got)
	}
}

func TestStatusLocksAfterFirstIncomplete(t *testing.T) {
	a := newTestApp(t)
	a.store.SetSlideCompletion(domain.SlideDashboard, true)
	a.store.SetSlideCompletion(domain.SlideSugar, true)

	var got []bool
	for _, s := range a.status().Slides {
		got = append(got, s.Locked)
	}
	want := []bool{false, false, true, true, true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("locked flags mismatch (-want +got):\n%s", diff)
	}
	if st := a.status(); st.Level != 1 || st.Title != "Recruit" || st.Current != 0 {
		t.Errorf("unexpected rank %+v", st)
	}
}

func TestCreatineDoseAndRound(t *testing.T) {
	a := newTestApp(t, engine.WithStartIndex(2))

	a.send(t, "dose 9")
	if got := a.store.Snapshot().Creatine.BatteryLevel; got != domain.BatteryFull {
		t.Fatalf("battery = %v, want full", got)
	}

	a.send(t, "round")
	if !a.battery.InRound() {
		t.Fatal("round should be running")
	}
	for i := 0; i < mission.RoundLength; i++ {
		a.send(t, "0")
	}
	if a.battery.InRound() {
		t.Fatal("round should be over")
	}
	if got := a.store.Snapshot().Creatine.Attempts100; got != 1 {
		t.Errorf("Attempts100 = %d, want 1", got)
	}
}

func TestStrategyQuizKeywordFallback(t *testing.T) {
	a := newTestApp(t, engine.WithStartIndex(4))

	a.send(t, "answer protein")
	if a.habit != "" {
		t.Fatal("no quiz should be pending")
	}

	a.send(t, "equip yogurt")
	if a.habit != domain.HabitYogurt {
		t.Fatalf("pending habit = %q", a.habit)
	}
	a.send(t, "answer double the protein")

	// Grading runs on a coach goroutine.
	deadline := time.Now().Add(2 * time.Second)
	for !a.store.Snapshot().HasHabit(domain.HabitYogurt) {
		if time.Now().After(deadline) {
			t.Fatal("yogurt should be equipped after a keyword match")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestQuitAndUnknown(t *testing.T) {
	a := newTestApp(t)
	if !a.send(t, "banana smoothie please") {
		t.Fatal("unknown input should not stop the app")
	}
	if a.send(t, "quit") {
		t.Fatal("quit should stop the app")
	}
}
