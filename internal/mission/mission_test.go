package mission

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/fuelquest/internal/completion"
	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/lesson"
	"github.com/hammamikhairi/fuelquest/internal/logger"
	"github.com/hammamikhairi/fuelquest/internal/state"
)

type cueRecorder struct {
	mu   sync.Mutex
	cues []domain.Cue
}

func (c *cueRecorder) Play(cue domain.Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cues = append(c.cues, cue)
}

func (c *cueRecorder) take() []domain.Cue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.cues
	c.cues = nil
	return out
}

type fixture struct {
	store   *state.Store
	catalog *lesson.Catalog
	cues    *cueRecorder
	log     *logger.Logger
}

func newFixture() fixture {
	log := logger.New(logger.LevelOff, nil)
	return fixture{
		store:   state.NewStore(log),
		catalog: lesson.NewCatalog(log),
		cues:    &cueRecorder{},
		log:     log,
	}
}

func TestDashboardCompletion(t *testing.T) {
	f := newFixture()
	d := NewDashboard(f.store, f.catalog, f.cues, f.log)

	d.SetName("Max")
	d.SetWeight(100)
	if f.store.IsComplete(domain.SlideDashboard) {
		t.Fatal("dashboard complete without food")
	}

	food, err := d.AddFood("greek yogurt")
	if err != nil {
		t.Fatalf("add food: %v", err)
	}
	if food.Protein != 17 {
		t.Fatalf("unexpected food %+v", food)
	}
	if !f.store.IsComplete(domain.SlideDashboard) {
		t.Fatal("expected dashboard complete")
	}

	snap := f.store.Snapshot()
	if snap.ProteinTarget == nil || *snap.ProteinTarget != 73 {
		t.Fatalf("unexpected target %v", snap.ProteinTarget)
	}

	d.Reset()
	if f.store.IsComplete(domain.SlideDashboard) {
		t.Fatal("reset should clear completion")
	}
}

func TestDashboardUnknownFood(t *testing.T) {
	f := newFixture()
	d := NewDashboard(f.store, f.catalog, f.cues, f.log)

	if _, err := d.AddFood("dragon fruit"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	d.AddCustomFood(domain.FoodItem{ID: "dragon-fruit", Name: "Dragon Fruit", Calories: 60, Carbs: 13})
	if got := f.store.Snapshot().DashboardTotals.Calories; got != 60 {
		t.Fatalf("expected 60 calories, got %v", got)
	}
}

func TestMealBuilderCuesAndCompletion(t *testing.T) {
	f := newFixture()
	b := NewMealBuilder(f.store, f.catalog, f.cues, f.log)

	m, err := b.Add("Ballerina Farm Whey")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if m.Calories != 4*24+4*2 {
		t.Fatalf("unexpected calories %v", m.Calories)
	}
	f.cues.take()

	// 36g protein, 32g carbs and 14g fat meets every target.
	m, _ = b.Add("Bean & Cheese Taco")
	if diff := cmp.Diff([]domain.Cue{domain.CueClick, domain.CueSuccess}, f.cues.take()); diff != "" {
		t.Fatalf("cues mismatch (-want +got):\n%s", diff)
	}
	if !f.store.IsComplete(domain.SlideProtein) {
		t.Fatalf("expected protein complete with %+v", m)
	}

	// 14 + 18 fat blows the limit: alarm once, completion lost.
	b.Add("Cheese Quesadilla")
	if diff := cmp.Diff([]domain.Cue{domain.CueClick, domain.CueAlarm}, f.cues.take()); diff != "" {
		t.Fatalf("cues mismatch (-want +got):\n%s", diff)
	}
	if f.store.IsComplete(domain.SlideProtein) {
		t.Fatal("fat blowout must clear completion")
	}

	b.Add("Almond Milk")
	if diff := cmp.Diff([]domain.Cue{domain.CueClick}, f.cues.take()); diff != "" {
		t.Fatalf("alarm should fire only once (-want +got):\n%s", diff)
	}

	b.Reset()
	if b.Macros() != (domain.Macros{}) || f.store.Snapshot().ProteinMealMacros != (domain.Macros{}) {
		t.Fatal("reset left macros behind")
	}
}

func TestMealBuilderCaps(t *testing.T) {
	f := newFixture()
	b := NewMealBuilder(f.store, f.catalog, f.cues, f.log)

	var m domain.Macros
	for i := 0; i < 5; i++ {
		m, _ = b.Add("Annie's Mac & Cheese")
	}
	want := domain.Macros{Protein: 45, Fat: 50, Carbs: 100}
	want.Calories = Calories(want)
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("macros mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < 5; i++ {
		m, _ = b.Add("Ballerina Farm Whey")
	}
	if m.Protein != MaxMealProtein {
		t.Fatalf("protein not capped: %v", m.Protein)
	}
}

func TestBatteryDose(t *testing.T) {
	tests := []struct {
		grams     float64
		wantLevel float64
	}{
		{0, 80},
		{2.5, 90},
		{5, 100},
		{9, 100},
		{-3, 80},
	}

	for _, tt := range tests {
		f := newFixture()
		b := NewBattery(f.store, f.cues, f.log)
		if got := b.SetDose(tt.grams); got != tt.wantLevel {
			t.Fatalf("SetDose(%v) = %v, want %v", tt.grams, got, tt.wantLevel)
		}
		if got := f.store.Snapshot().Creatine.BatteryLevel; got != tt.wantLevel {
			t.Fatalf("store battery = %v, want %v", got, tt.wantLevel)
		}
	}
}

func TestBatteryRoundsAndCompletion(t *testing.T) {
	f := newFixture()
	b := NewBattery(f.store, f.cues, f.log)

	b.RecordRound(2)
	c := f.store.Snapshot().Creatine
	if c.Round80Score == nil || c.Round80Score.Correct != 2 || c.Round80Score.Wrong != 3 {
		t.Fatalf("unexpected 80%% score %+v", c.Round80Score)
	}

	b.SetDose(5)
	b.RecordRound(3)
	if f.store.IsComplete(domain.SlideCreatine) {
		t.Fatal("one imperfect full round must not complete")
	}
	b.RecordRound(4)
	if !f.store.IsComplete(domain.SlideCreatine) {
		t.Fatal("two full rounds should complete")
	}
	if got := f.store.Snapshot().Creatine.Attempts100; got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestBatteryPartialChargeNotScored(t *testing.T) {
	f := newFixture()
	b := NewBattery(f.store, f.cues, f.log)
	b.SetDose(2)
	b.RecordRound(5)

	c := f.store.Snapshot().Creatine
	if c.Round80Score != nil || c.Round100Score != nil {
		t.Fatal("round at partial charge should not be stored")
	}
}

func TestMathRound(t *testing.T) {
	f := newFixture()
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	b := NewBattery(f.store, f.cues, f.log, WithRand(rand.New(rand.NewPCG(1, 2))), WithClock(clock))
	b.SetDose(5)

	r, err := b.StartRound()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if r.PerProblem != FullBatteryTime {
		t.Fatalf("expected %s per problem at full battery, got %s", FullBatteryTime, r.PerProblem)
	}
	if _, err := b.StartRound(); !errors.Is(err, ErrRoundActive) {
		t.Fatalf("expected ErrRoundActive, got %v", err)
	}

	for i, p := range r.Problems {
		now = now.Add(time.Second)
		answer := p.Answer
		if i == 0 {
			answer++ // one wrong answer
		}
		if i == 1 {
			now = now.Add(FullBatteryTime) // one late answer
		}
		out, err := b.Answer(answer)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if out.Done != (i == RoundLength-1) {
			t.Fatalf("unexpected done=%v at %d", out.Done, i)
		}
	}

	if b.InRound() {
		t.Fatal("round should be finished")
	}
	score := f.store.Snapshot().Creatine.Round100Score
	if score == nil || score.Correct != 3 {
		t.Fatalf("expected 3 correct, got %+v", score)
	}
	if _, err := b.Answer(1); !errors.Is(err, ErrNoRound) {
		t.Fatalf("expected ErrNoRound, got %v", err)
	}
}

func TestMathRoundLowBatteryIsFaster(t *testing.T) {
	f := newFixture()
	b := NewBattery(f.store, f.cues, f.log)
	r, err := b.StartRound()
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if want := FullBatteryTime * 80 / 100; r.PerProblem != want {
		t.Fatalf("expected %s per problem at 80%%, got %s", want, r.PerProblem)
	}
	b.Abort()
	if b.InRound() {
		t.Fatal("abort should end the round")
	}
}

func TestSugarLab(t *testing.T) {
	f := newFixture()
	l := NewSugarLab(f.store, f.catalog, f.cues, f.log)

	class, err := l.Add("oatmeal")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if class != completion.CurveGood || !f.store.IsComplete(domain.SlideSugar) {
		t.Fatalf("oatmeal should be good, got %s", class)
	}
	if diff := cmp.Diff([]domain.Cue{domain.CueClick, domain.CueSuccess}, f.cues.take()); diff != "" {
		t.Fatalf("cues mismatch (-want +got):\n%s", diff)
	}

	l.Add("soda")
	class, _ = l.Add("gummy bears")
	if class == completion.CurveGood || f.store.IsComplete(domain.SlideSugar) {
		t.Fatal("two sugars must not be good")
	}
	if len(l.Curve()) == 0 {
		t.Fatal("expected curve samples")
	}

	l.Reset()
	if len(f.store.Snapshot().SugarFoods) != 0 || l.Classification() != completion.CurveWarning {
		t.Fatal("reset should clear the plate")
	}

	if _, err := l.Add("pizza"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type keywordJudge struct{}

func (keywordJudge) Judge(_ context.Context, q lesson.Quiz, answer string) domain.Verdict {
	return domain.Verdict{Correct: q.Matches(answer), Message: "graded"}
}

func TestLoadout(t *testing.T) {
	f := newFixture()
	l := NewLoadout(f.store, f.catalog, keywordJudge{}, f.cues, f.log)
	ctx := context.Background()

	v, err := l.Answer(ctx, domain.HabitYogurt, "it tastes nicer")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if v.Correct || len(l.Equipped()) != 0 {
		t.Fatal("wrong answer equipped the habit")
	}
	if diff := cmp.Diff([]domain.Cue{domain.CueError}, f.cues.take()); diff != "" {
		t.Fatalf("cues mismatch (-want +got):\n%s", diff)
	}
	if got := f.store.Snapshot().HabitQuizAnswers[domain.HabitYogurt]; got != "it tastes nicer" {
		t.Fatalf("answer not stored: %q", got)
	}

	answers := map[domain.HabitID]string{
		domain.HabitYogurt:   "double the protein",
		domain.HabitSmoothie: "protein and spinach",
		domain.HabitCreatine: "my brain battery",
	}
	for _, h := range []domain.HabitID{domain.HabitYogurt, domain.HabitSmoothie, domain.HabitCreatine} {
		if v, _ := l.Answer(ctx, h, answers[h]); !v.Correct {
			t.Fatalf("%s answer rejected", h)
		}
	}
	if f.store.IsComplete(domain.SlideStrategy) {
		t.Fatal("three habits must not complete")
	}
	f.cues.take()

	l.Answer(ctx, domain.HabitActivity, "sixty minutes")
	if diff := cmp.Diff([]domain.Cue{domain.CueEquip, domain.CueLevelUp}, f.cues.take()); diff != "" {
		t.Fatalf("cues mismatch (-want +got):\n%s", diff)
	}
	if !f.store.IsComplete(domain.SlideStrategy) {
		t.Fatal("expected strategy complete")
	}

	if v, _ := l.Answer(ctx, domain.HabitActivity, "nope"); !v.Correct {
		t.Fatal("already equipped habit should stay equipped")
	}

	if err := l.Unequip(domain.HabitCreatine); err != nil {
		t.Fatalf("unequip: %v", err)
	}
	if f.store.IsComplete(domain.SlideStrategy) {
		t.Fatal("unequip should clear completion")
	}
	if err := l.Unequip("pizza"); !errors.Is(err, domain.ErrUnknownHabit) {
		t.Fatalf("expected ErrUnknownHabit, got %v", err)
	}
	if _, err := l.Answer(ctx, "pizza", "x"); !errors.Is(err, domain.ErrUnknownHabit) {
		t.Fatalf("expected ErrUnknownHabit, got %v", err)
	}
}

// gatedJudge holds a verdict back until its answer's gate is closed.
type gatedJudge struct {
	started chan string
	gates   map[string]chan struct{}
}

func (g *gatedJudge) Judge(ctx context.Context, q lesson.Quiz, answer string) domain.Verdict {
	g.started <- answer
	if gate, ok := g.gates[answer]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.Verdict{}
		}
	}
	return domain.Verdict{Correct: q.Matches(answer), Message: "graded"}
}

func TestLoadoutSlowVerdictKeepsLaterHabits(t *testing.T) {
	f := newFixture()
	slow := "protein and spinach"
	j := &gatedJudge{started: make(chan string, 2), gates: map[string]chan struct{}{slow: make(chan struct{})}}
	l := NewLoadout(f.store, f.catalog, j, f.cues, f.log)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := l.Answer(ctx, domain.HabitSmoothie, slow)
		done <- err
	}()
	<-j.started

	if v, err := l.Answer(ctx, domain.HabitYogurt, "double the protein"); err != nil || !v.Correct {
		t.Fatalf("yogurt answer: %+v, %v", v, err)
	}
	<-j.started
	close(j.gates[slow])
	if err := <-done; err != nil {
		t.Fatalf("smoothie answer: %v", err)
	}

	want := []domain.HabitID{domain.HabitYogurt, domain.HabitSmoothie}
	if diff := cmp.Diff(want, l.Equipped()); diff != "" {
		t.Fatalf("habits mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadoutCancelledVerdictChangesNothing(t *testing.T) {
	f := newFixture()
	slow := "protein and spinach"
	j := &gatedJudge{started: make(chan string, 1), gates: map[string]chan struct{}{slow: make(chan struct{})}}
	l := NewLoadout(f.store, f.catalog, j, f.cues, f.log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := l.Answer(ctx, domain.HabitSmoothie, slow)
		done <- err
	}()
	<-j.started
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := l.Equipped(); len(got) != 0 {
		t.Fatalf("cancelled verdict equipped %v", got)
	}
	if got := f.cues.take(); len(got) != 0 {
		t.Fatalf("cancelled verdict played cues %v", got)
	}
}

func TestDashboardConcurrentAddsAreKept(t *testing.T) {
	f := newFixture()
	d := NewDashboard(f.store, f.catalog, f.cues, f.log)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.AddCustomFood(domain.FoodItem{ID: "lentils", Name: "Lentils", Protein: 9})
		}()
		go func() {
			defer wg.Done()
			if _, err := d.AddFood("greek yogurt"); err != nil {
				t.Errorf("add food: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := len(f.store.Snapshot().DashboardFoods); got != 40 {
		t.Fatalf("expected 40 foods, got %d", got)
	}
}

func TestParseHabit(t *testing.T) {
	catalog := lesson.NewCatalog(logger.New(logger.LevelOff, nil))
	tests := map[string]domain.HabitID{
		"yogurt":   domain.HabitYogurt,
		"Power":    domain.HabitSmoothie,
		"heart":    domain.HabitActivity,
		"creatine": domain.HabitCreatine,
	}
	for in, want := range tests {
		got, ok := ParseHabit(catalog, in)
		if !ok || got != want {
			t.Fatalf("ParseHabit(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseHabit(catalog, "nap"); ok {
		t.Fatal("expected no habit")
	}
}
