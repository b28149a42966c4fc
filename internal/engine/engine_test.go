package engine

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

type fakeProgress struct {
	done map[domain.SlideID]bool
}

func (f *fakeProgress) Snapshot() domain.UserState           { return domain.UserState{} }
func (f *fakeProgress) IsComplete(slide domain.SlideID) bool { return f.done[slide] }

type cueRecorder struct {
	mu   sync.Mutex
	cues []domain.Cue
}

func (c *cueRecorder) Play(cue domain.Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cues = append(c.cues, cue)
}

func (c *cueRecorder) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cues)
}

func setupEngine(t *testing.T, opts ...Option) (*Engine, *fakeProgress, *cueRecorder) {
	t.Helper()
	progress := &fakeProgress{done: map[domain.SlideID]bool{}}
	cues := &cueRecorder{}
	return New(progress, cues, logger.New(logger.LevelOff, nil), opts...), progress, cues
}

func TestStartsOnDashboard(t *testing.T) {
	eng, _, cues := setupEngine(t)
	if eng.Current() != domain.SlideDashboard || eng.Index() != 0 {
		t.Fatalf("expected dashboard at 0, got %s at %d", eng.Current(), eng.Index())
	}
	if cues.count() != 0 {
		t.Fatal("construction must not play cues")
	}
}

func TestNextBlockedUntilComplete(t *testing.T) {
	eng, progress, cues := setupEngine(t)

	if eng.CanAdvance() {
		t.Fatal("expected gate closed on incomplete dashboard")
	}
	if eng.Next() {
		t.Fatal("expected blocked next")
	}
	if eng.Index() != 0 || cues.count() != 0 {
		t.Fatalf("blocked next moved or cued: index=%d cues=%d", eng.Index(), cues.count())
	}

	progress.done[domain.SlideDashboard] = true
	if !eng.Next() {
		t.Fatal("expected next to succeed once dashboard is complete")
	}
	if eng.Current() != domain.SlideProtein {
		t.Fatalf("expected protein, got %s", eng.Current())
	}
	if cues.count() != 1 || cues.cues[0] != domain.CueTransition {
		t.Fatalf("expected one transition cue, got %v", cues.cues)
	}
}

func TestPrevIsNeverGated(t *testing.T) {
	eng, progress, cues := setupEngine(t)

	if eng.Prev() {
		t.Fatal("prev on first slide should fail")
	}
	if cues.count() != 0 {
		t.Fatal("failed prev must not cue")
	}

	progress.done[domain.SlideDashboard] = true
	eng.Next()
	// Protein is incomplete; going back still works.
	if !eng.Prev() {
		t.Fatal("expected prev to succeed")
	}
	if eng.Current() != domain.SlideDashboard {
		t.Fatalf("expected dashboard, got %s", eng.Current())
	}
	if cues.count() != 2 {
		t.Fatalf("expected 2 transition cues, got %d", cues.count())
	}
}

func TestLastSlideHasNoForwardMove(t *testing.T) {
	eng, _, cues := setupEngine(t, WithStartIndex(4))

	if eng.Current() != domain.SlideStrategy || !eng.IsLast() {
		t.Fatalf("expected strategy, got %s", eng.Current())
	}
	if !eng.CanAdvance() {
		t.Fatal("last slide has no forward gate")
	}
	if eng.Next() {
		t.Fatal("next on last slide must not move")
	}
	if eng.Index() != 4 || cues.count() != 0 {
		t.Fatalf("unexpected move or cue: index=%d cues=%d", eng.Index(), cues.count())
	}
}

func TestFullWalkthrough(t *testing.T) {
	type move struct{ from, to domain.SlideID }
	var seen []move

	eng, progress, cues := setupEngine(t, WithOnTransition(func(from, to domain.SlideID, _ int) {
		seen = append(seen, move{from, to})
	}))

	for _, s := range domain.Slides() {
		progress.done[s] = true
	}
	for eng.Next() {
	}

	want := []move{
		{domain.SlideDashboard, domain.SlideProtein},
		{domain.SlideProtein, domain.SlideCreatine},
		{domain.SlideCreatine, domain.SlideSugar},
		{domain.SlideSugar, domain.SlideStrategy},
	}
	if diff := cmp.Diff(want, seen, cmp.AllowUnexported(move{})); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
	if cues.count() != len(want) {
		t.Fatalf("expected %d cues, got %d", len(want), cues.count())
	}
}

func TestWithStartIndexIgnoresOutOfRange(t *testing.T) {
	eng, _, _ := setupEngine(t, WithStartIndex(9))
	if eng.Index() != 0 {
		t.Fatalf("expected index 0, got %d", eng.Index())
	}
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		last        bool
		allEquipped bool
		wantLevel   int
		wantTitle   string
		wantGear    int
	}{
		{"dashboard", 0, false, false, 1, "Recruit", 1},
		{"protein", 1, false, false, 2, "Trainee", 2},
		{"sugar", 3, false, false, 4, "Champion", 4},
		{"strategy without loadout", 4, true, false, 4, "Champion", 4},
		{"strategy with loadout", 4, true, true, 5, "LEGEND", 4},
		{"equipped early is not legend", 2, false, true, 3, "Warrior", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := RankFor(tt.index, tt.last, tt.allEquipped)
			if r.Level != tt.wantLevel || r.Title != tt.wantTitle {
				t.Fatalf("got level %d %q, want %d %q", r.Level, r.Title, tt.wantLevel, tt.wantTitle)
			}
			if len(r.Equipment) != tt.wantGear {
				t.Fatalf("got %d equipment, want %d", len(r.Equipment), tt.wantGear)
			}
		})
	}
}
