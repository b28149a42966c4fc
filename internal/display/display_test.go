package display

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleStatus() Status {
	return Status{
		Level:     2,
		Title:     "Trainee",
		Equipment: []string{"yogurt"},
		Current:   1,
		Slides: []SlideStatus{
			{Title: "Fuel Dashboard", Complete: true},
			{Title: "The Anabolic Threshold"},
			{Title: "The Brain Battery", Locked: true},
		},
	}
}

func TestBarText(t *testing.T) {
	got := barText(sampleStatus())
	want := []string{
		"Lv 2 Trainee [yogurt]",
		"1 ✓ Fuel Dashboard",
		"▶ 2   The Anabolic Threshold",
		"3 🔒 The Brain Battery",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bar text mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBarContainsEveryMission(t *testing.T) {
	bar := renderBar(sampleStatus(), 400)
	for _, title := range []string{"Trainee", "Fuel Dashboard", "The Anabolic Threshold", "The Brain Battery"} {
		if !strings.Contains(bar, title) {
			t.Errorf("bar missing %q", title)
		}
	}
	if strings.Contains(renderBar(sampleStatus(), 20), "\n") {
		t.Error("a narrow bar should be truncated, not wrapped")
	}
}

func TestWindowTitle(t *testing.T) {
	if got := windowTitle(sampleStatus()); got != "FuelQuest · Lv 2 Trainee · The Anabolic Threshold" {
		t.Errorf("got %q", got)
	}
	if got := windowTitle(Status{}); got != "FuelQuest" {
		t.Errorf("empty status: got %q", got)
	}
}

func TestCenterBanner(t *testing.T) {
	out := centerBanner("ab\nabcd\n", 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "   ") {
			t.Errorf("line %q not padded", l)
		}
	}
}
