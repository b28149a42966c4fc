package conversation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		slide       domain.SlideID
		wantType    domain.IntentType
		wantPayload string
	}{
		// Navigation
		{"next", domain.SlideDashboard, domain.IntentNext, ""},
		{"N", domain.SlideDashboard, domain.IntentNext, ""},
		{"back", domain.SlideSugar, domain.IntentBack, ""},
		{"prev", domain.SlideSugar, domain.IntentBack, ""},

		// Dashboard
		{"name Jordan", domain.SlideDashboard, domain.IntentSetName, "Jordan"},
		{"my name is  Sam Lee", domain.SlideDashboard, domain.IntentSetName, "Sam Lee"},
		{"weight 120", domain.SlideDashboard, domain.IntentSetWeight, "120"},
		{"I weigh 95.5 lbs", domain.SlideDashboard, domain.IntentSetWeight, "95.5"},
		{"110", domain.SlideDashboard, domain.IntentSetWeight, "110"},
		{"add greek yogurt", domain.SlideDashboard, domain.IntentAddFood, "greek yogurt"},
		{"lookup dragon fruit", domain.SlideDashboard, domain.IntentLookupFood, "dragon fruit"},
		{"menu", domain.SlideProtein, domain.IntentMenu, ""},
		{"reset", domain.SlideProtein, domain.IntentReset, ""},
		{"ideas", domain.SlideProtein, domain.IntentMealIdeas, ""},

		// Creatine
		{"dose 5g", domain.SlideCreatine, domain.IntentDose, "5"},
		{"take 2.5 grams", domain.SlideCreatine, domain.IntentDose, "2.5"},
		{"round", domain.SlideCreatine, domain.IntentRound, ""},
		{"42", domain.SlideCreatine, domain.IntentAnswer, "42"},

		// Strategy
		{"equip yogurt", domain.SlideStrategy, domain.IntentEquip, "yogurt"},
		{"unequip creatine", domain.SlideStrategy, domain.IntentUnequip, "creatine"},
		{"answer it has double the protein", domain.SlideStrategy, domain.IntentAnswer, "it has double the protein"},

		// Global
		{"status", domain.SlideStrategy, domain.IntentStatus, ""},
		{"again", domain.SlideStrategy, domain.IntentRepeat, ""},
		{"talk", domain.SlideStrategy, domain.IntentListen, ""},
		{"?", domain.SlideStrategy, domain.IntentHelp, ""},
		{"quit", domain.SlideStrategy, domain.IntentQuit, ""},

		// Questions
		{"how much protein do I need", domain.SlideProtein, domain.IntentAskQuestion, "how much protein do I need"},
		{"creatine is safe?", domain.SlideCreatine, domain.IntentAskQuestion, "creatine is safe?"},

		// Unknown
		{"banana smoothie please", domain.SlideSugar, domain.IntentUnknown, "banana smoothie please"},
		{"   ", domain.SlideSugar, domain.IntentUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input, tt.slide)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Errorf("input=%q: got type %s, want %s", tt.input, intent.Type, tt.wantType)
			}
			if intent.Payload != tt.wantPayload {
				t.Errorf("input=%q: got payload %q, want %q", tt.input, intent.Payload, tt.wantPayload)
			}
		})
	}
}

func TestCLINotifier(t *testing.T) {
	var lines []string
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), func(format string, a ...any) {
		lines = append(lines, fmt.Sprintf(format, a...))
	})

	ctx := context.Background()
	n.Notify(ctx, "[Coach] hi")
	n.NotifyUrgent(ctx, "careful")
	if len(lines) != 2 || !strings.Contains(lines[0], "[Coach] hi") || !strings.Contains(lines[1], "! careful") {
		t.Fatalf("unexpected output %q", lines)
	}
}
