package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#1e1b4b")).
		Foreground(lipgloss.Color("#a5b4fc"))

	rankStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#86efac"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f0abfc")).Bold(true)
	lockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")).Italic(true)
	openStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#c7d2fe"))
	sepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4c1d95"))
)

// SlideStatus is one mission on the bar.
type SlideStatus struct {
	Title    string
	Complete bool
	Locked   bool
}

// Status is everything the mission bar shows.
type Status struct {
	Level     int
	Title     string
	Equipment []string
	Current   int
	Slides    []SlideStatus
}

// StatusFunc reports the current status. It is polled once per second.
type StatusFunc func() Status

// windowTitle is "FuelQuest · Lv 2 Trainee · The Anabolic Threshold".
func windowTitle(s Status) string {
	if s.Current < 0 || s.Current >= len(s.Slides) {
		return "FuelQuest"
	}
	return fmt.Sprintf("FuelQuest · Lv %d %s · %s", s.Level, s.Title, s.Slides[s.Current].Title)
}

// barText is the unstyled content of the mission bar: the rank, then one
// segment per slide.
func barText(s Status) []string {
	parts := []string{fmt.Sprintf("Lv %d %s", s.Level, s.Title)}
	if len(s.Equipment) > 0 {
		parts[0] += " [" + strings.Join(s.Equipment, " ") + "]"
	}
	for i, sl := range s.Slides {
		mark := " "
		switch {
		case sl.Complete:
			mark = "✓"
		case sl.Locked:
			mark = "🔒"
		}
		label := fmt.Sprintf("%d %s %s", i+1, mark, sl.Title)
		if i == s.Current {
			label = "▶ " + label
		}
		parts = append(parts, label)
	}
	return parts
}

func segmentStyle(s Status, i int) lipgloss.Style {
	sl := s.Slides[i]
	switch {
	case i == s.Current:
		return currentStyle
	case sl.Complete:
		return doneStyle
	case sl.Locked:
		return lockedStyle
	}
	return openStyle
}

// renderBar draws the bar exactly one line high, cutting it off at width.
func renderBar(s Status, width int) string {
	if width <= 0 {
		width = 80
	}
	text := barText(s)
	styled := make([]string, len(text))
	styled[0] = rankStyle.Render(text[0])
	for i := range s.Slides {
		styled[i+1] = segmentStyle(s, i).Render(text[i+1])
	}

	line := " " + strings.Join(styled, sepStyle.Render("  │  ")) + " "
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return barBg.MaxWidth(width).Render(line)
}
