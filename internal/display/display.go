// Package display is the Bubble Tea terminal front end: a one-line
// mission bar and a prompt pinned to the bottom, with everything the app
// prints scrolling above them.
package display

import (
	"fmt"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle colours the startup banner.
	BannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a78bfa"))

	coachStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f5d0fe"))
	missionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#86efac")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4e7"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#71717a"))
	echoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a1a1aa"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#c4b5fd"))
)

const prompt = "quest> "

// ── UI ───────────────────────────────────────────────────────────

// UI owns the terminal while Run is active. The print methods and
// InputChan may be used from any goroutine; before Run starts and after
// it returns, output goes straight to stdout.
type UI struct {
	status StatusFunc
	lines  chan string
	ready  chan struct{}
	quit   chan struct{}

	readyOnce sync.Once
	program   atomic.Pointer[tea.Program]
}

// NewUI creates the display. status may be nil, which hides the bar.
func NewUI(status StatusFunc) *UI {
	return &UI{
		status: status,
		lines:  make(chan string, 16),
		ready:  make(chan struct{}),
		quit:   make(chan struct{}),
	}
}

// Println prints a line above the prompt.
func (u *UI) Println(a ...any) {
	if p := u.program.Load(); p != nil {
		p.Println(a...)
		return
	}
	fmt.Println(a...)
}

// Printf prints one formatted line above the prompt.
func (u *UI) Printf(format string, a ...any) {
	u.Println(fmt.Sprintf(format, a...))
}

// InputChan delivers each line the learner submits.
func (u *UI) InputChan() <-chan string { return u.lines }

func (u *UI) styled(s lipgloss.Style, text string) { u.Println(s.Render("  " + text)) }

// PrintCoach prints something the coach says.
func (u *UI) PrintCoach(text string) { u.styled(coachStyle, text) }

// PrintMission prints a header like "Mission 2/5: The Anabolic Threshold".
func (u *UI) PrintMission(text string) { u.styled(missionStyle, text) }

func (u *UI) PrintInfo(text string) { u.styled(infoStyle, text) }
func (u *UI) PrintHint(text string) { u.styled(hintStyle, text) }

// PrintVoice shows a transcript from push-to-talk.
func (u *UI) PrintVoice(text string) {
	u.Println(hintStyle.Render("  (heard) ") + infoStyle.Render(text))
}

// PrintUserInput echoes a submitted line into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render(prompt) + echoStyle.Render(text))
}

// WaitReady blocks until Run has started the event loop.
func (u *UI) WaitReady() { <-u.ready }

// Quit asks a running event loop to exit.
func (u *UI) Quit() {
	if p := u.program.Load(); p != nil {
		p.Quit()
	}
}

// QuitChan is closed once Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quit }

// Run takes over the terminal until Quit or ctrl+c.
func (u *UI) Run() error {
	p := tea.NewProgram(newModel(u))
	u.program.Store(p)
	_, err := p.Run()
	u.program.Store(nil)
	close(u.quit)
	return err
}

func (u *UI) markReady() { u.readyOnce.Do(func() { close(u.ready) }) }
