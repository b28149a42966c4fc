package display

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusMsg carries a fresh status poll into Update.
type statusMsg Status

type model struct {
	ui      *UI
	current Status
	input   textinput.Model
	last    string // most recent submitted line, recalled with ↑
	width   int
}

func newModel(u *UI) model {
	in := textinput.New()
	// The prompt is plain text: styled prompts throw off textinput's
	// width math.
	in.Prompt = prompt
	in.PromptStyle = promptStyle
	in.TextStyle = echoStyle
	in.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#c4b5fd"))
	in.CharLimit = 500
	in.Width = 60
	in.Focus()

	m := model{ui: u, input: in}
	if u.status != nil {
		m.current = u.status()
	}
	return m
}

func (m model) Init() tea.Cmd {
	u := m.ui
	return tea.Batch(
		textinput.Blink,
		m.poll(),
		func() tea.Msg { u.markReady(); return nil },
	)
}

// poll fetches the status once a second, off the Update goroutine.
func (m model) poll() tea.Cmd {
	fn := m.ui.status
	if fn == nil {
		return nil
	}
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return statusMsg(fn()) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.input.Reset()
			return m, nil
		case "up":
			if m.last != "" {
				m.input.SetValue(m.last)
				m.input.CursorEnd()
			}
			return m, nil
		case "enter":
			return m.submit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, msg.Width-len(prompt))
		return m, nil

	case statusMsg:
		m.current = Status(msg)
		return m, tea.Batch(m.poll(), tea.SetWindowTitle(windowTitle(m.current)))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}
	m.last = line
	m.ui.lines <- line
	// Echo from a Cmd: Println inside Update would deadlock the program.
	echo := m.ui.PrintUserInput
	return m, func() tea.Msg { echo(line); return nil }
}

func (m model) View() string {
	view := m.input.View()
	if len(m.current.Slides) == 0 {
		return "\n" + view
	}
	return renderBar(m.current, m.width) + "\n\n" + view
}
