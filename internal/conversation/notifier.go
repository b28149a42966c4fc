package conversation

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

var _ domain.Notifier = (*CLINotifier)(nil)

var (
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f0abfc"))
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
)

// PrintFunc prints one formatted line. display.UI.Printf satisfies it.
type PrintFunc func(format string, a ...any)

// CLINotifier prints coach notes and warnings to the terminal.
type CLINotifier struct {
	log   *logger.Logger
	print PrintFunc
}

// NewCLINotifier prints through printFn, or straight to stdout if it is nil.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...any) { fmt.Printf(format+"\n", a...) }
	}
	return &CLINotifier{log: log, print: printFn}
}

func (n *CLINotifier) Notify(_ context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.print("  %s", noteStyle.Render(message))
	return nil
}

// NotifyUrgent marks the line with "!" so it stands out without colour.
func (n *CLINotifier) NotifyUrgent(_ context.Context, message string) error {
	n.log.Warn("notify: urgent: %s", message)
	n.print("  %s", urgentStyle.Render("! "+message))
	return nil
}
