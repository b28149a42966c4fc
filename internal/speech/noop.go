// Package speech provides text-to-speech, push-to-talk speech-to-text and
// audio cues.
package speech

import (
	"context"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Compile-time interface check.
var _ domain.Listener = (*NoOp)(nil)

// NoOp is the silent voice and deaf ear used when speech is disabled.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a no-op speech provider.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Listen returns ErrNotImplemented.
func (n *NoOp) Listen(context.Context) (string, error) {
	return "", domain.ErrNotImplemented
}

// Say does nothing.
func (n *NoOp) Say(text string, _ Priority) {
	n.log.Debug("speech no-op: would say %q", text)
}

// Interrupt does nothing.
func (n *NoOp) Interrupt() {}
