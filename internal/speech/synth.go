package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Synthesizer turns text into WAV audio. Voice names the voice so cached
// audio is keyed per voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Voice() string
}

// Compile-time interface checks.
var (
	_ Synthesizer = (*AzureClient)(nil)
	_ Synthesizer = (*ElevenLabsClient)(nil)
	_ Synthesizer = (*LocalVoice)(nil)
	_ Synthesizer = (*Fallback)(nil)
)

// Fallback tries each synthesizer in order and returns the first success.
// Typically a cloud voice followed by LocalVoice.
type Fallback struct {
	chain []Synthesizer
	log   *logger.Logger
}

// NewFallback creates a fallback chain. Nil entries are skipped.
func NewFallback(log *logger.Logger, chain ...Synthesizer) *Fallback {
	f := &Fallback{log: log}
	for _, s := range chain {
		if s != nil {
			f.chain = append(f.chain, s)
		}
	}
	return f
}

// Voice joins the voices of the chain.
func (f *Fallback) Voice() string {
	voices := make([]string, len(f.chain))
	for i, s := range f.chain {
		voices[i] = s.Voice()
	}
	return strings.Join(voices, "|")
}

// Synthesize returns audio from the first synthesizer that succeeds.
func (f *Fallback) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if len(f.chain) == 0 {
		return nil, errors.New("fallback: no synthesizers configured")
	}

	var errs []error
	for _, s := range f.chain {
		audio, err := s.Synthesize(ctx, text)
		if err == nil {
			return audio, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.log.Warn("fallback: %s failed: %v", s.Voice(), err)
		errs = append(errs, fmt.Errorf("%s: %w", s.Voice(), err))
	}
	return nil, errors.Join(errs...)
}
