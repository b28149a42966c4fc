package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// LocalVoice speaks through an espeak-ng subprocess. It needs no network
// and serves as the last link of a Fallback chain.
type LocalVoice struct {
	bin   string
	voice string
	speed int // words per minute
	log   *logger.Logger
}

// NewLocalVoice creates an espeak-ng synthesizer. bin defaults to
// "espeak-ng" on PATH.
func NewLocalVoice(bin string, log *logger.Logger) *LocalVoice {
	if bin == "" {
		bin = "espeak-ng"
	}
	return &LocalVoice{bin: bin, voice: "en-us", speed: 165, log: log}
}

// Available reports whether the binary can be found.
func (v *LocalVoice) Available() bool {
	_, err := exec.LookPath(v.bin)
	return err == nil
}

// Voice returns the espeak voice.
func (v *LocalVoice) Voice() string { return "espeak:" + v.voice }

// Synthesize runs espeak-ng and returns its WAV output.
func (v *LocalVoice) Synthesize(ctx context.Context, text string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, v.bin, "--stdout", "-v", v.voice, "-s", strconv.Itoa(v.speed), "--", text)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("espeak: %w: %s", err, stderr.String())
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("espeak: no audio produced")
	}
	v.log.Debug("espeak: got %d bytes of audio", out.Len())
	return out.Bytes(), nil
}
