package speech

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Compile-time interface check.
var _ domain.Listener = (*Ear)(nil)

// ErrNothingHeard is returned when a recording holds no usable speech.
var ErrNothingHeard = errors.New("nothing heard")

// envAnnotation matches whisper annotations like "(keyboard clicking)" or
// "[laughter]".
var envAnnotation = regexp.MustCompile(`[\(\[][a-zA-Z][a-zA-Z_\s]*[\)\]]`)

// timestampPrefix matches "[00:00:00.000 --> 00:00:05.000]".
var timestampPrefix = regexp.MustCompile(`^\[[0-9:.]+\s*-->\s*[0-9:.]+\]\s*`)

// whisper hallucinates these on silence.
var hallucinations = map[string]bool{
	"...":                     true,
	"you":                     true,
	"thank you.":              true,
	"thanks for watching!":    true,
	"thank you for watching.": true,
	"bye.":                    true,
	"the end.":                true,
}

// Interrupter silences speech. Mouth satisfies it.
type Interrupter interface {
	Interrupt()
}

// EarOption configures the Ear.
type EarOption func(*Ear)

// WithRecordWindow sets how long one push-to-talk recording lasts.
func WithRecordWindow(d time.Duration) EarOption {
	return func(e *Ear) { e.window = d }
}

// WithTempDir sets the directory for temporary WAV files.
func WithTempDir(dir string) EarOption {
	return func(e *Ear) { e.tempDir = dir }
}

// withRecorder replaces the microphone, for tests.
func withRecorder(fn func(ctx context.Context, d time.Duration) string) EarOption {
	return func(e *Ear) { e.record = fn }
}

// Ear is push-to-talk speech input backed by a local whisper model. Each
// Listen call silences the coach, records one window and transcribes it.
type Ear struct {
	whisperBin string
	modelPath  string
	tempDir    string
	window     time.Duration
	mouth      Interrupter
	log        *logger.Logger
	record     func(ctx context.Context, d time.Duration) string

	mu        sync.Mutex
	listening bool
}

// NewEar creates a push-to-talk listener. mouth may be nil.
func NewEar(whisperBin, modelPath string, mouth Interrupter, log *logger.Logger, opts ...EarOption) *Ear {
	e := &Ear{
		whisperBin: whisperBin,
		modelPath:  modelPath,
		tempDir:    ".fuelquest-stt",
		window:     5 * time.Second,
		mouth:      mouth,
		log:        log,
	}
	e.record = e.recordWhisper
	for _, opt := range opts {
		opt(e)
	}
	if _, err := exec.LookPath(e.whisperBin); err != nil {
		log.Warn("ear: whisper binary %q not found: %v", e.whisperBin, err)
	}
	return e
}

// Listening reports whether a recording is in progress.
func (e *Ear) Listening() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listening
}

// Listen records one utterance. Cancel ctx to stop early; whatever was
// captured so far is still transcribed.
func (e *Ear) Listen(ctx context.Context) (string, error) {
	e.mu.Lock()
	if e.listening {
		e.mu.Unlock()
		return "", errors.New("ear: already listening")
	}
	e.listening = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.listening = false
		e.mu.Unlock()
	}()

	if e.mouth != nil {
		e.mouth.Interrupt()
	}

	e.log.Info("ear: listening for %s", e.window)
	text := cleanTranscription(e.record(ctx, e.window))
	if text == "" {
		e.log.Debug("ear: nothing heard")
		return "", ErrNothingHeard
	}
	e.log.Info("ear: heard %q", text)
	return text, nil
}

// recordWhisper records from the default microphone for d and returns the
// raw transcription.
func (e *Ear) recordWhisper(ctx context.Context, d time.Duration) string {
	done := make(chan string, 1)
	callback := func(text string) {
		select {
		case done <- text:
		default:
		}
	}

	verbose := e.log.GetLevel() >= logger.LevelVerbose
	t, err := audiotranscriber.NewTranscriber(e.whisperBin, e.modelPath, e.tempDir, "wav", callback, verbose)
	if err != nil {
		e.log.Error("ear: transcriber init failed: %v", err)
		return ""
	}
	if err := t.Start(); err != nil {
		e.log.Error("ear: recording start failed: %v", err)
		return ""
	}

	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
	t.Stop()

	select {
	case text := <-done:
		return text
	case <-time.After(30 * time.Second):
		e.log.Error("ear: transcription timed out")
		return ""
	}
}

// cleanTranscription flattens whitespace and strips whisper artifacts,
// annotations and known silence hallucinations.
func cleanTranscription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = timestampPrefix.ReplaceAllString(s, "")
	s = envAnnotation.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	if hallucinations[strings.ToLower(s)] {
		return ""
	}
	return s
}
