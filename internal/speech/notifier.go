package speech

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/fuelquest/internal/domain"
	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*SpeakingNotifier)(nil)

// Speaker queues text for speech. Mouth and NoOp satisfy it.
type Speaker interface {
	Say(text string, priority Priority)
}

// SpeakingNotifier prints through an inner notifier and also speaks.
type SpeakingNotifier struct {
	text  domain.Notifier
	voice Speaker
	log   *logger.Logger
}

// NewSpeakingNotifier creates a notifier that both prints and speaks.
func NewSpeakingNotifier(text domain.Notifier, voice Speaker, log *logger.Logger) *SpeakingNotifier {
	return &SpeakingNotifier{text: text, voice: voice, log: log}
}

// Notify prints the message and speaks it at normal priority.
func (n *SpeakingNotifier) Notify(ctx context.Context, message string) error {
	if err := n.text.Notify(ctx, message); err != nil {
		return err
	}
	n.speak(message, PriorityNormal)
	return nil
}

// NotifyUrgent prints the message and speaks it at high priority.
func (n *SpeakingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	n.speak(message, PriorityHigh)
	return nil
}

func (n *SpeakingNotifier) speak(message string, p Priority) {
	if text := CleanForSpeech(message); text != "" {
		n.voice.Say(text, p)
	}
}

var (
	speakerTag = regexp.MustCompile(`^\[[A-Za-z ]+\]\s*`)
	ansiCodes  = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	emoji      = regexp.MustCompile(`[\x{1F000}-\x{1FAFF}\x{2600}-\x{27BF}\x{FE0F}]`)
	markdown   = regexp.MustCompile("[*_`#]+")
)

// CleanForSpeech strips terminal colors, speaker tags, emoji and markdown
// markers that should not be read aloud.
func CleanForSpeech(msg string) string {
	s := ansiCodes.ReplaceAllString(msg, "")
	s = speakerTag.ReplaceAllString(s, "")
	s = emoji.ReplaceAllString(s, "")
	s = markdown.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
