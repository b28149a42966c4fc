package domain

import "context"

// StateReader exposes read access to the shared user state.
type StateReader interface {
	Snapshot() UserState
	IsComplete(slide SlideID) bool
}

// CuePlayer fires short sound effects. Play must not block and has no
// ordering guarantee relative to state updates.
type CuePlayer interface {
	Play(cue Cue)
}

// IntentParser converts raw user input into structured intents.
// Implementations can be keyword-based, regex, or LLM-powered.
type IntentParser interface {
	Parse(ctx context.Context, input string, slide SlideID) (*Intent, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or also speak them.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// Listener records one spoken utterance and returns its transcript.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}
