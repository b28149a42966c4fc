package speech

import "time"

// Default Azure voice. Full list:
// https://learn.microsoft.com/en-us/azure/ai-services/speech-service/language-support
const DefaultVoice = "en-US-JennyNeural"

// DefaultAudioFormat is requested from Azure and matches the player.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// ElevenLabs defaults.
const (
	DefaultElevenVoice = "21m00Tcm4TlvDq8ikWAM"
	DefaultElevenModel = "eleven_flash_v2_5"
)

// Playback format. Every synthesizer's output is converted to this before
// it reaches the device.
const (
	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Priority levels for speech requests. Higher value = speaks first.
type Priority int

const (
	PriorityLow      Priority = iota // idle nudges
	PriorityNormal                   // lesson narration
	PriorityHigh                     // answers to questions
	PriorityCritical                 // errors, push-to-talk prompts
)

// SpeechRequest is a queued item waiting to be spoken.
type SpeechRequest struct {
	Text     string
	Priority Priority
	QueuedAt time.Time
}
