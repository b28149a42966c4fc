// Package config reads runtime settings from the environment. A .env file
// in the working directory is loaded first by main.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every environment-driven setting. Command-line flags are
// applied on top by main.
type Config struct {
	// Claude, preferred when set.
	AnthropicKey   string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel string `env:"ANTHROPIC_MODEL"`

	// Any OpenAI-compatible chat-completions endpoint.
	ChatKey      string `env:"GPT_CHAT_KEY"`
	ChatEndpoint string `env:"GPT_CHAT_ENDPOINT"`
	ChatModel    string `env:"GPT_CHAT_MODEL"`

	ElevenLabsKey   string `env:"ELEVENLABS_API_KEY"`
	ElevenLabsVoice string `env:"ELEVENLABS_VOICE_ID"`

	AzureSpeechKey    string `env:"AZURE_SPEECH_KEY"`
	AzureSpeechRegion string `env:"AZURE_SPEECH_REGION"`

	EspeakBin    string        `env:"FUELQUEST_ESPEAK_BIN" envDefault:"espeak-ng"`
	WhisperBin   string        `env:"FUELQUEST_WHISPER_BIN" envDefault:"whisper-cli"`
	WhisperModel string        `env:"FUELQUEST_WHISPER_MODEL" envDefault:"bin/ggml-small.bin"`
	RecordWindow time.Duration `env:"FUELQUEST_RECORD_WINDOW" envDefault:"5s"`

	LessonFile string `env:"FUELQUEST_LESSON_FILE"`
	LogFile    string `env:"FUELQUEST_LOG_FILE" envDefault:".fuelquest-logs/fuelquest.log"`
	CacheDir   string `env:"FUELQUEST_CACHE_DIR" envDefault:".fuelquest-cache"`
	DiskCache  bool   `env:"FUELQUEST_DISK_CACHE" envDefault:"true"`

	NudgeAfter     time.Duration `env:"FUELQUEST_NUDGE_AFTER" envDefault:"90s"`
	RequestTimeout time.Duration `env:"FUELQUEST_REQUEST_TIMEOUT" envDefault:"20s"`
}

// Read parses the environment.
func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// HasClaude reports whether the Anthropic backend is configured.
func (c Config) HasClaude() bool { return c.AnthropicKey != "" }

// HasChat reports whether the OpenAI-compatible backend is configured.
func (c Config) HasChat() bool { return c.ChatKey != "" && c.ChatEndpoint != "" }

// HasElevenLabs reports whether ElevenLabs speech is configured.
func (c Config) HasElevenLabs() bool { return c.ElevenLabsKey != "" }

// HasAzure reports whether Azure speech is configured.
func (c Config) HasAzure() bool { return c.AzureSpeechKey != "" && c.AzureSpeechRegion != "" }
