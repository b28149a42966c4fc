package speech

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/hammamikhairi/fuelquest/internal/logger"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1/text-to-speech"

// ElevenOption configures the ElevenLabs client.
type ElevenOption func(*ElevenLabsClient)

// WithElevenVoice sets the voice id.
func WithElevenVoice(id string) ElevenOption {
	return func(c *ElevenLabsClient) { c.voiceID = id }
}

// WithElevenModel sets the model id.
func WithElevenModel(id string) ElevenOption {
	return func(c *ElevenLabsClient) { c.modelID = id }
}

// WithElevenBaseURL overrides the API base URL, for tests.
func WithElevenBaseURL(url string) ElevenOption {
	return func(c *ElevenLabsClient) { c.baseURL = url }
}

// ElevenLabsClient synthesizes speech through the ElevenLabs REST API. It
// asks for raw 24 kHz PCM and wraps it as WAV.
type ElevenLabsClient struct {
	apiKey     string
	voiceID    string
	modelID    string
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewElevenLabsClient creates an ElevenLabs client.
func NewElevenLabsClient(apiKey string, log *logger.Logger, opts ...ElevenOption) *ElevenLabsClient {
	c := &ElevenLabsClient{
		apiKey:     apiKey,
		voiceID:    DefaultElevenVoice,
		modelID:    DefaultElevenModel,
		baseURL:    elevenLabsBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Voice returns the voice id.
func (c *ElevenLabsClient) Voice() string { return "elevenlabs:" + c.voiceID }

type elevenRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize returns WAV audio for text.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(elevenRequest{
		Text:          text,
		ModelID:       c.modelID,
		VoiceSettings: voiceSettings{Stability: 0.5, SimilarityBoost: 0.75},
	})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?output_format=pcm_%d", c.baseURL, c.voiceID, SampleRate)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: creating request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/pcm")

	c.log.Debug("elevenlabs: synthesizing %d chars with voice %s", len(text), c.voiceID)
	pcm, err := fetchAudio(c.httpClient, req, "elevenlabs")
	if err != nil {
		return nil, err
	}
	c.log.Debug("elevenlabs: got %d bytes of PCM", len(pcm))
	return EncodeWAV(pcm, SampleRate, ChannelCount), nil
}
