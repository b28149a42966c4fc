package speech

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/hammamikhairi/fuelquest/internal/logger"
)

// AzureOption configures the Azure TTS client.
type AzureOption func(*AzureClient)

// WithAzureVoice picks a neural voice such as "en-GB-RyanNeural".
func WithAzureVoice(voice string) AzureOption {
	return func(c *AzureClient) { c.voice = voice }
}

// WithAzureEndpoint overrides the regional endpoint, for tests.
func WithAzureEndpoint(url string) AzureOption {
	return func(c *AzureClient) { c.endpoint = url }
}

// AzureClient synthesizes speech through Azure Cognitive Services. The
// requested format is already 24 kHz mono WAV, so nothing is converted.
type AzureClient struct {
	key      string
	endpoint string
	voice    string
	http     *http.Client
	log      *logger.Logger
}

// NewAzureClient creates a client for the given region.
func NewAzureClient(key, region string, log *logger.Logger, opts ...AzureOption) *AzureClient {
	c := &AzureClient{
		key:      key,
		endpoint: "https://" + region + ".tts.speech.microsoft.com/cognitiveservices/v1",
		voice:    DefaultVoice,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *AzureClient) Voice() string { return "azure:" + c.voice }

// ssml is the minimal <speak> document Azure accepts.
type ssml struct {
	XMLName xml.Name  `xml:"speak"`
	Version string    `xml:"version,attr"`
	Lang    string    `xml:"xml:lang,attr"`
	Voice   ssmlVoice `xml:"voice"`
}

type ssmlVoice struct {
	Name string `xml:"name,attr"`
	Text string `xml:",chardata"`
}

func (c *AzureClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	doc, err := xml.Marshal(ssml{
		Version: "1.0",
		Lang:    "en-US",
		Voice:   ssmlVoice{Name: c.voice, Text: text},
	})
	if err != nil {
		return nil, fmt.Errorf("azure: encode ssml: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("azure: creating request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", DefaultAudioFormat)
	req.Header.Set("User-Agent", "FuelQuest/1.0")

	c.log.Debug("azure: %d chars as %s", len(text), c.voice)
	wav, err := fetchAudio(c.http, req, "azure")
	if err != nil {
		return nil, err
	}
	c.log.Debug("azure: got %d bytes of audio", len(wav))
	return wav, nil
}
