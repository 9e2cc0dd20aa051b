package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/pkg/tools"
)

type ElevenLabsConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`

	// VoiceID defaults to a multilingual voice that handles Tamil.
	VoiceID string `yaml:"voice_id"`
	ModelID string `yaml:"model_id"`
}

type ElevenLabsClient struct {
	cfg        *ElevenLabsConfig
	httpClient HTTPClient
}

func NewElevenLabsClient(httpClient HTTPClient, cfg *ElevenLabsConfig) *ElevenLabsClient {
	return &ElevenLabsClient{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

// Configured reports whether the provider can be used at all. An
// unconfigured premium provider makes the Service fall back instead of
// erroring out.
func (c *ElevenLabsClient) Configured() bool {
	return c.cfg.APIKey != ""
}

func (c *ElevenLabsClient) baseURL() string {
	if c.cfg.URL != "" {
		return c.cfg.URL
	}

	return "https://api.elevenlabs.io"
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type elevenLabsReq struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

const defaultElevenLabsVoiceID = "pNInz6obpgDQGcFmaJgB"

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: elevenlabs api key is not set", ErrServiceUnavailable)
	}

	start := time.Now()

	voiceID := opts.Voice
	if voiceID == "" {
		voiceID = c.cfg.VoiceID
	}
	if voiceID == "" {
		voiceID = defaultElevenLabsVoiceID
	}

	modelID := c.cfg.ModelID
	if modelID == "" {
		modelID = "eleven_multilingual_v2"
	}

	req := &elevenLabsReq{
		Text:    text,
		ModelID: modelID,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			UseSpeakerBoost: true,
		},
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal elevenlabs request: %w", err)
	}

	endpoint := strings.TrimRight(c.baseURL(), "/") + "/v1/text-to-speech/" + voiceID

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create elevenlabs request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "audio/mpeg")
	request.Header.Set("xi-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues("elevenlabs", "transport").Inc()
		return nil, fmt.Errorf("%w: elevenlabs request failed: %s", ErrServiceUnavailable, err)
	}
	defer tools.DrainAndClose(resp.Body)

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Errors.WithLabelValues("elevenlabs", "500").Inc()
		return nil, fmt.Errorf("failed to read elevenlabs response: %w", err)
	}

	if resp.StatusCode > 299 {
		metrics.Errors.WithLabelValues("elevenlabs", strconv.Itoa(resp.StatusCode)).Inc()
		return nil, fmt.Errorf("%w: status code %d, err - %s", ErrServiceUnavailable, resp.StatusCode, string(respData))
	}

	metrics.QueryTime.WithLabelValues("elevenlabs").Observe(time.Since(start).Seconds())

	return respData, nil
}
