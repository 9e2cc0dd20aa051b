package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/pkg/tools"
)

type GoogleCloudConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`

	VoiceName string `yaml:"voice_name"`
}

// GoogleCloudClient uses the cloud text-to-speech REST API with a ta-IN
// voice. Audio comes back base64 encoded inside a JSON envelope.
type GoogleCloudClient struct {
	cfg        *GoogleCloudConfig
	httpClient HTTPClient
}

func NewGoogleCloudClient(httpClient HTTPClient, cfg *GoogleCloudConfig) *GoogleCloudClient {
	return &GoogleCloudClient{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

func (c *GoogleCloudClient) Configured() bool {
	return c.cfg.APIKey != ""
}

func (c *GoogleCloudClient) baseURL() string {
	if c.cfg.URL != "" {
		return c.cfg.URL
	}

	return "https://texttospeech.googleapis.com"
}

type googleCloudInput struct {
	Text string `json:"text"`
}

type googleCloudVoice struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
	SsmlGender   string `json:"ssmlGender"`
}

type googleCloudAudioConfig struct {
	AudioEncoding   string  `json:"audioEncoding"`
	SampleRateHertz int     `json:"sampleRateHertz"`
	SpeakingRate    float64 `json:"speakingRate,omitempty"`
}

type googleCloudReq struct {
	Input       googleCloudInput       `json:"input"`
	Voice       googleCloudVoice       `json:"voice"`
	AudioConfig googleCloudAudioConfig `json:"audioConfig"`
}

type googleCloudResp struct {
	AudioContent string `json:"audioContent"`
}

func (c *GoogleCloudClient) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: google cloud api key is not set", ErrServiceUnavailable)
	}

	start := time.Now()

	voiceName := opts.Voice
	if voiceName == "" {
		voiceName = c.cfg.VoiceName
	}
	if voiceName == "" {
		voiceName = "ta-IN-Standard-A"
	}

	req := &googleCloudReq{
		Input: googleCloudInput{Text: text},
		Voice: googleCloudVoice{
			LanguageCode: "ta-IN",
			Name:         voiceName,
			SsmlGender:   "FEMALE",
		},
		AudioConfig: googleCloudAudioConfig{
			AudioEncoding:   "MP3",
			SampleRateHertz: 24000,
		},
	}
	if opts.Slow {
		req.AudioConfig.SpeakingRate = 0.7
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal google cloud request: %w", err)
	}

	endpoint := strings.TrimRight(c.baseURL(), "/") + "/v1/text:synthesize?key=" + c.cfg.APIKey

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create google cloud request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues("google_cloud", "transport").Inc()
		return nil, fmt.Errorf("%w: google cloud request failed: %s", ErrServiceUnavailable, err)
	}
	defer tools.DrainAndClose(resp.Body)

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Errors.WithLabelValues("google_cloud", "500").Inc()
		return nil, fmt.Errorf("failed to read google cloud response: %w", err)
	}

	if resp.StatusCode > 299 {
		metrics.Errors.WithLabelValues("google_cloud", strconv.Itoa(resp.StatusCode)).Inc()
		return nil, fmt.Errorf("%w: status code %d, err - %s", ErrServiceUnavailable, resp.StatusCode, string(respData))
	}

	ttsResp := &googleCloudResp{}
	if err := json.Unmarshal(respData, ttsResp); err != nil {
		metrics.Errors.WithLabelValues("google_cloud", "500").Inc()
		return nil, fmt.Errorf("failed to unmarshal google cloud response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(ttsResp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("failed to decode google cloud audio content: %w", err)
	}

	metrics.QueryTime.WithLabelValues("google_cloud").Observe(time.Since(start).Seconds())

	return audio, nil
}
