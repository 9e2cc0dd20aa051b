package tts

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"
	"time"

	"app/pkg/tools"
)

type AzureConfig struct {
	// TokenURL and TTSURL override the regional endpoints, mostly for
	// tests.
	TokenURL string `yaml:"token_url"`
	TTSURL   string `yaml:"tts_url"`

	SubscriptionKey string `yaml:"subscription_key"`
	Region          string `yaml:"region"`

	VoiceName string `yaml:"voice_name"`
}

// AzureClient talks to the cognitive services speech API. Every call
// issues a short-lived access token first, then posts SSML.
type AzureClient struct {
	cfg        *AzureConfig
	httpClient HTTPClient
}

func NewAzureClient(httpClient HTTPClient, cfg *AzureConfig) *AzureClient {
	return &AzureClient{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

func (c *AzureClient) Configured() bool {
	return c.cfg.SubscriptionKey != ""
}

func (c *AzureClient) region() string {
	if c.cfg.Region != "" {
		return c.cfg.Region
	}

	return "eastus"
}

func (c *AzureClient) tokenURL() string {
	if c.cfg.TokenURL != "" {
		return c.cfg.TokenURL
	}

	return fmt.Sprintf("https://%s.api.cognitive.microsoft.com/sts/v1.0/issuetoken", c.region())
}

func (c *AzureClient) ttsURL() string {
	if c.cfg.TTSURL != "" {
		return c.cfg.TTSURL
	}

	return fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", c.region())
}

func (c *AzureClient) issueToken(ctx context.Context) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create azure token request: %w", err)
	}
	request.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("%w: azure token request failed: %s", ErrServiceUnavailable, err)
	}
	defer tools.DrainAndClose(resp.Body)

	token, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read azure token: %w", err)
	}

	if resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: azure token status code %d", ErrServiceUnavailable, resp.StatusCode)
	}

	return string(token), nil
}

func (c *AzureClient) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: azure subscription key is not set", ErrServiceUnavailable)
	}

	start := time.Now()

	token, err := c.issueToken(ctx)
	if err != nil {
		metrics.Errors.WithLabelValues("azure", "token").Inc()
		return nil, err
	}

	voiceName := opts.Voice
	if voiceName == "" {
		voiceName = c.cfg.VoiceName
	}
	if voiceName == "" {
		voiceName = "ta-IN-PallaviNeural"
	}

	ssml := fmt.Sprintf(
		`<speak version='1.0' xml:lang='ta-IN'><voice name='%s'>%s</voice></speak>`,
		voiceName, html.EscapeString(text),
	)

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ttsURL(), bytes.NewReader([]byte(ssml)))
	if err != nil {
		return nil, fmt.Errorf("failed to create azure tts request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set("Content-Type", "application/ssml+xml")
	request.Header.Set("X-Microsoft-OutputFormat", "audio-16khz-128kbitrate-mono-mp3")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues("azure", "transport").Inc()
		return nil, fmt.Errorf("%w: azure tts request failed: %s", ErrServiceUnavailable, err)
	}
	defer tools.DrainAndClose(resp.Body)

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Errors.WithLabelValues("azure", "500").Inc()
		return nil, fmt.Errorf("failed to read azure tts response: %w", err)
	}

	if resp.StatusCode > 299 {
		metrics.Errors.WithLabelValues("azure", strconv.Itoa(resp.StatusCode)).Inc()
		return nil, fmt.Errorf("%w: status code %d, err - %s", ErrServiceUnavailable, resp.StatusCode, string(respData))
	}

	metrics.QueryTime.WithLabelValues("azure").Observe(time.Since(start).Seconds())

	return respData, nil
}
