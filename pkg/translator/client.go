// Package translator modernizes classical Tamil through an
// OpenAI-compatible chat completions endpoint. It complements the
// dictionary pass for text the static mapping cannot cover; callers fall
// back to dictionary-only normalization when it fails.
package translator

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

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	URL         string `yaml:"url"`
	AccessToken string `yaml:"access_token"`

	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type Client struct {
	httpClient HTTPClient
	cfg        *Config
}

func New(httpClient HTTPClient, cfg *Config) *Client {
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

func (c *Client) Configured() bool {
	return c.cfg.URL != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Modernization is what the model returns for a full-text pass.
type Modernization struct {
	ModernizedText string   `json:"modernized_text"`
	ChangesMade    []string `json:"changes_made"`
	Confidence     float64  `json:"confidence"`
}

// WordMapping is the word-by-word analysis variant.
type WordMapping struct {
	WordMappings map[string]string `json:"word_mappings"`
	Analysis     string            `json:"analysis"`
}

const modernizeSystemPrompt = "You are a Tamil language expert specializing in classical to modern " +
	"Tamil translation. Respond only in valid JSON format."

const modernizePromptTemplate = `Modernize this classical Tamil text for better text-to-speech pronunciation while preserving its poetic meaning and structure:

%q

Rules:
1. Replace archaic Tamil words with their modern equivalents
2. Normalize classical grammar constructions to modern forms
3. Handle sandhi (euphonic combinations) appropriately
4. Maintain the poetic meter and meaning
5. Only change what needs to be modernized

Respond with JSON: {"modernized_text": "...", "changes_made": ["..."], "confidence": 0.95}`

const wordMappingPromptTemplate = `Analyze this classical Tamil text word by word and provide modern equivalents for every archaic word:

%q

Respond with JSON: {"word_mappings": {"classical": "modern"}, "analysis": "..."}`

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	req := &chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:      c.cfg.MaxTokens,
		Temperature:    temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := strings.TrimRight(c.cfg.URL, "/") + "/v1/chat/completions"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	if c.cfg.AccessToken != "" {
		request.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	}

	start := time.Now()

	response, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues("transport").Inc()
		return "", fmt.Errorf("failed to do chat request: %w", err)
	}
	defer tools.DrainAndClose(response.Body)

	responseData, err := io.ReadAll(response.Body)
	if err != nil {
		metrics.Errors.WithLabelValues("500").Inc()
		return "", fmt.Errorf("failed to read chat response body: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		metrics.Errors.WithLabelValues(strconv.Itoa(response.StatusCode)).Inc()
		return "", fmt.Errorf("unexpected status code: %d, body: %s", response.StatusCode, string(responseData))
	}

	var resp chatResponse
	if err := json.Unmarshal(responseData, &resp); err != nil {
		metrics.Errors.WithLabelValues("500").Inc()
		return "", fmt.Errorf("failed to unmarshal chat response: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty chat response")
	}

	metrics.QueryTime.Observe(time.Since(start).Seconds())

	return resp.Choices[0].Message.Content, nil
}

// Modernize rewrites the whole text. On any failure the caller should
// continue with the dictionary-normalized text instead.
func (c *Client) Modernize(ctx context.Context, text string) (*Modernization, error) {
	content, err := c.complete(ctx, modernizeSystemPrompt, fmt.Sprintf(modernizePromptTemplate, text), 0.3)
	if err != nil {
		return nil, err
	}

	result := &Modernization{}
	if err := json.Unmarshal([]byte(content), result); err != nil {
		return nil, fmt.Errorf("failed to parse modernization json: %w", err)
	}

	if result.ModernizedText == "" {
		return nil, fmt.Errorf("model returned no modernized text")
	}

	return result, nil
}

// WordMappings asks for per-word classical-to-modern pairs, suitable for
// seeding the custom dictionary.
func (c *Client) WordMappings(ctx context.Context, text string) (*WordMapping, error) {
	content, err := c.complete(ctx, modernizeSystemPrompt, fmt.Sprintf(wordMappingPromptTemplate, text), 0.2)
	if err != nil {
		return nil, err
	}

	result := &WordMapping{}
	if err := json.Unmarshal([]byte(content), result); err != nil {
		return nil, fmt.Errorf("failed to parse word mapping json: %w", err)
	}

	return result, nil
}
