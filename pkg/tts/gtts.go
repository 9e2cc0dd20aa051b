package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"app/pkg/tools"
)

type GTTSConfig struct {
	// URL overrides the endpoint, mostly for tests. When empty the
	// endpoint is built from the accent tld.
	URL string `yaml:"url"`

	Language      string `yaml:"language"`
	DefaultAccent string `yaml:"default_accent"`
}

// GTTSClient speaks through the free google translate voice. No API key
// required, which also makes it the fallback for every premium provider.
type GTTSClient struct {
	cfg        *GTTSConfig
	httpClient HTTPClient
}

func NewGTTSClient(httpClient HTTPClient, cfg *GTTSConfig) *GTTSClient {
	return &GTTSClient{
		httpClient: httpClient,
		cfg:        cfg,
	}
}

func (c *GTTSClient) language() string {
	if c.cfg.Language != "" {
		return c.cfg.Language
	}

	return tamilLanguageCode
}

func (c *GTTSClient) endpoint(accent string) string {
	if c.cfg.URL != "" {
		return c.cfg.URL
	}

	if accent == "" {
		accent = c.cfg.DefaultAccent
	}
	if accent == "" {
		accent = "com"
	}

	return fmt.Sprintf("https://translate.google.%s/translate_tts", accent)
}

func (c *GTTSClient) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	start := time.Now()

	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", c.language())
	query.Set("q", text)
	if opts.Slow {
		query.Set("ttsspeed", "0.3")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(opts.Accent)+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gtts request: %w", err)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		metrics.Errors.WithLabelValues("gtts", "transport").Inc()
		return nil, fmt.Errorf("%w: gtts request failed: %s", ErrServiceUnavailable, err)
	}
	defer tools.DrainAndClose(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.Errors.WithLabelValues("gtts", "500").Inc()
		return nil, fmt.Errorf("failed to read gtts response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		metrics.Errors.WithLabelValues("gtts", strconv.Itoa(resp.StatusCode)).Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, c.language())
	}

	if resp.StatusCode > 299 {
		metrics.Errors.WithLabelValues("gtts", strconv.Itoa(resp.StatusCode)).Inc()
		return nil, fmt.Errorf("%w: status code %d, err - %s", ErrServiceUnavailable, resp.StatusCode, string(data))
	}

	metrics.QueryTime.WithLabelValues("gtts").Observe(time.Since(start).Seconds())

	return data, nil
}
