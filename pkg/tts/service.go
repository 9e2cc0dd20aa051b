package tts

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	ProviderGTTS        = "gtts"
	ProviderElevenLabs  = "elevenlabs"
	ProviderGoogleCloud = "google_cloud"
	ProviderAzure       = "azure"
)

type ServiceConfig struct {
	DefaultProvider string `yaml:"default_provider"`

	GTTS        GTTSConfig        `yaml:"gtts"`
	ElevenLabs  ElevenLabsConfig  `yaml:"elevenlabs"`
	GoogleCloud GoogleCloudConfig `yaml:"google_cloud"`
	Azure       AzureConfig       `yaml:"azure"`
}

// Service routes synthesis calls to a named provider and falls back to
// the free engine when a premium provider fails, matching the behavior
// users get from the original tool. The fallback is logged and counted,
// never silent.
type Service struct {
	logger *slog.Logger

	providers map[string]Synthesizer
	fallback  Synthesizer

	defaultProvider string
}

func NewService(logger *slog.Logger, httpClient HTTPClient, cfg *ServiceConfig) *Service {
	gtts := NewGTTSClient(httpClient, &cfg.GTTS)

	providers := map[string]Synthesizer{
		ProviderGTTS:        gtts,
		ProviderElevenLabs:  NewElevenLabsClient(httpClient, &cfg.ElevenLabs),
		ProviderGoogleCloud: NewGoogleCloudClient(httpClient, &cfg.GoogleCloud),
		ProviderAzure:       NewAzureClient(httpClient, &cfg.Azure),
	}

	defaultProvider := cfg.DefaultProvider
	if defaultProvider == "" {
		defaultProvider = ProviderGTTS
	}

	return &Service{
		logger: logger,

		providers: providers,
		fallback:  gtts,

		defaultProvider: defaultProvider,
	}
}

// Providers lists the known provider names, sorted.
func (s *Service) Providers() []string {
	names := maps.Keys(s.providers)
	slices.Sort(names)

	return names
}

// Synthesize runs the named provider, or the configured default when the
// name is empty. A premium provider error triggers one fallback attempt
// through the free engine; the fallback never re-enters itself.
func (s *Service) Synthesize(ctx context.Context, provider, text string, opts Options) ([]byte, error) {
	if provider == "" {
		provider = s.defaultProvider
	}

	synthesizer, ok := s.providers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	audio, err := synthesizer.Synthesize(ctx, text, opts)
	if err == nil {
		return audio, nil
	}

	if provider == ProviderGTTS {
		return nil, err
	}

	s.logger.Warn("provider failed, falling back to gtts", "provider", provider, "err", err)
	metrics.Fallbacks.WithLabelValues(provider).Inc()

	audio, fallbackErr := s.fallback.Synthesize(ctx, text, opts)
	if fallbackErr != nil {
		return nil, fmt.Errorf("provider %s failed (%s), fallback failed too: %w", provider, err, fallbackErr)
	}

	return audio, nil
}
