package processor

import (
	"context"

	"app/pkg/translator"
	"app/pkg/tts"
)

// SpeechService routes a synthesis call to a named provider.
type SpeechService interface {
	Synthesize(ctx context.Context, provider, text string, opts tts.Options) ([]byte, error)
}

// Translator is the optional LLM modernization step.
type Translator interface {
	Configured() bool
	Modernize(ctx context.Context, text string) (*translator.Modernization, error)
	WordMappings(ctx context.Context, text string) (*translator.WordMapping, error)
}
