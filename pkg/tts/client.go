// Package tts turns normalized Tamil text into MP3 audio. Providers are
// thin HTTP clients over external synthesis services; the Service picks
// one by name and falls back to the free engine when a premium provider
// is unavailable.
package tts

import (
	"context"
	"errors"
	"net/http"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	// ErrServiceUnavailable marks transport failures and 5xx answers
	// from a synthesis provider. Not retried here, retry policy belongs
	// to the caller.
	ErrServiceUnavailable = errors.New("speech service unavailable")

	// ErrUnsupportedLanguage is returned when a provider cannot speak
	// the requested language.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	ErrUnknownProvider = errors.New("unknown tts provider")
)

// Options tune a single synthesis call. The zero value asks for the
// default accent at normal speed.
type Options struct {
	// Accent is the google top level domain to route through, different
	// domains give slightly different voices ("com", "co.in", ...).
	Accent string

	// Slow slows the speech down for clarity.
	Slow bool

	// Voice overrides the provider's default voice, where supported.
	Voice string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts Options) ([]byte, error)
}

// tamilLanguageCode is what every provider here speaks.
const tamilLanguageCode = "ta"
