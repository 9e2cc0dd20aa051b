// Package processor runs the text pipeline behind every synthesis
// request: classical preprocessing, dictionary normalization, optional
// LLM modernization, then speech synthesis. All state it touches per
// request is request-scoped; the base dictionary is read-only.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"app/db"
	"app/pkg/audiostore"
	"app/pkg/normalizer"
	"app/pkg/preprocess"
	"app/pkg/slg"
	"app/pkg/translator"
	"app/pkg/tts"
)

// ErrTranslatorUnavailable is returned when an operation needs the
// language model but none is configured.
var ErrTranslatorUnavailable = errors.New("translator is not configured")

type Service struct {
	logger *slog.Logger

	baseDict *normalizer.Dictionary
	store    db.DictionaryStore

	speech     SpeechService
	translator Translator

	audioStore *audiostore.Store
}

func NewService(logger *slog.Logger, baseDict *normalizer.Dictionary, store db.DictionaryStore,
	speech SpeechService, translator Translator, audioStore *audiostore.Store) *Service {
	return &Service{
		logger: logger,

		baseDict: baseDict,
		store:    store,

		speech:     speech,
		translator: translator,

		audioStore: audioStore,
	}
}

// Request mirrors the options the input form exposes.
type Request struct {
	Text string `json:"text"`

	Provider string `json:"provider"`
	Accent   string `json:"accent"`
	Voice    string `json:"voice"`
	Slow     bool   `json:"slow"`

	ModernWords   bool `json:"modern_words"`
	Preprocessing bool `json:"preprocessing"`
	AITranslate   bool `json:"ai_translate"`
}

type TextResult struct {
	ProcessedText string                   `json:"processed_text"`
	Replacements  []normalizer.Replacement `json:"replacements,omitempty"`
	AIChanges     []string                 `json:"ai_changes,omitempty"`
}

type Result struct {
	TextResult

	AudioID   string `json:"audio_id"`
	SizeBytes int    `json:"size_bytes"`

	Audio []byte `json:"-"`
}

// dictionary merges the user's custom entries over the embedded base. A
// failing store degrades to the base dictionary instead of failing the
// request.
func (s *Service) dictionary(ctx context.Context) *normalizer.Dictionary {
	if s.store == nil {
		return s.baseDict
	}

	overrides, err := s.store.LoadMappings(ctx)
	if err != nil {
		slg.GetSlog(ctx).Warn("failed to load custom dictionary, using base only", "err", err)

		return s.baseDict
	}

	if len(overrides) == 0 {
		return s.baseDict
	}

	return s.baseDict.Merge(overrides)
}

// ProcessText runs the text passes without synthesizing audio.
func (s *Service) ProcessText(ctx context.Context, req *Request) *TextResult {
	result := &TextResult{ProcessedText: req.Text}

	if req.Preprocessing {
		result.ProcessedText = preprocess.Apply(result.ProcessedText, preprocess.All)
	}

	if req.ModernWords {
		dict := s.dictionary(ctx)

		result.Replacements = normalizer.Replacements(result.ProcessedText, dict)
		result.ProcessedText = normalizer.Normalize(result.ProcessedText, dict)
	}

	if req.AITranslate && s.translator != nil && s.translator.Configured() {
		modernization, err := s.translator.Modernize(ctx, result.ProcessedText)
		if err != nil {
			// dictionary output is still usable, keep going with it
			slg.GetSlog(ctx).Warn("ai modernization failed, keeping dictionary result", "err", err)
		} else {
			result.ProcessedText = modernization.ModernizedText
			result.AIChanges = modernization.ChangesMade
		}
	}

	return result
}

// BaseEntries returns a copy of the embedded dictionary mapping for the
// built-in dictionary view.
func (s *Service) BaseEntries() map[string]string {
	return s.baseDict.Entries()
}

// SuggestMappings asks the language model for classical-to-modern word
// pairs in the text, suitable for seeding the custom dictionary.
func (s *Service) SuggestMappings(ctx context.Context, text string) (*translator.WordMapping, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}

	if s.translator == nil || !s.translator.Configured() {
		return nil, ErrTranslatorUnavailable
	}

	return s.translator.WordMappings(ctx, text)
}

// Audio returns previously generated audio by id.
func (s *Service) Audio(id string) ([]byte, bool) {
	return s.audioStore.Get(id)
}

// Synthesize runs ProcessText, calls the speech service and parks the
// audio in the store for the playback and download endpoints.
func (s *Service) Synthesize(ctx context.Context, req *Request) (*Result, error) {
	if req.Text == "" {
		return nil, fmt.Errorf("empty text")
	}

	return s.SynthesizeProcessed(ctx, req, s.ProcessText(ctx, req))
}

// SynthesizeProcessed synthesizes text that already went through
// ProcessText. Callers that stream the text result to the client before
// the audio use it to avoid running the pipeline twice.
func (s *Service) SynthesizeProcessed(ctx context.Context, req *Request, textResult *TextResult) (*Result, error) {
	audio, err := s.speech.Synthesize(ctx, req.Provider, textResult.ProcessedText, tts.Options{
		Accent: req.Accent,
		Slow:   req.Slow,
		Voice:  req.Voice,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	id := s.audioStore.Put(audio)

	s.logger.Debug("synthesized audio",
		"provider", req.Provider,
		"audio_id", id,
		"size_bytes", len(audio),
	)

	return &Result{
		TextResult: *textResult,

		AudioID:   id,
		SizeBytes: len(audio),

		Audio: audio,
	}, nil
}
