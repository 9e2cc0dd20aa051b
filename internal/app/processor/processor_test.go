package processor

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"app/db"
	"app/pkg/audiostore"
	"app/pkg/normalizer"
	"app/pkg/translator"
	"app/pkg/tts"

	"github.com/stretchr/testify/require"
)

type fakeSpeech struct {
	lastProvider string
	lastText     string
	lastOpts     tts.Options

	audio []byte
	err   error
}

func (f *fakeSpeech) Synthesize(ctx context.Context, provider, text string, opts tts.Options) ([]byte, error) {
	f.lastProvider = provider
	f.lastText = text
	f.lastOpts = opts

	return f.audio, f.err
}

type fakeTranslator struct {
	result   *translator.Modernization
	mappings *translator.WordMapping
	err      error
}

func (f *fakeTranslator) Configured() bool { return true }

func (f *fakeTranslator) Modernize(ctx context.Context, text string) (*translator.Modernization, error) {
	return f.result, f.err
}

func (f *fakeTranslator) WordMappings(ctx context.Context, text string) (*translator.WordMapping, error) {
	return f.mappings, f.err
}

func newTestService(t *testing.T, speech SpeechService, tr Translator) *Service {
	t.Helper()

	baseDict, err := normalizer.NewDictionary(map[string]string{
		"பழசு": "பழையது",
		"யான்": "நான்",
	})
	require.NoError(t, err)

	store, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewService(slog.Default(), baseDict, store, speech, tr, audiostore.New(time.Minute))
}

func TestProcessTextDictionaryOnly(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{}, nil)

	result := service.ProcessText(context.Background(), &Request{
		Text:        "பழசு, வாங்கு.",
		ModernWords: true,
	})

	assert.Equal("பழையது, வாங்கு.", result.ProcessedText)
	assert.Equal([]normalizer.Replacement{{From: "பழசு", To: "பழையது"}}, result.Replacements)
}

func TestProcessTextUsesCustomEntries(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{}, nil)

	err := service.store.UpsertEntry(context.Background(), "ஈண்டு", "இங்கு", "")
	assert.NoError(err)

	result := service.ProcessText(context.Background(), &Request{
		Text:        "ஈண்டு வருக",
		ModernWords: true,
	})

	assert.Equal("இங்கு வருக", result.ProcessedText)
}

func TestProcessTextWithoutFlagsIsIdentity(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{}, nil)

	result := service.ProcessText(context.Background(), &Request{Text: "பழசு, வாங்கு."})

	assert.Equal("பழசு, வாங்கு.", result.ProcessedText)
	assert.Empty(result.Replacements)
}

func TestProcessTextAITranslateFailureKeepsDictionaryResult(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{}, &fakeTranslator{err: errors.New("model down")})

	result := service.ProcessText(context.Background(), &Request{
		Text:        "யான் வந்தேன்",
		ModernWords: true,
		AITranslate: true,
	})

	assert.Equal("நான் வந்தேன்", result.ProcessedText)
}

func TestProcessTextAITranslate(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{}, &fakeTranslator{
		result: &translator.Modernization{
			ModernizedText: "நான் உலகைக் கண்டேன்",
			ChangesMade:    []string{"ஞாலம் -> உலகம்"},
		},
	})

	result := service.ProcessText(context.Background(), &Request{
		Text:        "யான் ஞாலம் கண்டேன்",
		AITranslate: true,
	})

	assert.Equal("நான் உலகைக் கண்டேன்", result.ProcessedText)
	assert.Equal([]string{"ஞாலம் -> உலகம்"}, result.AIChanges)
}

func TestBaseEntries(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{}, nil)

	entries := service.BaseEntries()
	assert.Equal("பழையது", entries["பழசு"])

	// mutating the copy must not touch the base dictionary
	entries["பழசு"] = "changed"
	assert.Equal("பழையது", service.BaseEntries()["பழசு"])
}

func TestSuggestMappings(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{}, &fakeTranslator{
		mappings: &translator.WordMapping{
			WordMappings: map[string]string{"யான்": "நான்"},
			Analysis:     "one archaic pronoun",
		},
	})

	mapping, err := service.SuggestMappings(context.Background(), "யான் வந்தேன்")
	assert.NoError(err)
	assert.Equal(map[string]string{"யான்": "நான்"}, mapping.WordMappings)
}

func TestSuggestMappingsWithoutTranslator(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{}, nil)

	_, err := service.SuggestMappings(context.Background(), "யான் வந்தேன்")
	assert.ErrorIs(err, ErrTranslatorUnavailable)

	_, err = service.SuggestMappings(context.Background(), "")
	assert.Error(err)
}

func TestSynthesize(t *testing.T) {
	assert := require.New(t)

	speech := &fakeSpeech{audio: []byte("mp3-bytes")}
	service := newTestService(t, speech, nil)

	result, err := service.Synthesize(context.Background(), &Request{
		Text:        "பழசு",
		Provider:    tts.ProviderGTTS,
		Accent:      "co.in",
		Slow:        true,
		ModernWords: true,
	})
	assert.NoError(err)

	assert.Equal("பழையது", speech.lastText)
	assert.Equal(tts.ProviderGTTS, speech.lastProvider)
	assert.Equal("co.in", speech.lastOpts.Accent)
	assert.True(speech.lastOpts.Slow)

	assert.Equal(len("mp3-bytes"), result.SizeBytes)
	assert.NotEmpty(result.AudioID)

	stored, ok := service.audioStore.Get(result.AudioID)
	assert.True(ok)
	assert.Equal([]byte("mp3-bytes"), stored)
}

func TestSynthesizeEmptyText(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{}, nil)

	_, err := service.Synthesize(context.Background(), &Request{})
	assert.Error(err)
}

func TestSynthesizeSurfacesSpeechErrors(t *testing.T) {
	assert := require.New(t)

	service := newTestService(t, &fakeSpeech{err: tts.ErrServiceUnavailable}, nil)

	_, err := service.Synthesize(context.Background(), &Request{Text: "பழசு"})
	assert.ErrorIs(err, tts.ErrServiceUnavailable)
}
