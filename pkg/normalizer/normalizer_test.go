package normalizer

import (
	"strings"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDictionary(t *testing.T) *Dictionary {
	t.Helper()

	dict, err := NewDictionary(map[string]string{
		"பழசு":    "பழையது",
		"யாண்டு":  "ஆண்டு",
		"ஞாலம்":   "உலகம்",
		"யான்":    "நான்",
		"எந்தை":   "என் தந்தை",
		"கல்":     "கல்லு",
		"old":     "new",
	})
	require.NoError(t, err)

	return dict
}

func wordCount(s string) int {
	count := 0
	for _, segment := range Segments(s) {
		if segment.Type == Word {
			count++
		}
	}

	return count
}

func TestNormalize(t *testing.T) {
	dict := testDictionary(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "exact match with trailing punctuation",
			input:    "பழசு, வாங்கு.",
			expected: "பழையது, வாங்கு.",
		},
		{
			name:     "no partial match on superstring",
			input:    "கல்வி",
			expected: "கல்வி",
		},
		{
			name:     "multiple replacements",
			input:    "யான் ஞாலம் கண்டேன்",
			expected: "நான் உலகம் கண்டேன்",
		},
		{
			name:     "leading punctuation preserved",
			input:    "“பழசு” என்றார்",
			expected: "“பழையது” என்றார்",
		},
		{
			name:     "newlines and poem layout preserved",
			input:    "யாண்டு பல,\nஞாலம் ஒன்று!",
			expected: "ஆண்டு பல,\nஉலகம் ஒன்று!",
		},
		{
			name:     "value may be a phrase",
			input:    "எந்தை வந்தார்",
			expected: "என் தந்தை வந்தார்",
		},
		{
			name:     "no matches yields identical output",
			input:    "இது நவீன உரை.",
			expected: "இது நவீன உரை.",
		},
		{
			name:     "ascii tokens",
			input:    "old word, old!",
			expected: "new word, new!",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "separators only",
			input:    " ... \t\n",
			expected: " ... \t\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input, dict)
			if got != tt.expected {
				t.Fatalf("normalize mismatch:\n%s", diff.Diff(tt.expected, got))
			}
		})
	}
}

func TestNormalizeIdentityOnEmptyDictionary(t *testing.T) {
	assert := assert.New(t)

	empty, err := NewDictionary(nil)
	require.NoError(t, err)

	inputs := []string{
		"",
		"பழசு, வாங்கு.",
		"hello world",
		"!?!?",
		"line one\nline two\n",
	}

	for _, input := range inputs {
		assert.Equal(input, Normalize(input, empty))
		assert.Equal(input, Normalize(input, nil))
	}
}

func TestNormalizePreservesSeparators(t *testing.T) {
	assert := assert.New(t)

	dict := testDictionary(t)

	inputs := []string{
		"பழசு, வாங்கு.",
		"யான்... ஞாலம்?!",
		"  யாண்டு  \n\t பழசு  ",
		"(old) [old] {old}",
	}

	for _, input := range inputs {
		output := Normalize(input, dict)

		var inSeps, outSeps []string
		for _, segment := range Segments(input) {
			if segment.Type == Separator {
				inSeps = append(inSeps, segment.Text)
			}
		}
		for _, segment := range Segments(output) {
			if segment.Type == Separator {
				outSeps = append(outSeps, segment.Text)
			}
		}

		assert.Equal(inSeps, outSeps, "separator layout changed for %q", input)
		assert.Equal(wordCount(input), wordCount(output), "word count changed for %q", input)
	}
}

func TestNormalizeIdempotentOnModernText(t *testing.T) {
	assert := assert.New(t)

	dict := testDictionary(t)

	// every token is already a dictionary value, not a key
	input := "நான் உலகம் பழையது"

	once := Normalize(input, dict)
	assert.Equal(input, once)
	assert.Equal(once, Normalize(once, dict))
}

func TestNormalizeInvalidUTF8(t *testing.T) {
	assert := assert.New(t)

	dict := testDictionary(t)

	// broken bytes are opaque word runes, never an error
	input := "old \xff\xfe old"
	output := Normalize(input, dict)

	assert.Equal("new \xff\xfe new", output)
}

func TestSegmentsReconstruction(t *testing.T) {
	assert := assert.New(t)

	inputs := []string{
		"",
		"பழசு",
		"பழசு, வாங்கு.",
		", leading and trailing ,",
		"    ",
		"a\xffb",
		"யாண்டு்டு", // virama mark stays inside the word segment
	}

	for _, input := range inputs {
		segments := Segments(input)

		var b strings.Builder
		for i, segment := range segments {
			assert.NotEmpty(segment.Text)

			if i > 0 {
				assert.NotEqual(segments[i-1].Type, segment.Type, "adjacent segments must alternate in %q", input)
			}

			b.WriteString(segment.Text)
		}

		assert.Equal(input, b.String(), "reconstruction broken for %q", input)
	}
}

func TestNewDictionaryRejectsMultiTokenKeys(t *testing.T) {
	assert := assert.New(t)

	_, err := NewDictionary(map[string]string{"two words": "x"})
	assert.Error(err)

	_, err = NewDictionary(map[string]string{"": "x"})
	assert.Error(err)

	_, err = NewDictionary(map[string]string{"word.": "x"})
	assert.Error(err)
}

func TestDictionaryMerge(t *testing.T) {
	assert := assert.New(t)

	base := testDictionary(t)

	merged := base.Merge(map[string]string{
		"பழசு":      "புதியது", // override wins
		"custom":    "entry",
		"bad key":   "skipped",
		"":          "skipped",
	})

	to, ok := merged.Lookup("பழசு")
	assert.True(ok)
	assert.Equal("புதியது", to)

	to, ok = merged.Lookup("custom")
	assert.True(ok)
	assert.Equal("entry", to)

	_, ok = merged.Lookup("bad key")
	assert.False(ok)

	// base dictionary untouched
	to, ok = base.Lookup("பழசு")
	assert.True(ok)
	assert.Equal("பழையது", to)
	_, ok = base.Lookup("custom")
	assert.False(ok)
}

func TestReplacements(t *testing.T) {
	assert := assert.New(t)

	dict := testDictionary(t)

	replacements := Replacements("பழசு பழசு, யான் வந்தேன்", dict)
	assert.Equal([]Replacement{
		{From: "பழசு", To: "பழையது"},
		{From: "யான்", To: "நான்"},
	}, replacements)

	assert.Nil(Replacements("நவீன உரை", dict))
	assert.Nil(Replacements("", dict))
}

func TestLoadTamilDictionary(t *testing.T) {
	assert := assert.New(t)

	dict, err := LoadTamilDictionary()
	assert.NoError(err)
	assert.NotZero(dict.Len())

	to, ok := dict.Lookup("பழசு")
	assert.True(ok)
	assert.Equal("பழையது", to)
}
