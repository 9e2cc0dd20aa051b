package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     Options
		expected string
	}{
		{
			name:     "zero options is identity",
			input:    "தல்லும் ழ்",
			opts:     Options{},
			expected: "தல்லும் ழ்",
		},
		{
			name:     "sandhi split",
			input:    "அவன் கண்டும் சென்றான்",
			opts:     Options{Sandhi: true},
			expected: "அவன் கண்டு உம் சென்றான்",
		},
		{
			name:     "phonetic simplification",
			input:    "தமிழ் நன்னூல்",
			opts:     Options{Phonetic: true},
			expected: "தமிள் நண்ணூல்",
		},
		{
			name:     "verb ending rewrite",
			input:    "வாழ்வே வளம்",
			opts:     Options{VerbEndings: true},
			expected: "வாழ்வது வளம்",
		},
		{
			name:     "verb ending only at word end",
			input:    "வேகம்",
			opts:     Options{VerbEndings: true},
			expected: "வேகம்",
		},
		{
			name:     "empty input",
			input:    "",
			opts:     All,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Apply(tt.input, tt.opts))
		})
	}
}

func TestApplyPreservesLayoutWhenNoVerbEndingMatches(t *testing.T) {
	input := "வரி ஒன்று,\nவரி இரண்டு!"

	assert.Equal(t, input, Apply(input, All))
}
