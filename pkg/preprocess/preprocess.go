// Package preprocess prepares classical Tamil text for speech synthesis.
// The passes resolve common sandhi combinations, simplify a few sounds
// the synthesis voices struggle with and rewrite classical verb endings
// to their modern forms. Each pass is optional, the zero Options value
// applies none of them.
package preprocess

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type Options struct {
	Sandhi      bool
	Phonetic    bool
	VerbEndings bool
}

// All enables every pass.
var All = Options{Sandhi: true, Phonetic: true, VerbEndings: true}

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

func mustRules(pairs [][2]string) []rule {
	rules := make([]rule, 0, len(pairs))
	for _, pair := range pairs {
		rules = append(rules, rule{
			pattern:     regexp.MustCompile(pair[0]),
			replacement: pair[1],
		})
	}

	return rules
}

// sandhiRules split euphonic combinations into separate words so the
// synthesis engine pronounces both parts.
var sandhiRules = mustRules([][2]string{
	{`தல்லும்`, `தான் அல்லும்`},
	{`கண்டும்`, `கண்டு உம்`},
	{`செய்தும்`, `செய்து உம்`},
	{`வந்தும்`, `வந்து உம்`},
	{`போனும்`, `போன உம்`},
})

// phoneticRules trade precision for pronounceability.
var phoneticRules = mustRules([][2]string{
	{`ழ்`, `ள்`},
	{`ற்ற`, `ட்ட`},
	{`ன்ன`, `ண்ண`},
})

// verbEndingRules rewrite classical verb endings, applied per word.
var verbEndingRules = mustRules([][2]string{
	{`^(\S+)ுமே$`, `${1}ும்`},
	{`^(\S+)வே$`, `${1}வது`},
	{`^(\S+)தே$`, `${1}ததே`},
})

// Apply runs the enabled passes over the text. The input is brought to
// NFC first so pattern matching does not depend on how the source
// composed its combining marks.
func Apply(text string, opts Options) string {
	if text == "" {
		return text
	}

	text = norm.NFC.String(text)

	if opts.Sandhi {
		for _, r := range sandhiRules {
			text = r.pattern.ReplaceAllString(text, r.replacement)
		}
	}

	if opts.Phonetic {
		for _, r := range phoneticRules {
			text = r.pattern.ReplaceAllString(text, r.replacement)
		}
	}

	if opts.VerbEndings {
		words := strings.Fields(text)
		changed := false

		for i, word := range words {
			for _, r := range verbEndingRules {
				rewritten := r.pattern.ReplaceAllString(word, r.replacement)
				if rewritten != word {
					words[i] = rewritten
					changed = true

					break
				}
			}
		}

		if changed {
			text = strings.Join(words, " ")
		}
	}

	return text
}
