// Package normalizer rewrites archaic Tamil words to their modern
// equivalents using exact-match dictionary lookup while keeping the
// punctuation and whitespace layout of the input intact.
//
// The scanner splits text into maximal runs of word runes and separator
// runes. Punctuation, whitespace and symbols are separators; every other
// rune, Tamil letters and combining marks included, is a word rune. Only
// word segments are ever replaced, so concatenating the output segments
// always yields a string with the same separator positions and the same
// word count as the input.
package normalizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type SegmentType int

const (
	Word SegmentType = iota
	Separator
)

// Segment is a maximal run of word or separator runes.
type Segment struct {
	Text string
	Type SegmentType
}

// Replacement records one dictionary substitution that was applied.
type Replacement struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func isSeparatorRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// Segments splits text into an alternating sequence of word and
// separator segments. Concatenating the segment texts in order
// reproduces the input exactly. Invalid UTF-8 bytes are treated as
// opaque word runes rather than rejected.
func Segments(text string) []Segment {
	if text == "" {
		return nil
	}

	segments := []Segment{}

	start := 0
	var curType SegmentType

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		segType := Word
		// a real U+FFFD in the input is 3 bytes, size 1 means a broken byte
		if !(r == utf8.RuneError && size == 1) && isSeparatorRune(r) {
			segType = Separator
		}

		if i == 0 {
			curType = segType
		} else if segType != curType {
			segments = append(segments, Segment{Text: text[start:i], Type: curType})
			start = i
			curType = segType
		}

		i += size
	}

	return append(segments, Segment{Text: text[start:], Type: curType})
}

// Normalize replaces every word segment that has an exact dictionary
// match and leaves everything else untouched. It is a pure function:
// empty input yields empty output, a nil or empty dictionary yields the
// input unchanged.
func Normalize(text string, dict *Dictionary) string {
	if text == "" || dict.Len() == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for _, segment := range Segments(text) {
		if segment.Type == Word {
			if to, ok := dict.Lookup(segment.Text); ok {
				b.WriteString(to)

				continue
			}
		}

		b.WriteString(segment.Text)
	}

	return b.String()
}

// Replacements returns the distinct substitutions Normalize would apply
// to the text, in order of first occurrence.
func Replacements(text string, dict *Dictionary) []Replacement {
	if text == "" || dict.Len() == 0 {
		return nil
	}

	var replacements []Replacement
	seen := map[string]bool{}

	for _, segment := range Segments(text) {
		if segment.Type != Word || seen[segment.Text] {
			continue
		}

		if to, ok := dict.Lookup(segment.Text); ok {
			seen[segment.Text] = true
			replacements = append(replacements, Replacement{From: segment.Text, To: to})
		}
	}

	return replacements
}
