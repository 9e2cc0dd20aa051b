package normalizer

import (
	"fmt"

	"golang.org/x/exp/maps"
)

// Dictionary is a read-only classical-to-modern word mapping. It is
// constructed once at startup and shared across requests; mutation after
// construction is not possible through the exported surface.
type Dictionary struct {
	entries map[string]string
}

// NewDictionary builds a dictionary from raw key/value pairs. Keys must be
// single tokens: entries whose key is empty or contains separator runes
// (whitespace, punctuation) are rejected. Values may contain spaces, a
// classical word may well expand to a modern phrase.
func NewDictionary(mapping map[string]string) (*Dictionary, error) {
	entries := make(map[string]string, len(mapping))

	for from, to := range mapping {
		if from == "" {
			return nil, fmt.Errorf("empty dictionary key")
		}

		if !isSingleToken(from) {
			return nil, fmt.Errorf("dictionary key %q is not a single token", from)
		}

		entries[from] = to
	}

	return &Dictionary{entries: entries}, nil
}

func isSingleToken(s string) bool {
	segments := Segments(s)

	return len(segments) == 1 && segments[0].Type == Word
}

// Lookup returns the modern form of a word. Matching is exact string
// equality on the full token.
func (d *Dictionary) Lookup(word string) (string, bool) {
	if d == nil {
		return "", false
	}

	to, ok := d.entries[word]

	return to, ok
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}

	return len(d.entries)
}

// Entries returns a copy of the underlying mapping.
func (d *Dictionary) Entries() map[string]string {
	if d == nil {
		return map[string]string{}
	}

	return maps.Clone(d.entries)
}

// Merge produces a new dictionary containing the receiver's entries plus
// the given overrides. Override keys that are not single tokens are
// skipped instead of failing the whole merge: user-supplied entries must
// not break the base dictionary.
func (d *Dictionary) Merge(overrides map[string]string) *Dictionary {
	entries := make(map[string]string, d.Len()+len(overrides))

	if d != nil {
		maps.Copy(entries, d.entries)
	}

	for from, to := range overrides {
		if from == "" || !isSingleToken(from) {
			continue
		}

		entries[from] = to
	}

	return &Dictionary{entries: entries}
}
