package normalizer

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tamil_dictionary.yaml
var tamilDictionaryYAML []byte

// LoadTamilDictionary parses the embedded classical-to-modern Tamil
// mapping. Call it once at startup and pass the result around.
func LoadTamilDictionary() (*Dictionary, error) {
	mapping := map[string]string{}
	if err := yaml.Unmarshal(tamilDictionaryYAML, &mapping); err != nil {
		return nil, fmt.Errorf("failed to parse embedded tamil dictionary: %w", err)
	}

	dict, err := NewDictionary(mapping)
	if err != nil {
		return nil, fmt.Errorf("embedded tamil dictionary is invalid: %w", err)
	}

	return dict, nil
}
