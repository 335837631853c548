package vocab

import (
	_ "embed"
	"fmt"
)

//go:embed builtin/vocabulary.yaml
var builtinVocabulary []byte

// Builtin returns the vocabulary bundled with sdcgen.
func Builtin() (*Vocabulary, error) {
	v, err := Parse(builtinVocabulary)
	if err != nil {
		return nil, fmt.Errorf("parse builtin vocabulary: %w", err)
	}
	v.Source = "builtin"
	return v, nil
}
