package corpus

import (
	"regexp"
	"strings"

	"github.com/varlex/varlex/internal/model"
)

// inlineTag matches slash-prefixed KWIC annotation tokens, e.g. "palavra/tag".
// Concordancers emit the tag mnemonics in either case.
var inlineTag = regexp.MustCompile(`/[a-zA-Z]+`)

// Normalize strips inline annotation tags from a raw KWIC string, keeping
// the untouched original for exemplar display
func Normalize(raw string) model.Utterance {
	trimmed := strings.TrimSpace(raw)
	return model.Utterance{
		Clean:    inlineTag.ReplaceAllString(trimmed, ""),
		Original: trimmed,
	}
}
