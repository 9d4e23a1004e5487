package parse

import (
	"context"
	"strings"
)

// Token is one parsed token of a sentence, as produced by the dependency
// parser. Head is an index into the same token slice; the root token points
// at itself.
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	// POS is the coarse part-of-speech tag (UPOS: "NOUN", "VERB", "ADJ", ...).
	POS string `json:"pos"`
	// Dep is the dependency relation to the head ("ROOT", "nsubj", "obj", ...).
	Dep   string `json:"dep"`
	Head  int    `json:"head"`
	Index int    `json:"i"`
}

// IsRoot reports whether the token is the sentence root
func (t Token) IsRoot() bool {
	return strings.EqualFold(t.Dep, "root")
}

// HasDep reports whether the token's dependency label matches, ignoring case
func (t Token) HasDep(label string) bool {
	return strings.EqualFold(t.Dep, label)
}

// Parser turns a sentence into its annotated token sequence.
// Parsing is a pure function of the sentence: results must not depend on
// call order or batching.
type Parser interface {
	Parse(ctx context.Context, sentence string) ([]Token, error)
}
