package senses

import "context"

// Sense is one candidate sense of a word. Lexname is the fine-grained
// lexicographer-file tag (e.g. "noun.animal").
type Sense struct {
	Lexname string `json:"lexname"`
	POS     string `json:"pos,omitempty"`
}

// Resolver looks up the candidate senses of a word, ordered most frequent
// first. An empty slice and an error are both valid "no information"
// outcomes; callers treat them the same way.
type Resolver interface {
	Lookup(ctx context.Context, word, language string) ([]Sense, error)
}

// lexnames is the closed set of WordNet lexicographer-file tags. Used to
// validate output of resolvers that cannot be trusted to stay on
// vocabulary.
var lexnames = map[string]bool{
	"adj.all": true, "adj.pert": true, "adj.ppl": true, "adv.all": true,
	"noun.Tops": true, "noun.act": true, "noun.animal": true,
	"noun.artifact": true, "noun.attribute": true, "noun.body": true,
	"noun.cognition": true, "noun.communication": true, "noun.event": true,
	"noun.feeling": true, "noun.food": true, "noun.group": true,
	"noun.location": true, "noun.motive": true, "noun.object": true,
	"noun.person": true, "noun.phenomenon": true, "noun.plant": true,
	"noun.possession": true, "noun.process": true, "noun.quantity": true,
	"noun.relation": true, "noun.shape": true, "noun.state": true,
	"noun.substance": true, "noun.time": true,
	"verb.body": true, "verb.change": true, "verb.cognition": true,
	"verb.communication": true, "verb.competition": true,
	"verb.consumption": true, "verb.contact": true, "verb.creation": true,
	"verb.emotion": true, "verb.motion": true, "verb.perception": true,
	"verb.possession": true, "verb.social": true, "verb.stative": true,
	"verb.weather": true,
}

// IsLexname reports whether s is a known lexicographer-file tag
func IsLexname(s string) bool {
	return lexnames[s]
}
