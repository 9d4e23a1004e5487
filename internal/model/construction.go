package model

import "fmt"

// ConstructionType selects which syntactic pattern a run extracts
type ConstructionType string

const (
	ConstructionSVO     ConstructionType = "svo"    // Subject + Verb + Object
	ConstructionNounAdj ConstructionType = "n_adj"  // Noun + Adjective
	ConstructionAdjNoun ConstructionType = "adj_n"  // Adjective + Noun
)

// ParseConstructionType validates a construction type string
func ParseConstructionType(s string) (ConstructionType, error) {
	switch ConstructionType(s) {
	case ConstructionSVO, ConstructionNounAdj, ConstructionAdjNoun:
		return ConstructionType(s), nil
	default:
		return "", fmt.Errorf("unknown construction type: %q (supported: svo, n_adj, adj_n)", s)
	}
}

// Utterance pairs a cleaned KWIC sentence with its original annotated form
type Utterance struct {
	Clean    string `json:"frase_limpa"`
	Original string `json:"frase_original"`
}

// Construction is one extracted-and-annotated pattern instance.
// Which fields are populated depends on the construction type; the domain
// fields are attached after extraction and never change the extracted shape.
// JSON tags carry the column names used by the exported tables.
type Construction struct {
	Clean    string `json:"frase_limpa"`
	Original string `json:"frase_original"`

	// SVO fields. Subject keeps its surface form, verb and object are lemmas.
	Subject   string `json:"sujeito,omitempty"`
	VerbLemma string `json:"verbo,omitempty"`
	Object    string `json:"objeto,omitempty"`

	// Noun+Adjective / Adjective+Noun fields (lemmas, lowercased).
	NounLemma string `json:"nome,omitempty"`
	AdjLemma  string `json:"adjetivo,omitempty"`

	// Primary domain assignment: object for SVO, noun for the two
	// adjective constructions.
	Domain    string `json:"dominio"`
	Subdomain string `json:"subdominio"`

	// Secondary assignments (SVO subject / n_adj adjective).
	SubjectDomain    string `json:"dominio_sujeito,omitempty"`
	SubjectSubdomain string `json:"subdominio_sujeito,omitempty"`
	AdjDomain        string `json:"dominio_adjetivo,omitempty"`
	AdjSubdomain     string `json:"subdominio_adjetivo,omitempty"`

	// Pattern is the human-readable construction label, e.g. "comer X".
	Pattern string `json:"construcao"`
}
