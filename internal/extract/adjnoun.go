package extract

import (
	"strings"

	"github.com/varlex/varlex/internal/aggregate"
	"github.com/varlex/varlex/internal/model"
	"github.com/varlex/varlex/internal/parse"
)

// AdjNounStrategy extracts prenominal Adjective + Noun pairs with a
// two-tier policy. Tier 1 requires a dependency relation: an adjective
// headed by a noun that follows it. Tier 2 falls back to raw adjacency
// (an adjective immediately followed by a noun) because dependency parses
// sometimes fail to attach adjacent adjective-noun sequences.
type AdjNounStrategy struct{}

// NewAdjNounStrategy creates the Adjective+Noun strategy
func NewAdjNounStrategy() *AdjNounStrategy {
	return &AdjNounStrategy{}
}

// Name returns the construction type
func (s *AdjNounStrategy) Name() model.ConstructionType {
	return model.ConstructionAdjNoun
}

// Extract applies Tier 1 first and Tier 2 only when Tier 1 finds nothing
func (s *AdjNounStrategy) Extract(u model.Utterance, tokens []parse.Token) (model.Construction, bool) {
	// Tier 1: adjective headed by a noun that comes after it.
	for _, tok := range tokens {
		if !strings.EqualFold(tok.POS, "ADJ") {
			continue
		}
		head, ok := headOf(tokens, tok)
		if !ok || !strings.EqualFold(head.POS, "NOUN") {
			continue
		}
		if tok.Index < head.Index {
			return s.pair(u, tok, head), true
		}
	}

	// Tier 2: adjacent adjective-noun sequence regardless of dependencies.
	for i := 0; i+1 < len(tokens); i++ {
		if strings.EqualFold(tokens[i].POS, "ADJ") && strings.EqualFold(tokens[i+1].POS, "NOUN") {
			return s.pair(u, tokens[i], tokens[i+1]), true
		}
	}

	return model.Construction{}, false
}

func (s *AdjNounStrategy) pair(u model.Utterance, adj, noun parse.Token) model.Construction {
	adjLemma := strings.ToLower(adj.Lemma)
	nounLemma := strings.ToLower(noun.Lemma)
	return model.Construction{
		Clean:     u.Clean,
		Original:  u.Original,
		AdjLemma:  adjLemma,
		NounLemma: nounLemma,
		Pattern:   adjLemma + " " + nounLemma,
	}
}

// Slots returns the noun, the only slot that gets classified
func (s *AdjNounStrategy) Slots(row model.Construction) []string {
	return []string{row.NounLemma}
}

// Annotate attaches the noun domain as the primary assignment
func (s *AdjNounStrategy) Annotate(row *model.Construction, lookup Lookup) {
	noun := lookup(row.NounLemma)
	row.Domain = noun.Domain
	row.Subdomain = noun.Subdomain
}

// Filter keeps everything; there is no light-anchor set for this type
func (s *AdjNounStrategy) Filter(rows []model.Construction) ([]model.Construction, int) {
	return rows, 0
}

// Columns returns the constructions-table headers for Adjective+Noun
func (s *AdjNounStrategy) Columns() []string {
	return []string{
		"frase_limpa", "adjetivo", "nome", "frase_original",
		"dominio", "subdominio", "construcao",
	}
}

// Values returns the cell values matching Columns for one row
func (s *AdjNounStrategy) Values(row model.Construction) []string {
	return []string{
		row.Clean, row.AdjLemma, row.NounLemma, row.Original,
		row.Domain, row.Subdomain, row.Pattern,
	}
}

// Tables builds the single adjective variability table over noun domains
func (s *AdjNounStrategy) Tables(rows []model.Construction) []model.VariabilityTable {
	return []model.VariabilityTable{
		{
			Sheet:   "Variabilidade",
			Headers: [3]string{"adjetivo", "variabilidade_semântica", "dominios"},
			Records: aggregate.Variability(rows,
				func(r model.Construction) string { return r.AdjLemma },
				func(r model.Construction) string { return r.Domain }),
		},
	}
}
