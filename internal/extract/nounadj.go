package extract

import (
	"strings"

	"github.com/varlex/varlex/internal/aggregate"
	"github.com/varlex/varlex/internal/model"
	"github.com/varlex/varlex/internal/parse"
)

// NounAdjStrategy extracts Noun + Adjective pairs: the first adjective
// whose syntactic head is a noun, paired with that head. One pair per
// sentence; exhaustive extraction is deliberately not attempted.
type NounAdjStrategy struct{}

// NewNounAdjStrategy creates the Noun+Adjective strategy
func NewNounAdjStrategy() *NounAdjStrategy {
	return &NounAdjStrategy{}
}

// Name returns the construction type
func (s *NounAdjStrategy) Name() model.ConstructionType {
	return model.ConstructionNounAdj
}

// Extract returns the first adjective-with-noun-head pair, lemmas
// lowercased for grouping
func (s *NounAdjStrategy) Extract(u model.Utterance, tokens []parse.Token) (model.Construction, bool) {
	for _, tok := range tokens {
		if !strings.EqualFold(tok.POS, "ADJ") {
			continue
		}
		head, ok := headOf(tokens, tok)
		if !ok || !strings.EqualFold(head.POS, "NOUN") {
			continue
		}
		return model.Construction{
			Clean:     u.Clean,
			Original:  u.Original,
			NounLemma: strings.ToLower(head.Lemma),
			AdjLemma:  strings.ToLower(tok.Lemma),
			Pattern:   strings.ToLower(head.Lemma) + " + " + strings.ToLower(tok.Lemma),
		}, true
	}
	return model.Construction{}, false
}

// headOf resolves a token's syntactic head within the same sentence. A
// token that is its own head (the root) has no distinct head.
func headOf(tokens []parse.Token, tok parse.Token) (parse.Token, bool) {
	if tok.Head < 0 || tok.Head >= len(tokens) || tok.Head == tok.Index {
		return parse.Token{}, false
	}
	return tokens[tok.Head], true
}

// Slots returns the noun and the adjective, both of which get classified
func (s *NounAdjStrategy) Slots(row model.Construction) []string {
	return []string{row.NounLemma, row.AdjLemma}
}

// Annotate attaches the noun domain as the primary assignment and the
// adjective domain as the secondary one
func (s *NounAdjStrategy) Annotate(row *model.Construction, lookup Lookup) {
	noun := lookup(row.NounLemma)
	row.Domain = noun.Domain
	row.Subdomain = noun.Subdomain

	adj := lookup(row.AdjLemma)
	row.AdjDomain = adj.Domain
	row.AdjSubdomain = adj.Subdomain
}

// Filter keeps everything; there is no light-anchor set for this type
func (s *NounAdjStrategy) Filter(rows []model.Construction) ([]model.Construction, int) {
	return rows, 0
}

// Columns returns the constructions-table headers for Noun+Adjective
func (s *NounAdjStrategy) Columns() []string {
	return []string{
		"frase_limpa", "nome", "adjetivo", "frase_original",
		"dominio", "subdominio", "dominio_adjetivo", "subdominio_adjetivo",
		"construcao",
	}
}

// Values returns the cell values matching Columns for one row
func (s *NounAdjStrategy) Values(row model.Construction) []string {
	return []string{
		row.Clean, row.NounLemma, row.AdjLemma, row.Original,
		row.Domain, row.Subdomain, row.AdjDomain, row.AdjSubdomain,
		row.Pattern,
	}
}

// Tables builds both directions: noun variability over adjective domains
// and adjective variability over noun domains. The domain is always
// computed on the other member of the pair.
func (s *NounAdjStrategy) Tables(rows []model.Construction) []model.VariabilityTable {
	return []model.VariabilityTable{
		{
			Sheet:   "Variabilidade_nome",
			Headers: [3]string{"nome", "variabilidade_nome", "dominios"},
			Records: aggregate.Variability(rows,
				func(r model.Construction) string { return r.NounLemma },
				func(r model.Construction) string { return r.AdjDomain }),
		},
		{
			Sheet:   "Variabilidade_adjetivo",
			Headers: [3]string{"adjetivo", "variabilidade_adjetivo", "dominios"},
			Records: aggregate.Variability(rows,
				func(r model.Construction) string { return r.AdjLemma },
				func(r model.Construction) string { return r.Domain }),
		},
	}
}
