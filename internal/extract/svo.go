package extract

import (
	"strings"

	"github.com/varlex/varlex/internal/aggregate"
	"github.com/varlex/varlex/internal/model"
	"github.com/varlex/varlex/internal/parse"
)

// lightVerbs are semantically near-empty support verbs excluded from SVO
// variability analysis. Closed set; lemma comparison is case-insensitive.
var lightVerbs = map[string]bool{
	"ser":   true,
	"estar": true,
	"ter":   true,
	"haver": true,
	"fazer": true,
	"dar":   true,
	"ficar": true,
	"ir":    true,
	"vir":   true,
	"pôr":   true,
}

// SVOStrategy extracts Subject + Verb + Object constructions. The subject
// keeps its surface form while verb and object are lemmas: subjects are
// reported verbatim, predicate slots are normalized for grouping.
type SVOStrategy struct{}

// NewSVOStrategy creates the SVO strategy
func NewSVOStrategy() *SVOStrategy {
	return &SVOStrategy{}
}

// Name returns the construction type
func (s *SVOStrategy) Name() model.ConstructionType {
	return model.ConstructionSVO
}

// objectDeps are the dependency labels accepted as the object slot
var objectDeps = []string{"obj", "dobj", "obl", "attr"}

// Extract picks the root verb's lemma, the first nominal subject's surface
// form and the first object-like dependent's lemma. A sentence without a
// root verb, or with neither subject nor object, yields nothing.
func (s *SVOStrategy) Extract(u model.Utterance, tokens []parse.Token) (model.Construction, bool) {
	var verb, subject, object string

	for _, tok := range tokens {
		switch {
		case verb == "" && tok.IsRoot() && strings.EqualFold(tok.POS, "VERB"):
			verb = tok.Lemma
		case subject == "" && tok.HasDep("nsubj"):
			subject = tok.Text
		case object == "" && isObjectDep(tok):
			object = tok.Lemma
		}
	}

	if verb == "" || (subject == "" && object == "") {
		return model.Construction{}, false
	}

	return model.Construction{
		Clean:     u.Clean,
		Original:  u.Original,
		Subject:   subject,
		VerbLemma: verb,
		Object:    object,
		Pattern:   verb + " X",
	}, true
}

func isObjectDep(tok parse.Token) bool {
	for _, dep := range objectDeps {
		if tok.HasDep(dep) {
			return true
		}
	}
	return false
}

// Slots returns the object and subject, both of which get classified
func (s *SVOStrategy) Slots(row model.Construction) []string {
	return []string{row.Object, row.Subject}
}

// Annotate attaches the object domain as the primary assignment and the
// subject domain as the secondary one
func (s *SVOStrategy) Annotate(row *model.Construction, lookup Lookup) {
	obj := lookup(row.Object)
	row.Domain = obj.Domain
	row.Subdomain = obj.Subdomain

	subj := lookup(row.Subject)
	row.SubjectDomain = subj.Domain
	row.SubjectSubdomain = subj.Subdomain
}

// Filter drops rows anchored on a light verb. Runs before aggregation so
// filtered verbs contribute zero rows to the variability tables.
func (s *SVOStrategy) Filter(rows []model.Construction) ([]model.Construction, int) {
	kept := make([]model.Construction, 0, len(rows))
	for _, row := range rows {
		if lightVerbs[strings.ToLower(row.VerbLemma)] {
			continue
		}
		kept = append(kept, row)
	}
	return kept, len(rows) - len(kept)
}

// Columns returns the constructions-table headers for SVO
func (s *SVOStrategy) Columns() []string {
	return []string{
		"frase_limpa", "sujeito", "verbo", "objeto", "frase_original",
		"dominio", "subdominio", "dominio_sujeito", "subdominio_sujeito",
		"construcao",
	}
}

// Values returns the cell values matching Columns for one row
func (s *SVOStrategy) Values(row model.Construction) []string {
	return []string{
		row.Clean, row.Subject, row.VerbLemma, row.Object, row.Original,
		row.Domain, row.Subdomain, row.SubjectDomain, row.SubjectSubdomain,
		row.Pattern,
	}
}

// Tables builds the two independent verb variability tables: one over
// object domains, one over subject domains
func (s *SVOStrategy) Tables(rows []model.Construction) []model.VariabilityTable {
	anchor := func(r model.Construction) string { return r.VerbLemma }

	return []model.VariabilityTable{
		{
			Sheet:   "Variabilidade_verbo_objeto",
			Headers: [3]string{"verbo", "variabilidade_verbo_obj", "dominios_obj"},
			Records: aggregate.Variability(rows, anchor, func(r model.Construction) string { return r.Domain }),
		},
		{
			Sheet:   "Variabilidade_verbo_sujeito",
			Headers: [3]string{"verbo", "variabilidade_verbo_suj", "dominios_suj"},
			Records: aggregate.Variability(rows, anchor, func(r model.Construction) string { return r.SubjectDomain }),
		},
	}
}
