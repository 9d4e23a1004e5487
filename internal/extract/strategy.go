package extract

import (
	"fmt"

	"github.com/varlex/varlex/internal/classify"
	"github.com/varlex/varlex/internal/model"
	"github.com/varlex/varlex/internal/parse"
)

// Lookup returns the domain assignment for a word. Words without sense
// information (including the empty string) map to the unknown sentinel.
type Lookup func(word string) classify.Assignment

// Strategy implements one construction type end to end: pattern extraction,
// slot selection for classification, the filter policy and the variability
// table layout. The strategy is resolved once per run; no stage re-checks
// the construction type.
type Strategy interface {
	// Name returns the construction type this strategy implements.
	Name() model.ConstructionType

	// Extract scans one annotated token sequence and returns at most one
	// construction. ok is false when the sentence has no match, which is a
	// normal outcome and drops the sentence silently.
	Extract(u model.Utterance, tokens []parse.Token) (row model.Construction, ok bool)

	// Slots returns the lexical items of the row that require domain
	// classification.
	Slots(row model.Construction) []string

	// Annotate attaches domain assignments to the row. It never mutates
	// the extracted fields.
	Annotate(row *model.Construction, lookup Lookup)

	// Filter drops semantically light anchors before aggregation. Most
	// strategies keep everything.
	Filter(rows []model.Construction) (kept []model.Construction, dropped int)

	// Tables builds the ranked variability tables for the dataset.
	Tables(rows []model.Construction) []model.VariabilityTable

	// Columns returns the export column headers for the constructions
	// table, and Values the matching cell values for one row.
	Columns() []string
	Values(row model.Construction) []string
}

// ForType returns the strategy implementing the given construction type
func ForType(t model.ConstructionType) (Strategy, error) {
	switch t {
	case model.ConstructionSVO:
		return NewSVOStrategy(), nil
	case model.ConstructionNounAdj:
		return NewNounAdjStrategy(), nil
	case model.ConstructionAdjNoun:
		return NewAdjNounStrategy(), nil
	default:
		return nil, fmt.Errorf("no strategy for construction type %q", t)
	}
}
