package classify

// Coarse-domain sentinels. "desconhecido" means no sense was found at all;
// "outro" means a sense was found but its lexname is outside the curated
// mapping. Downstream tooling matches these labels verbatim.
const (
	DomainUnknown = "desconhecido"
	DomainOther   = "outro"
)

// domainMap is the fixed lexname → coarse-domain table. The labels form a
// closed vocabulary shared with downstream spreadsheets; do not rename.
var domainMap = map[string]string{
	"noun.person":        "pessoa",
	"noun.artifact":      "objeto",
	"noun.act":           "evento",
	"noun.event":         "evento",
	"noun.group":         "organização",
	"noun.location":      "lugar",
	"noun.communication": "comunicação",
	"noun.state":         "estado",
	"noun.cognition":     "conhecimento",
	"noun.quantity":      "quantidade",
	"noun.attribute":     "característica",
	"noun.time":          "tempo",
	"noun.animal":        "animal",
	"noun.body":          "corpo",
	"noun.food":          "comida",
	"noun.substance":     "matéria",
	"noun.object":        "objeto",
	"noun.feeling":       "emoção",
	"noun.phenomenon":    "fenómeno",
}

// MapLexname maps a fine-grained lexname to its coarse domain
func MapLexname(lexname string) string {
	if domain, ok := domainMap[lexname]; ok {
		return domain
	}
	return DomainOther
}

// Domains returns the closed coarse-domain vocabulary, excluding sentinels
func Domains() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range domainMap {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
