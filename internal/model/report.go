package model

import "time"

// VariabilityRecord is one anchor's row in a variability table
type VariabilityRecord struct {
	Anchor  string   `json:"anchor"`
	Count   int      `json:"count"`   // distinct domains observed
	Domains []string `json:"domains"` // sorted, deduplicated
}

// VariabilityTable is one ranked variability table, ready for export
type VariabilityTable struct {
	// Sheet is the sheet/file name, e.g. "Variabilidade_verbo_objeto".
	Sheet string `json:"sheet"`
	// Headers are the three column names in export order:
	// anchor, variability count, joined domain set.
	Headers [3]string `json:"headers"`
	Records []VariabilityRecord `json:"records"`
}

// Report is the complete result of analyzing one corpus file
type Report struct {
	Source       string           `json:"source"`
	Construction ConstructionType `json:"construction"`
	GeneratedAt  time.Time        `json:"generated_at"`

	// SentencesRead counts KWIC elements found in the input document.
	SentencesRead int `json:"sentences_read"`
	// Extracted counts sentences that yielded a construction.
	Extracted int `json:"extracted"`
	// Filtered counts constructions dropped by the light-verb filter.
	Filtered int `json:"filtered"`

	Rows   []Construction     `json:"rows"`
	Tables []VariabilityTable `json:"tables"`

	// Coverage is the percentage of retained rows whose primary domain
	// is not the unknown sentinel. Defined as 0 for an empty dataset.
	Coverage float64 `json:"coverage"`
}
