package aggregate

import (
	"sort"

	"github.com/varlex/varlex/internal/model"
)

// Variability groups rows by anchor and counts the distinct domains each
// anchor co-occurs with. Groups are ordered alphabetically by anchor, then
// stably sorted by count descending, so output is reproducible across
// runs. Pure function of its input.
func Variability(rows []model.Construction, anchorOf, domainOf func(model.Construction) string) []model.VariabilityRecord {
	grouped := make(map[string]map[string]bool)
	for _, row := range rows {
		anchor := anchorOf(row)
		if anchor == "" {
			continue
		}
		if grouped[anchor] == nil {
			grouped[anchor] = make(map[string]bool)
		}
		grouped[anchor][domainOf(row)] = true
	}

	records := make([]model.VariabilityRecord, 0, len(grouped))
	for anchor, domains := range grouped {
		set := make([]string, 0, len(domains))
		for d := range domains {
			set = append(set, d)
		}
		sort.Strings(set)
		records = append(records, model.VariabilityRecord{
			Anchor:  anchor,
			Count:   len(set),
			Domains: set,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Anchor < records[j].Anchor
	})
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Count > records[j].Count
	})

	return records
}
