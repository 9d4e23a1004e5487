package aggregate

import (
	"github.com/varlex/varlex/internal/classify"
	"github.com/varlex/varlex/internal/model"
)

// Coverage returns the percentage of rows whose primary domain is not the
// unknown sentinel. An empty dataset has coverage 0 rather than being a
// division error.
func Coverage(rows []model.Construction, domainOf func(model.Construction) string) float64 {
	total := len(rows)
	if total == 0 {
		return 0
	}

	unknown := 0
	for _, row := range rows {
		if domainOf(row) == classify.DomainUnknown {
			unknown++
		}
	}

	return 100 * float64(total-unknown) / float64(total)
}
