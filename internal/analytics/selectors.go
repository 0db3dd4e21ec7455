// internal/analytics/selectors.go
package analytics

import (
	"strings"

	"github.com/mwiater/bleuboard/internal/records"
)

// Tier is the display band a BLEU score falls into.
type Tier string

const (
	TierTop  Tier = "top"
	TierHigh Tier = "high"
	TierMid  Tier = "mid"
	TierLow  Tier = "low"
)

// ScoreTier classifies a score. Each band includes its lower bound.
func ScoreTier(score float64) Tier {
	switch {
	case score >= 8:
		return TierTop
	case score >= 6:
		return TierHigh
	case score >= 4:
		return TierMid
	default:
		return TierLow
	}
}

// SearchFilter keeps records whose language contains query, ignoring case.
// The query is used verbatim; an empty query keeps everything.
func SearchFilter(all []records.ModelRecord, query string) []records.ModelRecord {
	out := make([]records.ModelRecord, 0, len(all))
	needle := strings.ToLower(query)
	for _, r := range all {
		if strings.Contains(strings.ToLower(r.Language), needle) {
			out = append(out, r)
		}
	}
	return out
}
