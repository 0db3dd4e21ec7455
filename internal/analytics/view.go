// internal/analytics/view.go
package analytics

import (
	"fmt"
	"strings"

	"github.com/mwiater/bleuboard/internal/records"
)

// ChartType selects how the ranked series is drawn.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// ParseChartType accepts "bar" (or "") and "line".
func ParseChartType(s string) (ChartType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ChartBar):
		return ChartBar, nil
	case string(ChartLine):
		return ChartLine, nil
	default:
		return "", fmt.Errorf("unknown chart type %q (expected bar or line)", s)
	}
}

// Toggle switches between bar and line.
func (c ChartType) Toggle() ChartType {
	if c == ChartLine {
		return ChartBar
	}
	return ChartLine
}

// ViewState is the dashboard selection owned by a single view.
type ViewState struct {
	Chart  ChartType
	Filter VersionFilter
	Query  string
}

// DefaultViewState shows every version as a bar chart with no search.
func DefaultViewState() ViewState {
	return ViewState{Chart: ChartBar, Filter: FilterAll}
}

// Apply runs the aggregation for the selected filter and the search query
// over the snapshot. The search result keeps snapshot order.
func (v ViewState) Apply(all []records.ModelRecord) (Summary, []records.ModelRecord) {
	return Aggregate(all, v.Filter), SearchFilter(all, v.Query)
}
