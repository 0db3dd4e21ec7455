// internal/analytics/aggregate.go
// Package analytics derives dashboard statistics and chart series from a
// snapshot of model records. Every function is pure: inputs are never
// mutated and empty inputs produce zero values rather than errors.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mwiater/bleuboard/internal/records"
)

// VersionFilter selects which records feed the ranked series.
type VersionFilter string

// FilterAll keeps every record.
const FilterAll VersionFilter = "all"

// FilterFor returns the filter that keeps only version v.
func FilterFor(v records.Version) VersionFilter { return VersionFilter(v) }

// ParseVersionFilter accepts "all" (or "") and any known version tag.
func ParseVersionFilter(s string) (VersionFilter, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, string(FilterAll)) {
		return FilterAll, nil
	}
	v, err := records.ParseVersion(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid version filter: %w", err)
	}
	return FilterFor(v), nil
}

// Matches reports whether r passes the filter.
func (f VersionFilter) Matches(r records.ModelRecord) bool {
	return f == FilterAll || f == "" || records.Version(f) == r.ModelVersion
}

// Next cycles all -> V1 -> V2 -> ... -> all.
func (f VersionFilter) Next() VersionFilter {
	order := []VersionFilter{FilterAll}
	for _, v := range records.Versions() {
		order = append(order, FilterFor(v))
	}
	for i, candidate := range order {
		if candidate == f {
			return order[(i+1)%len(order)]
		}
	}
	return FilterAll
}

// Label returns a human readable name for the filter.
func (f VersionFilter) Label() string {
	if f == FilterAll || f == "" {
		return "All Versions"
	}
	return string(f)
}

// SeriesPoint is one bar (or line point) of the ranked chart.
type SeriesPoint struct {
	Label   string          `json:"label"`
	Value   float64         `json:"value"`
	Version records.Version `json:"version"`
}

// VersionStat is one entry of the version comparison chart.
type VersionStat struct {
	Label   records.Version `json:"label"`
	Average float64         `json:"average"`
	Count   int             `json:"count"`
}

// DistributionSlice is one entry of the version distribution chart.
type DistributionSlice struct {
	Label records.Version `json:"label"`
	Value int             `json:"value"`
}

// VersionShare is the share of the whole collection trained with one version.
type VersionShare struct {
	Version records.Version `json:"version"`
	Percent float64         `json:"percent"`
}

// Summary holds everything the dashboard renders for one snapshot.
type Summary struct {
	Filter             VersionFilter         `json:"filter"`
	Total              int                   `json:"total"`
	Filtered           []records.ModelRecord `json:"-"`
	Ranked             []records.ModelRecord `json:"-"`
	OverallAverage     float64               `json:"overallAverage"`
	VersionAverages    []VersionStat         `json:"versionAverages"`
	VersionShares      []VersionShare        `json:"versionShares"`
	ImprovementPercent float64               `json:"improvementPercent"`
	Improved           bool                  `json:"improved"`
	TopPerformer       *records.ModelRecord  `json:"topPerformer"`
	BarSeries          []SeriesPoint         `json:"barSeries"`
	VersionComparison  []VersionStat         `json:"versionComparison"`
	Distribution       []DistributionSlice   `json:"distribution"`
}

// AverageFor returns the average score of version v in the summary.
func (s Summary) AverageFor(v records.Version) float64 {
	for _, stat := range s.VersionAverages {
		if stat.Label == v {
			return stat.Average
		}
	}
	return 0
}

// CountFor returns the number of records trained with version v.
func (s Summary) CountFor(v records.Version) int {
	for _, stat := range s.VersionAverages {
		if stat.Label == v {
			return stat.Count
		}
	}
	return 0
}

// PercentFor returns the share of the collection trained with version v.
func (s Summary) PercentFor(v records.Version) float64 {
	for _, share := range s.VersionShares {
		if share.Version == v {
			return share.Percent
		}
	}
	return 0
}

// ImprovementBarWidth is the improvement magnitude clamped to [0, 100].
func (s Summary) ImprovementBarWidth() float64 {
	return math.Min(math.Abs(s.ImprovementPercent), 100)
}

// Aggregate computes the dashboard summary for a record snapshot.
// Version statistics, improvement and the top performer always cover the
// whole collection; only Filtered, Ranked and BarSeries honour filter.
func Aggregate(all []records.ModelRecord, filter VersionFilter) Summary {
	if filter == "" {
		filter = FilterAll
	}
	filtered := Filter(all, filter)
	ranked := Rank(filtered)
	sets := Partition(all)

	summary := Summary{
		Filter:         filter,
		Total:          len(all),
		Filtered:       filtered,
		Ranked:         ranked,
		OverallAverage: Average(all),
		BarSeries:      BarSeries(ranked),
	}

	for _, v := range records.Versions() {
		stat := VersionStat{Label: v, Average: Average(sets[v]), Count: len(sets[v])}
		summary.VersionAverages = append(summary.VersionAverages, stat)
		summary.VersionComparison = append(summary.VersionComparison, stat)
		summary.Distribution = append(summary.Distribution, DistributionSlice{Label: v, Value: len(sets[v])})
		summary.VersionShares = append(summary.VersionShares, VersionShare{Version: v, Percent: VersionPercentage(all, v)})
	}

	v1Avg := summary.AverageFor(records.V1)
	v2Avg := summary.AverageFor(records.V2)
	summary.ImprovementPercent = ImprovementPercent(v1Avg, v2Avg)
	summary.Improved = v2Avg > v1Avg

	if top, ok := TopPerformer(all); ok {
		summary.TopPerformer = &top
	}
	return summary
}

// Filter returns the records that pass filter, preserving order.
func Filter(all []records.ModelRecord, filter VersionFilter) []records.ModelRecord {
	out := make([]records.ModelRecord, 0, len(all))
	for _, r := range all {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Rank returns a copy sorted by BLEU score descending; ties keep input order.
func Rank(in []records.ModelRecord) []records.ModelRecord {
	out := make([]records.ModelRecord, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BleuScore > out[j].BleuScore
	})
	return out
}

// Partition groups the records by model version.
func Partition(all []records.ModelRecord) map[records.Version][]records.ModelRecord {
	sets := make(map[records.Version][]records.ModelRecord, len(records.Versions()))
	for _, r := range all {
		sets[r.ModelVersion] = append(sets[r.ModelVersion], r)
	}
	return sets
}

// Average is the mean BLEU score of set, or 0 for an empty set.
func Average(set []records.ModelRecord) float64 {
	if len(set) == 0 {
		return 0
	}
	var sum float64
	for _, r := range set {
		sum += r.BleuScore
	}
	return sum / float64(len(set))
}

// ImprovementPercent is the relative change from the baseline to the
// candidate average, or 0 when either average is zero.
func ImprovementPercent(baseline, candidate float64) float64 {
	if baseline == 0 || candidate == 0 {
		return 0
	}
	return (candidate - baseline) / baseline * 100
}

// VersionPercentage is the share of all trained with version v, or 0 when all is empty.
func VersionPercentage(all []records.ModelRecord, v records.Version) float64 {
	if len(all) == 0 {
		return 0
	}
	count := 0
	for _, r := range all {
		if r.ModelVersion == v {
			count++
		}
	}
	return float64(count) / float64(len(all)) * 100
}

// TopPerformer returns the highest scoring record; the earliest wins ties.
func TopPerformer(all []records.ModelRecord) (records.ModelRecord, bool) {
	if len(all) == 0 {
		return records.ModelRecord{}, false
	}
	return Rank(all)[0], true
}

// BarSeries maps ranked records to chart points.
func BarSeries(ranked []records.ModelRecord) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(ranked))
	for _, r := range ranked {
		points = append(points, SeriesPoint{Label: r.Language, Value: r.BleuScore, Version: r.ModelVersion})
	}
	return points
}
