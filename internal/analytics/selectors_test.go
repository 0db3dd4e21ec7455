package analytics

import (
	"testing"

	"github.com/mwiater/bleuboard/internal/records"
)

func TestScoreTierBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Tier
	}{
		{10, TierTop},
		{8, TierTop},
		{7.999, TierHigh},
		{6, TierHigh},
		{5.999, TierMid},
		{4, TierMid},
		{3.999, TierLow},
		{0, TierLow},
		{-1, TierLow},
	}
	for _, tc := range cases {
		if got := ScoreTier(tc.score); got != tc.want {
			t.Fatalf("ScoreTier(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestSearchFilterEmptyQueryKeepsOrder(t *testing.T) {
	all := scenario()
	got := SearchFilter(all, "")
	if len(got) != len(all) {
		t.Fatalf("expected %d records, got %d", len(all), len(got))
	}
	for i := range all {
		if got[i].ID != all[i].ID {
			t.Fatalf("order changed: %v", languages(got))
		}
	}
}

func TestSearchFilterCaseInsensitive(t *testing.T) {
	got := SearchFilter(scenario(), "ENGLISH")
	if len(got) != 1 || got[0].Language != "English" {
		t.Fatalf("expected English match, got %v", languages(got))
	}
	got = SearchFilter(scenario(), "en")
	if len(got) != 2 || got[0].Language != "English" || got[1].Language != "French" {
		t.Fatalf("expected English and French, got %v", languages(got))
	}
}

func TestSearchFilterWhitespaceIsLiteral(t *testing.T) {
	all := []records.ModelRecord{
		rec("1", "English", records.V1, 1),
		rec("2", "Brazilian Portuguese", records.V2, 2),
	}
	got := SearchFilter(all, " ")
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected only the spaced name, got %v", languages(got))
	}
	if got := SearchFilter(all, "  "); len(got) != 0 {
		t.Fatalf("expected no match for double space, got %v", languages(got))
	}
}
