package analytics

import "testing"

func TestParseChartType(t *testing.T) {
	for input, want := range map[string]ChartType{"": ChartBar, "BAR": ChartBar, " line ": ChartLine} {
		got, err := ParseChartType(input)
		if err != nil || got != want {
			t.Fatalf("%q: got %q err %v, want %q", input, got, err, want)
		}
	}
	if _, err := ParseChartType("pie"); err == nil {
		t.Fatal("expected error for pie")
	}
	if ChartBar.Toggle() != ChartLine || ChartLine.Toggle() != ChartBar {
		t.Fatal("Toggle should alternate bar and line")
	}
}

func TestViewStateApply(t *testing.T) {
	state := DefaultViewState()
	state.Filter = "V2"
	state.Query = "er"

	summary, matches := state.Apply(scenario())
	if len(summary.Ranked) != 1 || summary.Ranked[0].Language != "French" {
		t.Fatalf("expected only French ranked, got %v", languages(summary.Ranked))
	}
	if got := languages(matches); len(got) != 1 || got[0] != "German" {
		t.Fatalf("expected German search match, got %v", got)
	}
}
