package tsnsim

import "testing"

func TestAggregateWCTT(t *testing.T) {
	results := newResults()
	results.WCTT["A"] = 10
	results.WCTT["B"] = 20
	results.WCTT["C"] = 30
	results.RedundancyOK["A"] = true
	results.RedundancyOK["B"] = false

	if err := AggregateWCTT(results); err != nil {
		t.Fatalf("AggregateWCTT: unexpected error: %v", err)
	}
	if got, want := results.Aggregates.WorstWCTT, 30.0; got != want {
		t.Errorf("WorstWCTT: got %g, want %g", got, want)
	}
	if got, want := results.Aggregates.AverageWCTT, 20.0; got != want {
		t.Errorf("AverageWCTT: got %g, want %g", got, want)
	}
	if got, want := results.Aggregates.RedundancySatisfactionRatio, 0.5; got != want {
		t.Errorf("RedundancySatisfactionRatio: got %g, want %g", got, want)
	}
}

func TestAggregateWCTTEmpty(t *testing.T) {
	results := newResults()
	if err := AggregateWCTT(results); err != nil {
		t.Fatalf("AggregateWCTT: unexpected error: %v", err)
	}
	if got, want := results.Aggregates.WorstWCTT, 0.0; got != want {
		t.Errorf("WorstWCTT on empty results: got %g, want %g", got, want)
	}
	if results.Aggregates.DeadlinesMissed {
		t.Error("DeadlinesMissed: got true, want false")
	}
}

func TestAggregateWCTTReportsDeadlinesMissed(t *testing.T) {
	results := newResults()
	results.WCTT["A"] = 10
	results.recordMiss(5, "A")

	if err := AggregateWCTT(results); err != nil {
		t.Fatalf("AggregateWCTT: unexpected error: %v", err)
	}
	if !results.Aggregates.DeadlinesMissed {
		t.Error("DeadlinesMissed: got false, want true")
	}
}
