package tsnsim

import (
	"context"
	"testing"
)

func TestOrchestratorRunTwoDeviceScenario(t *testing.T) {
	net := NewNetwork()
	Must0(net.AddDevice("ES1", EndSystemKind))
	Must0(net.AddDevice("ES2", EndSystemKind))
	Must0(net.AddLink("ES1", "ES2", 125))

	streams := []*Stream{{ID: "S", Src: "ES1", Dst: "ES2", Size: 125, Period: 1000, Deadline: 1000, RL: 1}}

	orchestrator := NewOrchestrator(nil)
	results, err := orchestrator.Run(context.Background(), net, streams, Config{})
	if err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}

	if got, want := results.WCTT["S"], 1.0; got != want {
		t.Errorf("WCTT: got %g, want %g", got, want)
	}
	if got, want := results.Aggregates.WorstWCTT, 1.0; got != want {
		t.Errorf("Aggregates.WorstWCTT: got %g, want %g", got, want)
	}
	if !results.RedundancyOK["S"] {
		t.Error("RedundancyOK: got false, want true for rl=1")
	}
}

func TestOrchestratorRunSurvivesRedundancyDeficiency(t *testing.T) {
	net := NewNetwork()
	Must0(net.AddDevice("ES1", EndSystemKind))
	Must0(net.AddDevice("ES2", EndSystemKind))
	Must0(net.AddLink("ES1", "ES2", 125))

	streams := []*Stream{{ID: "S", Src: "ES1", Dst: "ES2", Size: 125, Period: 1000, Deadline: 1000, RL: 2}}

	orchestrator := NewOrchestrator(nil)
	results, err := orchestrator.Run(context.Background(), net, streams, Config{})
	if err != nil {
		t.Fatalf("Run: unexpected error: %v (deficiency should not abort the run)", err)
	}
	if results.RedundancyOK["S"] {
		t.Error("RedundancyOK: got true, want false (only one route could be found)")
	}
}

func TestOrchestratorRunRejectsInvalidStream(t *testing.T) {
	net := NewNetwork()
	Must0(net.AddDevice("ES1", EndSystemKind))

	streams := []*Stream{{ID: "S", Src: "ES1", Dst: "ES1", Size: 1, Period: 10, Deadline: 10, RL: 1}}

	orchestrator := NewOrchestrator(nil)
	if _, err := orchestrator.Run(context.Background(), net, streams, Config{}); err == nil {
		t.Error("Run: got nil error, want validation failure for src==dst")
	}
}
