package main

//
// Seed scenarios, built directly from the worked examples used to
// validate this simulator's behavior during development.
//

import (
	"fmt"

	"github.com/tsnsim/tsnsim"
)

// scenario bundles a topology and stream set under a name, for the
// command line's -scenario flag.
type scenario struct {
	name  string
	build func() (*tsnsim.Network, []*tsnsim.Stream, error)
}

var scenarios = []scenario{
	{"two-device", buildTwoDeviceScenario},
	{"diamond", buildDiamondScenario},
	{"overloaded-link", buildOverloadedLinkScenario},
	{"priority-preemption", buildPriorityPreemptionScenario},
	{"hyperperiod-sanity", buildHyperperiodSanityScenario},
	{"redundancy-failure", buildRedundancyFailureScenario},
}

func lookupScenario(name string) (scenario, error) {
	for _, s := range scenarios {
		if s.name == name {
			return s, nil
		}
	}
	return scenario{}, fmt.Errorf("unknown scenario %q", name)
}

// buildTwoDeviceScenario is a single link with one stream: the
// baseline sanity check for serialization delay accounting.
func buildTwoDeviceScenario() (*tsnsim.Network, []*tsnsim.Stream, error) {
	net := tsnsim.NewNetwork()
	if err := net.AddDevice("ES1", tsnsim.EndSystemKind); err != nil {
		return nil, nil, err
	}
	if err := net.AddDevice("ES2", tsnsim.EndSystemKind); err != nil {
		return nil, nil, err
	}
	if err := net.AddLink("ES1", "ES2", 125); err != nil {
		return nil, nil, err
	}
	streams := []*tsnsim.Stream{
		{ID: "S", Src: "ES1", Dst: "ES2", Size: 125, Period: 1000, Deadline: 1000, RL: 1},
	}
	return net, streams, nil
}

// buildDiamondScenario gives a stream two node-disjoint paths through
// parallel switches.
func buildDiamondScenario() (*tsnsim.Network, []*tsnsim.Stream, error) {
	net := tsnsim.NewNetwork()
	for _, d := range []struct {
		name string
		kind tsnsim.DeviceKind
	}{
		{"ES1", tsnsim.EndSystemKind},
		{"SW1", tsnsim.SwitchKind},
		{"SW2", tsnsim.SwitchKind},
		{"ES2", tsnsim.EndSystemKind},
	} {
		if err := net.AddDevice(d.name, d.kind); err != nil {
			return nil, nil, err
		}
	}
	for _, l := range [][2]string{{"ES1", "SW1"}, {"ES1", "SW2"}, {"SW1", "ES2"}, {"SW2", "ES2"}} {
		if err := net.AddLink(l[0], l[1], 125); err != nil {
			return nil, nil, err
		}
	}
	streams := []*tsnsim.Stream{
		{ID: "S", Src: "ES1", Dst: "ES2", Size: 125, Period: 1000, Deadline: 1000, RL: 2},
	}
	return net, streams, nil
}

// buildOverloadedLinkScenario has a single slow hop that cannot meet
// the stream's deadline, to exercise miss detection and stop_on_miss.
func buildOverloadedLinkScenario() (*tsnsim.Network, []*tsnsim.Stream, error) {
	net := tsnsim.NewNetwork()
	if err := net.AddDevice("ES1", tsnsim.EndSystemKind); err != nil {
		return nil, nil, err
	}
	if err := net.AddDevice("SW", tsnsim.SwitchKind); err != nil {
		return nil, nil, err
	}
	if err := net.AddDevice("ES2", tsnsim.EndSystemKind); err != nil {
		return nil, nil, err
	}
	if err := net.AddLink("ES1", "SW", 10); err != nil {
		return nil, nil, err
	}
	if err := net.AddLink("SW", "ES2", 125); err != nil {
		return nil, nil, err
	}
	streams := []*tsnsim.Stream{
		{ID: "S", Src: "ES1", Dst: "ES2", Size: 1000, Period: 50, Deadline: 50, RL: 1},
	}
	return net, streams, nil
}

// buildPriorityPreemptionScenario has two same-release streams sharing
// one link, distinguished only by priority.
func buildPriorityPreemptionScenario() (*tsnsim.Network, []*tsnsim.Stream, error) {
	net := tsnsim.NewNetwork()
	if err := net.AddDevice("ES1", tsnsim.EndSystemKind); err != nil {
		return nil, nil, err
	}
	if err := net.AddDevice("ES2", tsnsim.EndSystemKind); err != nil {
		return nil, nil, err
	}
	if err := net.AddLink("ES1", "ES2", 64); err != nil {
		return nil, nil, err
	}
	streams := []*tsnsim.Stream{
		{ID: "S_hi", Src: "ES1", Dst: "ES2", Size: 64, Period: 1000, Deadline: 1000, RL: 1, Priority: 8},
		{ID: "S_lo", Src: "ES1", Dst: "ES2", Size: 64, Period: 1000, Deadline: 1000, RL: 1, Priority: 1},
	}
	return net, streams, nil
}

// buildHyperperiodSanityScenario checks hyperperiod and release-time
// computation against two streams with coprime-ish periods.
func buildHyperperiodSanityScenario() (*tsnsim.Network, []*tsnsim.Stream, error) {
	net := tsnsim.NewNetwork()
	if err := net.AddDevice("ES1", tsnsim.EndSystemKind); err != nil {
		return nil, nil, err
	}
	if err := net.AddDevice("ES2", tsnsim.EndSystemKind); err != nil {
		return nil, nil, err
	}
	if err := net.AddLink("ES1", "ES2", 125); err != nil {
		return nil, nil, err
	}
	streams := []*tsnsim.Stream{
		{ID: "S1", Src: "ES1", Dst: "ES2", Size: 125, Period: 10, Deadline: 10, RL: 1},
		{ID: "S2", Src: "ES1", Dst: "ES2", Size: 125, Period: 15, Deadline: 15, RL: 1},
	}
	return net, streams, nil
}

// buildRedundancyFailureScenario offers three paths that all cross the
// HUB switch and its HUB->ES2 link. The router can therefore choose
// only one node-disjoint route, and the rl=2 stream fails its
// redundancy check.
func buildRedundancyFailureScenario() (*tsnsim.Network, []*tsnsim.Stream, error) {
	net := tsnsim.NewNetwork()
	for _, d := range []struct {
		name string
		kind tsnsim.DeviceKind
	}{
		{"ES1", tsnsim.EndSystemKind},
		{"SWA", tsnsim.SwitchKind},
		{"SWB", tsnsim.SwitchKind},
		{"SWC", tsnsim.SwitchKind},
		{"HUB", tsnsim.SwitchKind},
		{"ES2", tsnsim.EndSystemKind},
	} {
		if err := net.AddDevice(d.name, d.kind); err != nil {
			return nil, nil, err
		}
	}
	for _, l := range [][2]string{
		{"ES1", "SWA"}, {"ES1", "SWB"}, {"ES1", "SWC"},
		{"SWA", "HUB"}, {"SWB", "HUB"}, {"SWC", "HUB"},
		{"HUB", "ES2"},
	} {
		if err := net.AddLink(l[0], l[1], 125); err != nil {
			return nil, nil, err
		}
	}
	streams := []*tsnsim.Stream{
		{ID: "S", Src: "ES1", Dst: "ES2", Size: 125, Period: 1000, Deadline: 1000, RL: 2},
	}
	return net, streams, nil
}
