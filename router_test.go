package tsnsim

import (
	"errors"
	"testing"
)

func buildDiamondNetwork(t *testing.T) *Network {
	t.Helper()
	net := NewNetwork()
	Must0(net.AddDevice("ES1", EndSystemKind))
	Must0(net.AddDevice("SW1", SwitchKind))
	Must0(net.AddDevice("SW2", SwitchKind))
	Must0(net.AddDevice("ES2", EndSystemKind))
	Must0(net.AddLink("ES1", "SW1", 125))
	Must0(net.AddLink("ES1", "SW2", 125))
	Must0(net.AddLink("SW1", "ES2", 125))
	Must0(net.AddLink("SW2", "ES2", 125))
	return net
}

func TestRouterRouteDiamondFindsTwoDisjointPaths(t *testing.T) {
	net := buildDiamondNetwork(t)
	router := NewRouter(net, nil)

	s := &Stream{ID: "S", Src: "ES1", Dst: "ES2", RL: 2}
	if err := router.Route(s); err != nil {
		t.Fatalf("Route: unexpected error: %v", err)
	}
	if len(s.Routes) != 2 {
		t.Fatalf("Routes: got %d, want 2", len(s.Routes))
	}
	if s.RedundancyDeficient {
		t.Error("RedundancyDeficient: got true, want false")
	}

	seen := map[string]bool{}
	for _, route := range s.Routes {
		if len(route) != 3 {
			t.Fatalf("route length: got %d, want 3 (ES1, switch, ES2)", len(route))
		}
		mid := route[1]
		if seen[mid] {
			t.Fatalf("route through %s used more than once: not node-disjoint", mid)
		}
		seen[mid] = true
	}
}

func TestRouterRouteReturnsErrRedundancyDeficientWhenUnderSupplied(t *testing.T) {
	net := NewNetwork()
	Must0(net.AddDevice("ES1", EndSystemKind))
	Must0(net.AddDevice("ES2", EndSystemKind))
	Must0(net.AddLink("ES1", "ES2", 125))
	router := NewRouter(net, nil)

	s := &Stream{ID: "S", Src: "ES1", Dst: "ES2", RL: 2}
	err := router.Route(s)
	if !errors.Is(err, ErrRedundancyDeficient) {
		t.Fatalf("Route: got %v, want ErrRedundancyDeficient", err)
	}
	if len(s.Routes) != 1 {
		t.Fatalf("Routes: got %d, want 1 (partial)", len(s.Routes))
	}
	if !s.RedundancyDeficient {
		t.Error("RedundancyDeficient: got false, want true")
	}
}

func TestRouterRouteReturnsErrNoPathWhenDisconnected(t *testing.T) {
	net := NewNetwork()
	Must0(net.AddDevice("ES1", EndSystemKind))
	Must0(net.AddDevice("ES2", EndSystemKind))
	router := NewRouter(net, nil)

	s := &Stream{ID: "S", Src: "ES1", Dst: "ES2", RL: 1}
	if err := router.Route(s); !errors.Is(err, ErrNoPath) {
		t.Errorf("Route: got %v, want ErrNoPath", err)
	}
}

func TestRouterRouteRejectsSameSrcDst(t *testing.T) {
	net := NewNetwork()
	Must0(net.AddDevice("ES1", EndSystemKind))
	router := NewRouter(net, nil)

	s := &Stream{ID: "S", Src: "ES1", Dst: "ES1", RL: 1}
	if err := router.Route(s); !errors.Is(err, ErrInvalidStream) {
		t.Errorf("Route: got %v, want ErrInvalidStream", err)
	}
}

func TestRouterRoutePrefersCheaperPathFirst(t *testing.T) {
	net := NewNetwork()
	Must0(net.AddDevice("ES1", EndSystemKind))
	Must0(net.AddDevice("SWFAST", SwitchKind))
	Must0(net.AddDevice("SWSLOW", SwitchKind))
	Must0(net.AddDevice("ES2", EndSystemKind))
	Must0(net.AddLink("ES1", "SWFAST", 125))
	Must0(net.AddLink("SWFAST", "ES2", 125))
	Must0(net.AddLink("ES1", "SWSLOW", 1))
	Must0(net.AddLink("SWSLOW", "ES2", 1))

	router := NewRouter(net, nil)
	s := &Stream{ID: "S", Src: "ES1", Dst: "ES2", RL: 1}
	if err := router.Route(s); err != nil {
		t.Fatalf("Route: unexpected error: %v", err)
	}
	if got, want := s.Routes[0][1], "SWFAST"; got != want {
		t.Errorf("first route midpoint: got %q, want %q", got, want)
	}
}
