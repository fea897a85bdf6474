package tsnsim

//
// Network topology construction
//

import (
	"fmt"
)

// Network is the directed, multigraph-free graph of [Device]s and
// [Link]s a simulation runs over. The zero value is invalid; use
// [NewNetwork] to construct.
//
// Network owns its devices; AddDevice and AddLink validate as they go,
// so a [Network] that was built successfully is, by construction,
// always internally consistent (no dangling link endpoints, no
// duplicate names, no non-positive speeds).
type Network struct {
	// devices indexes devices by name.
	devices map[string]*Device

	// links indexes links by "src->dst".
	links map[string]Link

	// adjacency maps a device name to the ordered links leaving it.
	adjacency map[string][]Link

	// order preserves device insertion order, for deterministic
	// iteration (e.g. topology cost, tie-breaks by name only kick in
	// on equal weights).
	order []string
}

// NewNetwork creates an empty [Network].
func NewNetwork() *Network {
	return &Network{
		devices:   map[string]*Device{},
		links:     map[string]Link{},
		adjacency: map[string][]Link{},
		order:     nil,
	}
}

// AddDevice adds a device with the given name and kind. Returns
// [ErrInvalidTopology] wrapped with the device's name if the name is
// already in use.
func (n *Network) AddDevice(name string, kind DeviceKind) error {
	if _, ok := n.devices[name]; ok {
		return fmt.Errorf("%w: duplicate device %q", ErrInvalidTopology, name)
	}
	n.devices[name] = newDevice(name, kind)
	n.order = append(n.order, name)
	return nil
}

// AddLink adds a directed link from src to dst with the given speed.
// Returns [ErrInvalidTopology] wrapped with the offending entity if
// src or dst is unknown, speed is non-positive, or the ordered pair
// already has a link.
func (n *Network) AddLink(src, dst string, speed float64) error {
	if _, ok := n.devices[src]; !ok {
		return fmt.Errorf("%w: unknown link source %q", ErrInvalidTopology, src)
	}
	if _, ok := n.devices[dst]; !ok {
		return fmt.Errorf("%w: unknown link destination %q", ErrInvalidTopology, dst)
	}
	if speed <= 0 {
		return fmt.Errorf("%w: non-positive speed for link %s->%s", ErrInvalidTopology, src, dst)
	}
	link := Link{Src: src, Dst: dst, Speed: speed}
	if _, ok := n.links[link.key()]; ok {
		return fmt.Errorf("%w: duplicate link %s->%s", ErrInvalidTopology, src, dst)
	}
	n.links[link.key()] = link
	n.adjacency[src] = append(n.adjacency[src], link)
	return nil
}

// Device returns the device with the given name, or nil if not found.
func (n *Network) Device(name string) *Device {
	return n.devices[name]
}

// HasDevice reports whether a device with the given name exists.
func (n *Network) HasDevice(name string) bool {
	_, ok := n.devices[name]
	return ok
}

// Devices returns all devices in insertion order.
func (n *Network) Devices() []*Device {
	out := make([]*Device, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.devices[name])
	}
	return out
}

// Link looks up the link between src and dst, if any.
func (n *Network) Link(src, dst string) (Link, bool) {
	l, ok := n.links[Link{Src: src, Dst: dst}.key()]
	return l, ok
}

// Neighbors returns the ordered links leaving the named device.
func (n *Network) Neighbors(name string) []Link {
	return n.adjacency[name]
}

// Degree returns the number of distinct devices the named device is
// connected to, counting both outgoing and incoming links once each
// per neighbor (undirected degree, as used by the topology cost
// table).
func (n *Network) Degree(name string) int {
	seen := map[string]bool{}
	for _, l := range n.adjacency[name] {
		seen[l.Dst] = true
	}
	for _, other := range n.order {
		for _, l := range n.adjacency[other] {
			if l.Dst == name {
				seen[other] = true
			}
		}
	}
	return len(seen)
}

// ValidateStream checks that a stream's Src and Dst are known
// EndSystems and that Src != Dst. Returns [ErrInvalidTopology] wrapped
// with the stream's ID if an endpoint is not a known EndSystem, and
// [ErrInvalidStream] wrapped with the stream's ID on any other failure.
func (n *Network) ValidateStream(s *Stream) error {
	if s.Period <= 0 || s.Size <= 0 || s.Deadline <= 0 {
		return fmt.Errorf("%w: stream %s has non-positive period/size/deadline", ErrInvalidStream, s.ID)
	}
	if s.RL <= 0 {
		return fmt.Errorf("%w: stream %s has non-positive redundancy level", ErrInvalidStream, s.ID)
	}
	if s.Src == s.Dst {
		return fmt.Errorf("%w: stream %s has src == dst", ErrInvalidStream, s.ID)
	}
	src, ok := n.devices[s.Src]
	if !ok || src.Kind != EndSystemKind {
		return fmt.Errorf("%w: stream %s source %q is not a known EndSystem", ErrInvalidTopology, s.ID, s.Src)
	}
	dst, ok := n.devices[s.Dst]
	if !ok || dst.Kind != EndSystemKind {
		return fmt.Errorf("%w: stream %s destination %q is not a known EndSystem", ErrInvalidTopology, s.ID, s.Dst)
	}
	return nil
}
