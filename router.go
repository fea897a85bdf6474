package tsnsim

//
// Stream routing
//
// Router computes up to rl node-disjoint paths per stream using a
// Menger-style max-flow on a node-split graph: every intermediate
// device is split into an "in" and an "out" half joined by a
// capacity-1 edge, so no intermediate device can appear on more than
// one of the chosen paths. The stream's source and destination are
// left unsplit, since by definition every chosen path shares them.
// Each network link becomes a capacity-1, cost-(1/speed) edge between
// the appropriate halves, so paths are link-disjoint as well.
//
// Paths are found by repeated shortest-augmenting-path search (a
// min-cost flow of value up to rl) over the residual graph, which is
// exactly Menger's theorem applied with path cost as the tie-break.
//

import (
	"fmt"
	"sort"
)

// Router computes routes for streams over a [Network].
type Router struct {
	net    *Network
	logger Logger
}

// NewRouter creates a [Router] bound to net.
func NewRouter(net *Network, logger Logger) *Router {
	return &Router{net: net, logger: logger}
}

// routeEdge is one directed edge of the node-split residual graph.
type routeEdge struct {
	to   string
	cap  int
	cost float64
	rev  int // index, in graph[to], of the reverse edge

	// deviceTo is the device this edge arrives at, for path
	// reconstruction; empty for the internal in->out split edge,
	// which does not introduce a new device into the path.
	deviceTo string
}

// Route populates stream.Routes with up to stream.RL node-disjoint
// paths from stream.Src to stream.Dst. If fewer than RL paths exist,
// it returns as many as found, sets stream.RedundancyDeficient, and
// returns [ErrRedundancyDeficient]. If zero paths exist, it returns
// [ErrNoPath]. If Src == Dst it returns [ErrInvalidStream].
func (r *Router) Route(stream *Stream) error {
	if stream.Src == stream.Dst {
		return fmt.Errorf("%w: stream %s has src == dst", ErrInvalidStream, stream.ID)
	}

	graph, inNode, outNode := r.buildSplitGraph(stream.Src, stream.Dst)

	var paths []Path
	for len(paths) < stream.RL {
		path, cost, ok := shortestAugmentingPath(graph, outNode(stream.Src), inNode(stream.Dst))
		if !ok {
			break
		}
		augment(graph, path)
		devicePath := decodePath(path, graph, stream.Src)
		paths = append(paths, devicePath)
		if r.logger != nil {
			r.logger.Infof("tsnsim: stream %s: route %d found (cost=%g): %s", stream.ID, len(paths), cost, Path(devicePath))
		}
	}

	if len(paths) == 0 {
		return fmt.Errorf("%w: stream %s", ErrNoPath, stream.ID)
	}

	stream.Routes = paths
	if len(paths) < stream.RL {
		stream.RedundancyDeficient = true
		if r.logger != nil {
			r.logger.Warnf("tsnsim: stream %s: redundancy deficient, wanted %d got %d", stream.ID, stream.RL, len(paths))
		}
		return fmt.Errorf("%w: stream %s wanted %d got %d", ErrRedundancyDeficient, stream.ID, stream.RL, len(paths))
	}
	return nil
}

// buildSplitGraph builds the node-split residual graph for a single
// (src,dst) query. Intermediate devices are split into "<name>#in"
// and "<name>#out" joined by a capacity-1 edge; src and dst are left
// as single nodes equal to their own name. Self-loops in the network
// are ignored, per spec.
func (r *Router) buildSplitGraph(src, dst string) (graph map[string][]routeEdge, inNode, outNode func(string) string) {
	inNode = func(name string) string {
		if name == src || name == dst {
			return name
		}
		return name + "#in"
	}
	outNode = func(name string) string {
		if name == src || name == dst {
			return name
		}
		return name + "#out"
	}

	graph = map[string][]routeEdge{}
	addEdge := func(from, to string, cap int, cost float64, deviceTo string) {
		graph[from] = append(graph[from], routeEdge{to: to, cap: cap, cost: cost, rev: len(graph[to]), deviceTo: deviceTo})
		graph[to] = append(graph[to], routeEdge{to: from, cap: 0, cost: -cost, rev: len(graph[from]) - 1})
	}

	// sort devices by name for deterministic edge ordering: a
	// practical stand-in for full lexicographic tie-break among
	// equal-cost paths, since Bellman-Ford visits edges in this
	// order and keeps the first-found predecessor on ties.
	names := make([]string, 0, len(r.net.devices))
	for name := range r.net.devices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name != src && name != dst {
			addEdge(inNode(name), outNode(name), 1, 0, "")
		}
	}
	for _, name := range names {
		links := append([]Link(nil), r.net.Neighbors(name)...)
		sort.Slice(links, func(i, j int) bool { return links[i].Dst < links[j].Dst })
		for _, l := range links {
			if l.Src == l.Dst {
				continue // self-loop, ignored
			}
			addEdge(outNode(l.Src), inNode(l.Dst), 1, 1.0/l.Speed, l.Dst)
		}
	}
	return graph, inNode, outNode
}

// pathStep is one traversed edge during shortest-path search.
type pathStep struct {
	from, to string
	edgeIdx  int
}

// shortestAugmentingPath finds the minimum-cost path from src to dst
// in the residual graph using Bellman-Ford: residual edges can carry
// negative cost after earlier augmentations, so Dijkstra is unsafe.
func shortestAugmentingPath(graph map[string][]routeEdge, src, dst string) (path []pathStep, cost float64, ok bool) {
	dist := map[string]float64{src: 0}
	predFrom := map[string]string{}
	predEdge := map[string]int{}

	// collect nodes in deterministic order for stable relaxation.
	nodes := make([]string, 0, len(graph))
	for n := range graph {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)

	for i := 0; i < len(nodes); i++ {
		changed := false
		for _, u := range nodes {
			du, reached := dist[u]
			if !reached {
				continue
			}
			for idx, e := range graph[u] {
				if e.cap <= 0 {
					continue
				}
				nd := du + e.cost
				cur, seen := dist[e.to]
				if !seen || nd < cur {
					dist[e.to] = nd
					predFrom[e.to] = u
					predEdge[e.to] = idx
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	if _, reached := dist[dst]; !reached {
		return nil, 0, false
	}

	// reconstruct path from dst back to src.
	var steps []pathStep
	cur := dst
	for cur != src {
		from := predFrom[cur]
		idx := predEdge[cur]
		steps = append([]pathStep{{from: from, to: cur, edgeIdx: idx}}, steps...)
		cur = from
	}
	return steps, dist[dst], true
}

// augment pushes one unit of flow along path, updating residual
// capacities.
func augment(graph map[string][]routeEdge, path []pathStep) {
	for _, step := range path {
		e := &graph[step.from][step.edgeIdx]
		e.cap--
		rev := &graph[step.to][e.rev]
		rev.cap++
	}
}

// decodePath converts a sequence of split-graph edges into the
// ordered device path it represents, collapsing "#in"/"#out" pairs,
// and prepending the stream's source device.
func decodePath(path []pathStep, graph map[string][]routeEdge, src string) Path {
	devices := []string{src}
	for _, step := range path {
		e := graph[step.from][step.edgeIdx]
		if e.deviceTo == "" {
			continue // internal split edge, no new device
		}
		if devices[len(devices)-1] != e.deviceTo {
			devices = append(devices, e.deviceTo)
		}
	}
	return devices
}
