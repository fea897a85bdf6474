package tsnsim

//
// Redundancy and topology cost accounting
//

// switchDegreeCost is the cost table keyed on switch degree, taken
// from the automotive example this simulator's domain is grounded on.
var switchDegreeCost = map[int]int{
	2: 2,
	3: 3,
	4: 5,
	5: 8,
	6: 9,
	8: 11,
}

// invalidDegreePenalty is charged for a switch degree <= 8 that is
// not in switchDegreeCost.
const invalidDegreePenalty = 500

// TopologyCost sums, over every switch in net, a cost keyed on its
// degree: the table in switchDegreeCost for a degree of 8 or less,
// invalidDegreePenalty for any other degree <= 8, or
// 50*(degree-8) for a degree greater than 8.
func TopologyCost(net *Network) int {
	cost := 0
	for _, d := range net.Devices() {
		if d.Kind != SwitchKind {
			continue
		}
		degree := net.Degree(d.Name)
		switch {
		case degree > 8:
			cost += 50 * (degree - 8)
		default:
			if c, ok := switchDegreeCost[degree]; ok {
				cost += c
			} else {
				cost += invalidDegreePenalty
			}
		}
	}
	return cost
}

// RedundancyOK reports whether stream's chosen routes tolerate the
// loss of any rl-1 links: it holds iff no set of rl-1 links exists
// that intersects every one of the stream's routes. Streams with
// rl <= 1 are trivially redundancy-OK.
func RedundancyOK(stream *Stream) bool {
	if stream.RL <= 1 {
		return true
	}
	if len(stream.Routes) < stream.RL {
		return false
	}

	faultTolerance := stream.RL - 1

	linkSet := map[Link]bool{}
	var links []Link
	for _, route := range stream.Routes {
		for _, l := range route.links() {
			if !linkSet[l] {
				linkSet[l] = true
				links = append(links, l)
			}
		}
	}

	routeLinkSets := make([]map[Link]bool, len(stream.Routes))
	for i, route := range stream.Routes {
		set := map[Link]bool{}
		for _, l := range route.links() {
			set[l] = true
		}
		routeLinkSets[i] = set
	}

	var hitsAllRoutes func(comb []Link) bool
	hitsAllRoutes = func(comb []Link) bool {
		for _, set := range routeLinkSets {
			hit := false
			for _, l := range comb {
				if set[l] {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
		}
		return true
	}

	ok := true
	forEachCombination(links, faultTolerance, func(comb []Link) bool {
		if hitsAllRoutes(comb) {
			ok = false
			return false // stop enumerating, we found a cut
		}
		return true
	})
	return ok
}

// forEachCombination calls visit with every k-element subset of items,
// in order, stopping early if visit returns false.
func forEachCombination(items []Link, k int, visit func(comb []Link) bool) {
	n := len(items)
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	comb := make([]Link, k)
	for {
		for i, j := range idx {
			comb[i] = items[j]
		}
		if !visit(comb) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// RedundancySatisfactionRatio returns the fraction of streams whose
// RedundancyOK is true.
func RedundancySatisfactionRatio(redundancyOK map[string]bool) float64 {
	if len(redundancyOK) == 0 {
		return 1
	}
	ok := 0
	for _, v := range redundancyOK {
		if v {
			ok++
		}
	}
	return float64(ok) / float64(len(redundancyOK))
}
