package tsnsim

//
// Hyperperiod and release scheduling
//

import (
	"fmt"
	"sort"
)

// Schedule maps a release time, within one hyperperiod, to the set of
// streams released at that time. It is computed once and replayed
// cyclically by the [Engine].
type Schedule struct {
	// Hyperperiod is the least common multiple of all stream
	// periods.
	Hyperperiod int

	// releases holds, in ascending order, every release time with a
	// non-empty set of streams.
	releases []int

	// streamsAt maps release time to the streams released then.
	streamsAt map[int][]*Stream
}

// NewSchedule computes the hyperperiod and release schedule for
// streams. Returns [ErrInvalidStream] if any stream has a
// non-positive period.
func NewSchedule(streams []*Stream) (*Schedule, error) {
	for _, s := range streams {
		if s.Period <= 0 {
			return nil, fmt.Errorf("%w: stream %s has non-positive period", ErrInvalidStream, s.ID)
		}
	}

	hyper := 1
	for _, s := range streams {
		hyper = lcm(hyper, s.Period)
	}

	streamsAt := map[int][]*Stream{}
	for _, s := range streams {
		count := hyper / s.Period
		for k := 0; k < count; k++ {
			t := k * s.Period
			streamsAt[t] = append(streamsAt[t], s)
		}
	}

	releases := make([]int, 0, len(streamsAt))
	for t := range streamsAt {
		releases = append(releases, t)
	}
	sort.Ints(releases)

	// keep per-time stream order deterministic and independent of
	// input ordering, as required by the round-trip property that
	// the schedule is invariant under reordering of the input set.
	for _, t := range releases {
		set := streamsAt[t]
		sort.Slice(set, func(i, j int) bool { return set[i].ID < set[j].ID })
	}

	return &Schedule{
		Hyperperiod: hyper,
		releases:    releases,
		streamsAt:   streamsAt,
	}, nil
}

// At returns the streams released at time t within the hyperperiod,
// or nil if none.
func (s *Schedule) At(t int) []*Stream {
	return s.streamsAt[t]
}

// Releases returns the sorted, non-empty release times within
// [0, Hyperperiod).
func (s *Schedule) Releases() []int {
	return s.releases
}

// gcd returns the greatest common divisor of a and b.
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// lcm returns the least common multiple of a and b.
func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}
