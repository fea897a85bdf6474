package tsnsim

//
// Discrete-event simulation engine
//
// The engine is a single-threaded, cooperative event loop: a device
// priority queue (deviceQueue) always advances the device with the
// smallest local_time; emitting one framelet (or an idle tick)
// advances that device's local_time by the framelet's serialization
// delay; a receive barrier periodically sweeps every device's ingress
// into egress (switches) or consumes arrived framelets (destination
// end systems). There is no OS-level concurrency here: apparent
// concurrency between devices is entirely an artifact of the device
// queue's ordering.
//

import (
	"context"
	"fmt"
)

// Engine drives a [Network] forward in simulated time according to a
// [Schedule], producing [Results]. The zero value is invalid; use
// [NewEngine].
type Engine struct {
	net      *Network
	schedule *Schedule
	config   Config
	logger   Logger

	dq      *deviceQueue
	results *Results

	releasePos        int
	hyperperiodsPassed int
	instanceSeq        int64

	// firstArrival tracks, per stream instance, the earliest arrival
	// time seen so far for each framelet index, across all routes.
	firstArrival map[*StreamInstance]map[int]float64
}

// NewEngine creates an [Engine] bound to net and schedule. Returns
// [ErrInvalidTopology] wrapped with a descriptive message if
// config.Scheduler names an unsupported variant.
func NewEngine(net *Network, schedule *Schedule, config Config, logger Logger) (*Engine, error) {
	if v := config.scheduler(); v != SchedulerStrictPriority {
		return nil, fmt.Errorf("%w: unsupported scheduler variant %q", ErrInvalidTopology, v)
	}

	dq := newDeviceQueue()
	for _, d := range net.Devices() {
		dq.push(d)
	}

	return &Engine{
		net:          net,
		schedule:     schedule,
		config:       config,
		logger:       logger,
		dq:           dq,
		results:      newResults(),
		firstArrival: map[*StreamInstance]map[int]float64{},
	}, nil
}

// Run executes the simulation until the configured stop condition.
// It returns [ErrSimulationLimit] wrapped if the iteration cap is
// reached; this is a backstop against malformed schedules, not an
// expected outcome. Reaching the configured time limit, completing a
// full hyperperiod, or stopping early on a miss (when StopOnMiss is
// set) are all normal terminations reported via nil error; callers
// inspect the returned [Results] to distinguish them.
func (e *Engine) Run(ctx context.Context) (*Results, error) {
	limit := float64(e.schedule.Hyperperiod)
	if !e.config.TimeLimit.Empty() {
		limit = e.config.TimeLimit.Unwrap()
	}

	iterCap := e.config.iterationCap()
	releases := e.schedule.Releases()

	for iteration := 0; ; iteration++ {
		if err := ctx.Err(); err != nil {
			return e.results, err
		}
		if iteration >= iterCap {
			return e.results, fmt.Errorf("%w: iteration cap of %d reached", ErrSimulationLimit, iterCap)
		}

		globalMin := e.dq.min()
		if globalMin == nil {
			break // no devices, nothing to do
		}
		e.releaseDue(releases, globalMin.localTime)

		prevMin := globalMin.localTime
		d := e.dq.pop()

		missesBefore := len(e.results.Misses)
		e.emit(d)

		if d.localTime > prevMin {
			e.receiveBarrier()
		}

		e.dq.push(d)

		if limit > 0 && d.localTime >= limit {
			break
		}
		if e.config.StopOnMiss && len(e.results.Misses) > missesBefore {
			break
		}
	}

	return e.results, nil
}

// releaseDue materializes any scheduled releases whose absolute time
// is at or before age, advancing the cyclic release iterator as it
// goes.
func (e *Engine) releaseDue(releases []int, age float64) {
	if len(releases) == 0 {
		return
	}
	for {
		absolute := float64(e.hyperperiodsPassed*e.schedule.Hyperperiod + releases[e.releasePos])
		if absolute > age {
			return
		}
		for _, s := range e.schedule.At(releases[e.releasePos]) {
			e.release(s, absolute)
		}
		e.releasePos++
		if e.releasePos >= len(releases) {
			e.releasePos = 0
			e.hyperperiodsPassed++
		}
	}
}

// release materializes one instance of stream at releaseTime: one
// framelet chain per route, enqueued on the source device's egress.
func (e *Engine) release(stream *Stream, releaseTime float64) {
	e.instanceSeq++
	instance := &StreamInstance{
		Stream:        stream,
		ReleaseTime:   releaseTime,
		LocalDeadline: releaseTime + float64(stream.Deadline),
	}
	instance.chains = make([][]*Framelet, len(stream.Routes))

	src := e.net.Device(stream.Src)

	for routeIdx, route := range stream.Routes {
		remaining := stream.Size
		index := 0
		for remaining > 0 {
			size := remaining
			if size > MTU {
				size = MTU
			}
			f := &Framelet{
				Index:       index,
				Instance:    instance,
				Size:        size,
				Route:       route,
				RouteIndex:  routeIdx,
				Priority:    stream.priority(),
				CurrentTime: releaseTime,
				hop:         0,
			}
			f.insertionSeq = src.nextSeq()
			src.egress.push(f)
			instance.chains[routeIdx] = append(instance.chains[routeIdx], f)
			remaining -= size
			index++
		}
	}

	if e.logger != nil {
		e.logger.Debugf("tsnsim: stream %s released at t=%g (%d routes)", stream.ID, releaseTime, len(stream.Routes))
	}
}

// emit performs the emit phase for the popped device d: send its
// highest-priority framelet one hop further, or apply an idle tick if
// its egress is empty.
func (e *Engine) emit(d *Device) {
	if d.egress.empty() {
		d.localTime += IdleTickQuantum
		return
	}

	f := d.egress.pop()
	nextHopName := f.Route[f.hop+1]
	link, ok := e.net.Link(d.Name, nextHopName)
	if !ok {
		// InvariantViolation: a chosen route references a link that
		// no longer exists in the network. This indicates a bug in
		// routing, not a runtime condition callers should handle.
		panic(fmt.Errorf("%w: no link %s->%s for framelet on stream %s", ErrInvariantViolation, d.Name, nextHopName, f.Instance.Stream.ID))
	}

	// a device cannot start serializing a framelet before it has
	// arrived at its ingress; jump the clock forward if it's idling
	// ahead of that.
	if f.CurrentTime > d.localTime {
		d.localTime = f.CurrentTime
	}
	delta := float64(f.Size) / link.Speed
	d.localTime += delta
	f.CurrentTime = d.localTime
	f.hop++

	successor := e.net.Device(f.currentDeviceName())
	successor.ingress = append(successor.ingress, f)

	if e.logger != nil {
		e.logger.Debugf("tsnsim: framelet %s/%d[%d] %s->%s at t=%g", f.Instance.Stream.ID, f.Instance.ReleaseTime, f.Index, d.Name, nextHopName, f.CurrentTime)
	}
}

// receiveBarrier sweeps every device's ingress: switches and transit
// end systems move arrived framelets to egress; the destination end
// system of a framelet's route consumes it.
func (e *Engine) receiveBarrier() {
	for _, d := range e.net.Devices() {
		if len(d.ingress) == 0 {
			continue
		}
		pending := d.ingress
		d.ingress = nil

		for _, f := range pending {
			if f.atDestination() {
				e.consume(d, f)
				continue
			}
			f.insertionSeq = d.nextSeq()
			d.egress.push(f)
		}
	}
}

// consume processes a framelet that has reached the last device of
// its route: WCTT/miss accounting per the redundancy semantics in
// which the first copy of each framelet index satisfies the stream's
// payload, duplicates are dropped unless they arrived earlier.
func (e *Engine) consume(d *Device, f *Framelet) {
	instance := f.Instance
	stream := instance.Stream

	byIndex, ok := e.firstArrival[instance]
	if !ok {
		byIndex = map[int]float64{}
		e.firstArrival[instance] = byIndex
	}

	prev, seen := byIndex[f.Index]
	isNew := !seen
	isEarlierDuplicate := seen && f.CurrentTime < prev
	if !isNew && !isEarlierDuplicate {
		return // duplicate, later than first-seen: dropped silently
	}
	byIndex[f.Index] = f.CurrentTime

	elapsed := f.CurrentTime - instance.ReleaseTime
	if isEarlierDuplicate {
		// a faster copy can lower the stream's WCTT: recompute it from
		// the earliest arrival of every framelet index seen so far.
		worst := 0.0
		for other, arrivals := range e.firstArrival {
			if other.Stream != stream {
				continue
			}
			for _, t := range arrivals {
				if t-other.ReleaseTime > worst {
					worst = t - other.ReleaseTime
				}
			}
		}
		e.results.WCTT[stream.ID] = worst
	} else if elapsed > e.results.WCTT[stream.ID] {
		e.results.WCTT[stream.ID] = elapsed
	}

	if isNew {
		if f.CurrentTime > instance.LocalDeadline {
			e.results.recordMiss(f.CurrentTime, stream.ID)
		}
		if len(byIndex) == len(instance.chains[f.RouteIndex]) {
			instance.delivered = true
		}
	}

	if e.logger != nil && isNew && f.CurrentTime > instance.LocalDeadline {
		e.logger.Warnf("tsnsim: stream %s: miss at t=%g (deadline %g)", stream.ID, f.CurrentTime, instance.LocalDeadline)
	}
}
