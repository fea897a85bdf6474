package tsnsim

//
// Data model
//
// Devices, links, streams, framelets, and instances are modeled as
// plain records referencing each other by name or by pointer into the
// owning [Network]/[Stream], never by owning pointer, so there are no
// reference cycles in the ownership graph: the [Network] owns
// [Device]s, [Device]s own their queues, [Stream]s own their routes,
// and the [Engine] owns [StreamInstance]s and [Framelet]s for their
// lifetime.
//

import (
	"fmt"
)

// Logger is the logger we're using.
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)
}

// DeviceKind distinguishes end systems from switches.
type DeviceKind int

const (
	// EndSystemKind is a device that may originate and terminate
	// streams.
	EndSystemKind = DeviceKind(iota)

	// SwitchKind is a device that only forwards framelets.
	SwitchKind
)

// String implements fmt.Stringer.
func (k DeviceKind) String() string {
	switch k {
	case EndSystemKind:
		return "EndSystem"
	case SwitchKind:
		return "Switch"
	default:
		return "Unknown"
	}
}

// Device is a node in the [Network]. Its identity is its Name:
// equality and hashing (map keys) go by Name alone.
//
// The zero value is invalid; devices are created by [Network.AddDevice].
type Device struct {
	// Name uniquely identifies this device within its [Network].
	Name string

	// Kind is EndSystemKind or SwitchKind.
	Kind DeviceKind

	// localTime is the simulated time at which this device next
	// becomes free to emit.
	localTime float64

	// ingress is the buffer of framelets that arrived at this
	// device during the current step and have not yet been
	// reconciled by the receive barrier.
	ingress []*Framelet

	// egress is the priority-ordered queue of framelets waiting to
	// be transmitted by this device.
	egress *frameletQueue

	// seq is this device's insertion sequence counter, used to
	// break ties in egress ordering.
	seq int64
}

// newDevice creates a [Device] in its initial state.
func newDevice(name string, kind DeviceKind) *Device {
	return &Device{
		Name:      name,
		Kind:      kind,
		localTime: 0,
		ingress:   nil,
		egress:    newFrameletQueue(),
	}
}

// nextSeq returns this device's next insertion sequence number.
func (d *Device) nextSeq() int64 {
	d.seq++
	return d.seq
}

// LocalTime returns the device's current simulated local time.
func (d *Device) LocalTime() float64 {
	return d.localTime
}

// Link is a directed edge between two devices carrying a positive
// line rate (bytes per simulated time unit). At most one [Link] may
// exist per ordered (Src, Dst) pair in a [Network].
type Link struct {
	// Src is the name of the link's source device.
	Src string

	// Dst is the name of the link's destination device.
	Dst string

	// Speed is the link's line rate, in bytes per simulated time
	// unit. Must be strictly positive.
	Speed float64
}

// key identifies this link within a [Network]'s link table.
func (l Link) key() string {
	return l.Src + "->" + l.Dst
}

// Path is an ordered sequence of device names from a stream's source
// to its destination, inclusive of both endpoints.
type Path []string

// String implements fmt.Stringer.
func (p Path) String() string {
	s := ""
	for i, name := range p {
		if i > 0 {
			s += ">"
		}
		s += name
	}
	return s
}

// links returns the ordered sequence of (src,dst) device-name pairs
// that make up this path.
func (p Path) links() []Link {
	if len(p) < 2 {
		return nil
	}
	out := make([]Link, 0, len(p)-1)
	for i := 0; i+1 < len(p); i++ {
		out = append(out, Link{Src: p[i], Dst: p[i+1]})
	}
	return out
}

// Stream is a periodic flow of frames from Src to Dst, described by
// its per-release payload size, period, deadline, and required
// redundancy level. Streams are mutated only during routing setup
// (Routes is populated by [Router.Route]); they are read-only during
// simulation.
type Stream struct {
	// ID uniquely identifies this stream.
	ID string

	// Src is the name of the originating EndSystem.
	Src string

	// Dst is the name of the terminating EndSystem.
	Dst string

	// Size is the total payload size, in bytes, of one release.
	Size int

	// Period is the time, in simulated time units, between
	// successive releases.
	Period int

	// Deadline is the time, relative to a release, by which all of
	// that release's framelets on at least one route must arrive.
	Deadline int

	// RL is the required redundancy level: the number of
	// node-disjoint routes the stream wants.
	RL int

	// Priority is the stream's scheduling priority: higher values
	// are served first. Zero is treated as the default priority, 1.
	Priority int

	// Routes holds the 1..RL node-disjoint paths chosen by
	// [Router.Route]. Populated during routing setup.
	Routes []Path

	// RedundancyDeficient is set by [Router.Route] when fewer than
	// RL disjoint paths were found.
	RedundancyDeficient bool
}

// priority returns the stream's effective priority (defaulting to 1).
func (s *Stream) priority() int {
	if s.Priority == 0 {
		return 1
	}
	return s.Priority
}

// StreamInstance is one periodic release of a [Stream].
type StreamInstance struct {
	// Stream is the releasing stream.
	Stream *Stream

	// ReleaseTime is the simulated time at which this instance was
	// released.
	ReleaseTime float64

	// LocalDeadline is ReleaseTime plus the stream's Deadline.
	LocalDeadline float64

	// chains holds one framelet chain (ordered by index) per route.
	chains [][]*Framelet

	// delivered is set once some route has delivered all of its
	// framelets to the destination.
	delivered bool
}

// Framelet is one MTU-sized fragment of a [StreamInstance], bound to
// one of its stream's routes.
type Framelet struct {
	// Index is this framelet's position within its route's chain.
	Index int

	// Instance is the releasing stream instance.
	Instance *StreamInstance

	// Size is this framelet's payload size in bytes; Size <= MTU.
	Size int

	// Route is the path this framelet travels.
	Route Path

	// RouteIndex is the index of Route within Instance.Stream.Routes.
	RouteIndex int

	// Priority is the framelet's scheduling priority, copied from
	// its stream at creation time.
	Priority int

	// CurrentTime is the earliest simulated time at which this
	// framelet becomes available at the current hop's ingress.
	CurrentTime float64

	// hop is the index, within Route, of the device this framelet is
	// currently queued on.
	hop int

	// insertionSeq breaks ties in egress ordering; assigned when the
	// framelet is enqueued on a device's egress.
	insertionSeq int64
}

// currentDeviceName returns the name of the device this framelet is
// currently queued on.
func (f *Framelet) currentDeviceName() string {
	return f.Route[f.hop]
}

// atDestination reports whether the device this framelet currently
// resides on is the last device of its route.
func (f *Framelet) atDestination() bool {
	return f.hop == len(f.Route)-1
}

// Results is the output of a simulation run.
type Results struct {
	// WCTT maps stream ID to its observed worst-case transmission
	// time across the run.
	WCTT map[string]float64

	// Misses maps simulated time to the set of stream IDs that
	// missed their deadline at that time.
	Misses map[float64]map[string]bool

	// RedundancyOK maps stream ID to whether its routes satisfy its
	// requested redundancy level.
	RedundancyOK map[string]bool

	// TopologyCost is the aggregate switch-degree cost of the
	// network.
	TopologyCost int

	// Aggregates holds cross-stream WCTT statistics, populated by
	// [AggregateWCTT].
	Aggregates Aggregates
}

// Aggregates holds cross-stream WCTT statistics.
type Aggregates struct {
	// WorstWCTT is the maximum WCTT across all streams.
	WorstWCTT float64

	// AverageWCTT is the mean WCTT across all streams.
	AverageWCTT float64

	// P95WCTT is the 95th-percentile WCTT across all streams.
	P95WCTT float64

	// RedundancySatisfactionRatio is the fraction of streams whose
	// RedundancyOK is true.
	RedundancySatisfactionRatio float64

	// DeadlinesMissed is true if Results.Misses is non-empty.
	DeadlinesMissed bool
}

// newResults creates an empty [Results].
func newResults() *Results {
	return &Results{
		WCTT:         map[string]float64{},
		Misses:       map[float64]map[string]bool{},
		RedundancyOK: map[string]bool{},
	}
}

// recordMiss registers a deadline miss for streamID at time t.
func (r *Results) recordMiss(t float64, streamID string) {
	set, ok := r.Misses[t]
	if !ok {
		set = map[string]bool{}
		r.Misses[t] = set
	}
	set[streamID] = true
}

// String implements fmt.Stringer, producing a human-readable per-stream
// summary. This is not a serialization format; writing results to a
// file is out of scope for this package.
func (r *Results) String() string {
	s := fmt.Sprintf("topology cost: %d\n", r.TopologyCost)
	for id, wctt := range r.WCTT {
		s += fmt.Sprintf("stream %s: WCTT=%g redundancy_ok=%v\n", id, wctt, r.RedundancyOK[id])
	}
	if r.Aggregates.DeadlinesMissed {
		s += fmt.Sprintf("misses recorded at %d distinct times\n", len(r.Misses))
	}
	return s
}
