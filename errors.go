package tsnsim

//
// Error taxonomy
//

import "errors"

// ErrInvalidTopology indicates a malformed [Network]: a duplicate
// device name, a link referencing an unknown device, a non-positive
// link speed, or a stream endpoint that is not a known end system
// ([EndSystemKind]).
var ErrInvalidTopology = errors.New("tsnsim: invalid topology")

// ErrInvalidStream indicates a malformed [Stream]: a non-positive
// period, size, or deadline, a zero redundancy level, or a stream
// whose source and destination are the same device.
var ErrInvalidStream = errors.New("tsnsim: invalid stream")

// ErrNoPath indicates that [Router.Route] found zero paths between a
// stream's source and destination.
var ErrNoPath = errors.New("tsnsim: no path")

// ErrRedundancyDeficient indicates that [Router.Route] found fewer
// node-disjoint paths than the stream's requested redundancy level.
// This is non-fatal: the stream is routed with the paths found, and
// the deficiency is recorded in [Results].
var ErrRedundancyDeficient = errors.New("tsnsim: redundancy deficient")

// ErrInvariantViolation indicates corrupted engine state, such as a
// framelet that is present in no queue, or a device popped from the
// device queue more than once. It always indicates a bug.
var ErrInvariantViolation = errors.New("tsnsim: invariant violation")

// ErrSimulationLimit indicates that [Engine.Run] stopped because it
// hit the iteration cap. This is a non-fatal termination condition,
// not a failure. Reaching the configured time limit is a normal
// termination and is not reported with this error.
var ErrSimulationLimit = errors.New("tsnsim: simulation limit reached")
