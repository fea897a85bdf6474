// Package tsnsim is a discrete-event simulator for time-sensitive
// packet-switched networks used in safety-critical settings (e.g.
// in-vehicle Ethernet).
//
// Given a static [Network] of [Device]s (end systems and switches)
// connected by directed [Link]s, and a set of periodic [Stream]s
// (source, destination, size, period, deadline, redundancy level),
// the package:
//
//   - computes one or more link-disjoint routes per stream, using
//     [NewRouter] and [Router.Route];
//
//   - produces a periodic emission schedule covering one hyperperiod,
//     using [NewSchedule];
//
//   - simulates frame-by-frame transmission across the network under
//     strict-priority / EDF ordering, using [NewEngine] and
//     [Engine.Run], while tracking per-stream worst-case transmission
//     time (WCTT) and deadline misses;
//
//   - reports redundancy satisfaction and a topology cost, via
//     [Results].
//
// [Orchestrator] wires routing, scheduling, simulation, and accounting
// together: construct a [Network] and a list of [Stream]s, then call
// [Orchestrator.Run] to obtain [Results].
//
// The simulation is single-threaded and cooperative: there is no OS
// concurrency inside [Engine.Run]. Do not share a [Network] or a
// [Stream] across goroutines running separate simulations; build a
// fresh [Network] per goroutine instead.
package tsnsim
