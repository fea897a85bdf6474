package tsnsim

//
// Orchestrator
//
// Orchestrator wires Router, Schedule, Engine, and the accounting
// helpers into the single entry point most callers want: given a
// topology and a set of streams, produce the full Results.
//

import (
	"context"
	"fmt"
)

// Orchestrator runs a complete simulation: routing, scheduling,
// execution, and accounting, in that order.
type Orchestrator struct {
	logger Logger
}

// NewOrchestrator creates an [Orchestrator] that logs via logger. A nil
// logger is valid and disables logging.
func NewOrchestrator(logger Logger) *Orchestrator {
	return &Orchestrator{logger: logger}
}

// Run routes every stream over net, builds the release schedule,
// executes the simulation under config, and returns the accounted
// [Results].
//
// A stream for which routing fails with [ErrRedundancyDeficient] does
// not abort the run: its partial routes are kept, RedundancyDeficient
// is recorded, and simulation proceeds. [ErrNoPath] and
// [ErrInvalidStream] do abort, since a stream with zero routes cannot
// be scheduled at all.
func (o *Orchestrator) Run(ctx context.Context, net *Network, streams []*Stream, config Config) (*Results, error) {
	router := NewRouter(net, o.logger)
	for _, s := range streams {
		if err := net.ValidateStream(s); err != nil {
			return nil, err
		}
		if err := router.Route(s); err != nil && s.Routes == nil {
			return nil, fmt.Errorf("tsnsim: routing stream %s: %w", s.ID, err)
		}
	}

	schedule, err := NewSchedule(streams)
	if err != nil {
		return nil, err
	}

	engine, err := NewEngine(net, schedule, config, o.logger)
	if err != nil {
		return nil, err
	}

	results, err := engine.Run(ctx)
	if err != nil {
		return results, err
	}

	results.TopologyCost = TopologyCost(net)
	for _, s := range streams {
		results.RedundancyOK[s.ID] = RedundancyOK(s)
	}

	if err := AggregateWCTT(results); err != nil {
		return results, err
	}

	if o.logger != nil {
		o.logger.Infof("tsnsim: run complete: %d streams, topology cost %d", len(streams), results.TopologyCost)
	}

	return results, nil
}
