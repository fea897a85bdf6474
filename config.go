package tsnsim

//
// Engine configuration
//

import "github.com/tsnsim/tsnsim/internal/optional"

// SchedulerVariant identifies an egress scheduling policy. Strict
// priority with EDF tie-break is currently the only supported variant.
type SchedulerVariant string

// SchedulerStrictPriority is the only supported [SchedulerVariant]:
// strict priority ordering with earliest-deadline-first tie-break.
const SchedulerStrictPriority = SchedulerVariant("strict-priority")

// MTU is the build-time maximum framelet payload size, in bytes.
const MTU = 64

// IdleTickQuantum is the time increment applied to a device whose
// egress is empty when it is popped from the device queue, ensuring
// the global clock always makes progress. Expressed as MTU bytes
// divided by a reference rate of 12.5 bytes per time unit.
const IdleTickQuantum = float64(MTU) / 12.5

// Config is the immutable configuration threaded through [NewEngine].
// The zero value runs one full hyperperiod with strict priority
// scheduling and never stops early on a miss.
type Config struct {
	// TimeLimit, if present, stops the simulation once the popped
	// device's local time reaches or exceeds it. If empty, the
	// engine runs for exactly one hyperperiod.
	TimeLimit optional.Value[float64]

	// StopOnMiss terminates the simulation right after the first
	// deadline miss is recorded.
	StopOnMiss bool

	// Scheduler selects the egress ordering policy. Only
	// [SchedulerStrictPriority] is currently supported; NewEngine
	// rejects any other value.
	Scheduler SchedulerVariant

	// IterationCap bounds the number of steps the engine will take
	// regardless of TimeLimit, as a backstop against runaway
	// schedules. Zero means "use the default cap".
	IterationCap int
}

// defaultIterationCap is used when Config.IterationCap is zero.
const defaultIterationCap = 10_000_000

// iterationCap returns the configured cap or the default.
func (c Config) iterationCap() int {
	if c.IterationCap > 0 {
		return c.IterationCap
	}
	return defaultIterationCap
}

// scheduler returns the configured scheduler variant or the default.
func (c Config) scheduler() SchedulerVariant {
	if c.Scheduler == "" {
		return SchedulerStrictPriority
	}
	return c.Scheduler
}
