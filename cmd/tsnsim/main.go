// Command tsnsim runs one of the built-in seed scenarios end to end
// and prints the resulting WCTT, redundancy, and topology accounting.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/apex/log"

	"github.com/tsnsim/tsnsim"
	"github.com/tsnsim/tsnsim/internal/optional"
)

func main() {
	name := flag.String("scenario", "two-device", "seed scenario to run")
	timeLimit := flag.Float64("time-limit", 0, "simulated time limit (0 means one hyperperiod)")
	stopOnMiss := flag.Bool("stop-on-miss", false, "stop the run right after the first deadline miss")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	timeout := flag.Duration("timeout", 10*time.Second, "wall-clock timeout for the run")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	sc, err := lookupScenario(*name)
	if err != nil {
		log.WithError(err).Fatal("lookupScenario")
	}

	net, streams, err := sc.build()
	if err != nil {
		log.WithError(err).Fatal("building scenario")
	}

	config := tsnsim.Config{StopOnMiss: *stopOnMiss}
	if *timeLimit > 0 {
		config.TimeLimit = optional.Some(*timeLimit)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	orchestrator := tsnsim.NewOrchestrator(log.Log)
	results, err := orchestrator.Run(ctx, net, streams, config)
	if err != nil {
		log.WithError(err).Warn("orchestrator.Run")
	}
	if results == nil {
		log.Fatal("no results produced")
	}

	log.Infof("scenario %s complete", *name)
	log.Infof("\n%s", results.String())
}
