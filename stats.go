package tsnsim

//
// Cross-stream WCTT aggregation
//

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// AggregateWCTT computes worst/average/p95 WCTT and the redundancy
// satisfaction ratio across results and stores them in
// results.Aggregates. It also sets Aggregates.DeadlinesMissed.
func AggregateWCTT(results *Results) error {
	if len(results.WCTT) == 0 {
		results.Aggregates = Aggregates{
			RedundancySatisfactionRatio: RedundancySatisfactionRatio(results.RedundancyOK),
			DeadlinesMissed:             len(results.Misses) > 0,
		}
		return nil
	}

	values := make(stats.Float64Data, 0, len(results.WCTT))
	for _, wctt := range results.WCTT {
		values = append(values, wctt)
	}

	worst, err := values.Max()
	if err != nil {
		return fmt.Errorf("tsnsim: aggregate WCTT: %w", err)
	}
	avg, err := values.Mean()
	if err != nil {
		return fmt.Errorf("tsnsim: aggregate WCTT: %w", err)
	}
	p95, err := values.PercentileNearestRank(95)
	if err != nil {
		return fmt.Errorf("tsnsim: aggregate WCTT: %w", err)
	}

	results.Aggregates = Aggregates{
		WorstWCTT:                   worst,
		AverageWCTT:                 avg,
		P95WCTT:                     p95,
		RedundancySatisfactionRatio: RedundancySatisfactionRatio(results.RedundancyOK),
		DeadlinesMissed:             len(results.Misses) > 0,
	}
	return nil
}
