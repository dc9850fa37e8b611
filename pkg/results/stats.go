package results

import (
	"time"

	"github.com/montanaflynn/stats"
)

// Timing summarises trial durations of one instantiator.
type Timing struct {
	Trials int           `json:"trials"`
	Mean   time.Duration `json:"mean_ns"`
	Median time.Duration `json:"median_ns"`
	P95    time.Duration `json:"p95_ns"`
	Max    time.Duration `json:"max_ns"`
}

// ComputeTiming aggregates durations. An empty input yields a zero Timing.
func ComputeTiming(trials []Trial) Timing {
	data := make(stats.Float64Data, 0, len(trials))
	for _, t := range trials {
		data = append(data, float64(t.Elapsed))
	}
	tm := Timing{Trials: len(data)}
	if len(data) == 0 {
		return tm
	}
	if mean, err := stats.Mean(data); err == nil {
		tm.Mean = time.Duration(mean)
	}
	if median, err := stats.Median(data); err == nil {
		tm.Median = time.Duration(median)
	}
	if p95, err := stats.Percentile(data, 95); err == nil {
		tm.P95 = time.Duration(p95)
	}
	if maxVal, err := stats.Max(data); err == nil {
		tm.Max = time.Duration(maxVal)
	}
	return tm
}
