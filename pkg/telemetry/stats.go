package telemetry

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates one recorded run.
type Summary struct {
	Frames   int
	Duration float64

	MeanAlive float64
	MaxAlive  int
	P50Alive  float64
	P95Alive  float64

	TotalSpawned  int
	TotalFinished int
}

// Summarize reduces the recorder's frames to a Summary. An empty or nil
// recorder yields the zero Summary.
func (r *Recorder) Summarize() Summary {
	if r == nil || len(r.frames) == 0 {
		return Summary{}
	}

	alive := make([]float64, len(r.frames))
	var sum Summary
	for i, f := range r.frames {
		alive[i] = float64(f.Alive)
		if f.Alive > sum.MaxAlive {
			sum.MaxAlive = f.Alive
		}
		sum.TotalSpawned += f.Spawned
		sum.TotalFinished += f.Finished
	}
	sort.Float64s(alive)

	sum.Frames = len(r.frames)
	sum.Duration = r.frames[len(r.frames)-1].Time
	sum.MeanAlive = stat.Mean(alive, nil)
	sum.P50Alive = stat.Quantile(0.50, stat.Empirical, alive, nil)
	sum.P95Alive = stat.Quantile(0.95, stat.Empirical, alive, nil)
	return sum
}

// String renders the summary as an aligned table.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "frames          %d\n", s.Frames)
	fmt.Fprintf(&b, "duration        %.2fs\n", s.Duration)
	fmt.Fprintf(&b, "alive mean      %.1f\n", s.MeanAlive)
	fmt.Fprintf(&b, "alive p50       %.1f\n", s.P50Alive)
	fmt.Fprintf(&b, "alive p95       %.1f\n", s.P95Alive)
	fmt.Fprintf(&b, "alive max       %d\n", s.MaxAlive)
	fmt.Fprintf(&b, "total spawned   %d\n", s.TotalSpawned)
	fmt.Fprintf(&b, "total finished  %d\n", s.TotalFinished)
	return b.String()
}
