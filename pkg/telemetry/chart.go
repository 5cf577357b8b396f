package telemetry

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteChart renders the recorded run as a standalone HTML line chart:
// live particle count and per-frame spawns over simulation time.
func (r *Recorder) WriteChart(path, title string) error {
	if r == nil {
		return nil
	}

	x := make([]string, len(r.frames))
	alive := make([]opts.LineData, len(r.frames))
	spawned := make([]opts.LineData, len(r.frames))
	for i, f := range r.frames {
		x[i] = fmt.Sprintf("%.2f", f.Time)
		alive[i] = opts.LineData{Value: f.Alive}
		spawned[i] = opts.LineData{Value: f.Spawned}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "seconds"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "particles"}),
	)
	line.SetXAxis(x).
		AddSeries("alive", alive).
		AddSeries("spawned", spawned)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := line.Render(f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
