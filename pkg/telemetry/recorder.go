// Package telemetry captures per-frame particle system statistics for
// headless runs and turns them into CSV files, summary tables and charts.
package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/gonewx/particlefx/pkg/engine"
)

// FrameStat is one captured frame.
type FrameStat struct {
	Frame    int     `csv:"frame"`
	Time     float64 `csv:"time"`
	Alive    int     `csv:"alive"`
	Dead     int     `csv:"dead"`
	Spawned  int     `csv:"spawned"`
	Finished int     `csv:"finished"`
}

// Recorder accumulates frame stats over one run. A nil recorder no-ops, so
// callers can leave telemetry off without branching.
type Recorder struct {
	frames []FrameStat

	lastSpawned  uint64
	lastRecycled uint64
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe captures the system's state after a frame. frame is the frame
// number, now the elapsed simulation time in seconds.
func (r *Recorder) Observe(frame int, now float64, s *engine.System) {
	if r == nil {
		return
	}
	spawned := s.TotalSpawned()
	recycled := s.TotalRecycled()
	r.frames = append(r.frames, FrameStat{
		Frame:    frame,
		Time:     now,
		Alive:    s.Alive(),
		Dead:     s.Dead(),
		Spawned:  int(spawned - r.lastSpawned),
		Finished: int(recycled - r.lastRecycled),
	})
	r.lastSpawned = spawned
	r.lastRecycled = recycled
}

// Frames returns the captured frames in order.
func (r *Recorder) Frames() []FrameStat {
	if r == nil {
		return nil
	}
	return r.frames
}

// WriteCSV writes every captured frame to path.
func (r *Recorder) WriteCSV(path string) error {
	if r == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.Marshal(r.frames, f); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}
