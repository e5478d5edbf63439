// Package stats aggregates recorded run durations into wall-time
// percentiles, useful for spotting training slowdowns across experiments.
package stats

import (
	"errors"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// ErrNoRuns is returned when there is nothing to aggregate.
var ErrNoRuns = errors.New("no finished runs")

// Summary holds wall-time percentiles over a set of runs.
type Summary struct {
	Count int
	Min   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// Durations tracks run wall times up to 30 days with second resolution.
type Durations struct {
	histogram *hdrhistogram.Histogram
}

// NewDurations returns an empty duration tracker.
func NewDurations() *Durations {
	return &Durations{
		histogram: hdrhistogram.New(1, int64(30*24*time.Hour/time.Second), 3),
	}
}

// Record adds one run duration.
func (d *Durations) Record(dur time.Duration) {
	_ = d.histogram.RecordValue(int64(dur / time.Second))
}

// Summarize computes the percentile summary over everything recorded.
func (d *Durations) Summarize() (*Summary, error) {
	if d.histogram.TotalCount() == 0 {
		return nil, ErrNoRuns
	}
	return &Summary{
		Count: int(d.histogram.TotalCount()),
		Min:   time.Duration(d.histogram.Min()) * time.Second,
		Mean:  time.Duration(d.histogram.Mean()) * time.Second,
		P50:   time.Duration(d.histogram.ValueAtQuantile(50)) * time.Second,
		P95:   time.Duration(d.histogram.ValueAtQuantile(95)) * time.Second,
		P99:   time.Duration(d.histogram.ValueAtQuantile(99)) * time.Second,
		Max:   time.Duration(d.histogram.Max()) * time.Second,
	}, nil
}

// Summarize is a convenience over a plain duration slice.
func Summarize(durations []time.Duration) (*Summary, error) {
	d := NewDurations()
	for _, dur := range durations {
		d.Record(dur)
	}
	return d.Summarize()
}
