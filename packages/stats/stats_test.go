package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	durations := []time.Duration{
		1 * time.Hour,
		2 * time.Hour,
		3 * time.Hour,
		4 * time.Hour,
	}

	s, err := Summarize(durations)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, float64(1*time.Hour), float64(s.Min), float64(time.Minute))
	assert.InDelta(t, float64(4*time.Hour), float64(s.Max), float64(time.Minute))
	assert.InDelta(t, float64(2*time.Hour+30*time.Minute), float64(s.Mean), float64(5*time.Minute))
	assert.True(t, s.P50 <= s.P95)
	assert.True(t, s.P95 <= s.P99)
	assert.True(t, s.P99 <= s.Max+time.Minute)
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrNoRuns)
}

func TestRecordSubSecond(t *testing.T) {
	d := NewDurations()
	d.Record(500 * time.Millisecond)

	s, err := d.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count)
}
