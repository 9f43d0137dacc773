package observ

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock(t *Timer, step time.Duration) {
	var cur time.Time
	t.now = func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	fakeClock(tm, 2*time.Millisecond)

	load := tm.Begin("load")
	tm.End(load, "3 files")
	lex := tm.Begin("lex")
	tm.End(lex, "")
	tm.End(42, "ignored")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	assert.Equal(t, PhaseReport{Name: "load", DurationMS: 2, Note: "3 files"}, r.Phases[0])
	assert.InDelta(t, 4.0, r.TotalMS, 1e-9)

	s := tm.Summary()
	assert.True(t, strings.HasPrefix(s, "timings:\n"))
	assert.Contains(t, s, "// 3 files")
	assert.Contains(t, s, "total")
}

func TestTimerAddConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("lex (files)", time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	require.Len(t, r.Phases, 1)
	assert.Equal(t, 16, r.Phases[0].Count)
	assert.InDelta(t, 16.0, r.Phases[0].DurationMS, 1e-9)
	// накопленные фазы не входят в total
	assert.Zero(t, r.TotalMS)
	assert.Contains(t, tm.Summary(), "x16")
}

func TestTimerEmpty(t *testing.T) {
	assert.Equal(t, Report{}, NewTimer().Report())
}
