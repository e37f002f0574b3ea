package profiler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerTick(t *testing.T) {
	start := time.Unix(0, 0)
	clock := start
	var lines []string

	p := NewProfiler()
	p.lastTime = start
	p.now = func() time.Time { return clock }
	p.logf = func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	// 49 frames of 20ms stay inside the interval
	for i := 0; i < 49; i++ {
		clock = clock.Add(20 * time.Millisecond)
		assert.False(t, p.Tick(3))
	}
	assert.Empty(t, lines)

	clock = clock.Add(20 * time.Millisecond)
	require.True(t, p.Tick(4))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[Profiler] FPS: 50.00")
	assert.Contains(t, lines[0], "Frame: 20.00 ms")
	assert.Contains(t, lines[0], "Draws: 4/frame")

	stats := p.Last()
	assert.InDelta(t, 50.0, stats.FPS, 1e-9)
	assert.Equal(t, 20*time.Millisecond, stats.FrameTime)
	assert.InDelta(t, 151.0, stats.DrawsPerSec, 1e-9)

	// counters restart after a log
	clock = clock.Add(10 * time.Millisecond)
	assert.False(t, p.Tick(1))
}

func TestProfilerSetInterval(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)
	p.SetInterval(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
