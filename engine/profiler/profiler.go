package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one interval's summary.
type Stats struct {
	FPS          float64
	FrameTime    time.Duration // mean frame duration over the interval
	DrawsPerSec  float64
	DrawsInFrame int // draws recorded in the last frame of the interval
	HeapMB       float64
	GCCount      uint32
}

// Profiler tracks frame rate, frame time and draw counts, plus memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	drawCount      int
	lastDraws      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	last           Stats

	now  func() time.Time
	logf func(format string, args ...any)
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		now:            time.Now,
		logf:           log.Printf,
	}
}

// SetInterval changes how often stats are logged. Non-positive values are ignored.
//
// Parameters:
//   - d: the logging interval
func (p *Profiler) SetInterval(d time.Duration) {
	if d > 0 {
		p.updateInterval = d
	}
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - draws: the number of draw calls recorded in the frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(draws int) bool {
	p.frameCount++
	p.drawCount += draws
	p.lastDraws = draws

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)

	p.last = Stats{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		FrameTime:    elapsed / time.Duration(p.frameCount),
		DrawsPerSec:  float64(p.drawCount) / elapsed.Seconds(),
		DrawsInFrame: p.lastDraws,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		GCCount:      p.memStats.NumGC,
	}

	p.logf("[Profiler] FPS: %.2f | Frame: %.2f ms | Draws: %d/frame (%.0f/s) | Heap: %.2f MB | GC: %d",
		p.last.FPS, float64(p.last.FrameTime.Microseconds())/1000, p.last.DrawsInFrame,
		p.last.DrawsPerSec, p.last.HeapMB, p.last.GCCount)

	p.frameCount = 0
	p.drawCount = 0
	p.lastTime = currentTime
	return true
}

// Last returns the stats of the most recently logged interval.
//
// Returns:
//   - Stats: the last interval's summary, zero before the first log
func (p *Profiler) Last() Stats {
	return p.last
}
