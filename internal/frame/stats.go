package frame

import (
	"time"

	"github.com/loov/hrtime"

	"github.com/llap/llap/internal/diag"
)

// Stats counts presented frames and logs the frame rate once per interval.
// A zero interval only counts.
type Stats struct {
	log      *diag.Logger
	interval time.Duration
	now      func() time.Duration

	frames       uint64
	windowStart  time.Duration
	windowFrames uint64
}

func NewStats(log *diag.Logger, interval time.Duration) *Stats {
	return newStats(log, interval, hrtime.Now)
}

func newStats(log *diag.Logger, interval time.Duration, now func() time.Duration) *Stats {
	return &Stats{
		log:         log,
		interval:    interval,
		now:         now,
		windowStart: now(),
	}
}

func (s *Stats) Frames() uint64 {
	return s.frames
}

func (s *Stats) Tick() {
	s.frames++
	s.windowFrames++

	if s.interval <= 0 {
		return
	}

	elapsed := s.now() - s.windowStart
	if elapsed < s.interval {
		return
	}

	fps := float64(s.windowFrames) / elapsed.Seconds()
	s.log.Messagef("%d frames in %s (%.1f fps)", s.windowFrames, elapsed.Round(time.Millisecond), fps)
	s.windowStart += elapsed
	s.windowFrames = 0
}
