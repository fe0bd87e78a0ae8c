package frame

import (
	"github.com/cockroachdb/errors"
)

// Hooks are the caller's extension points around the frame loop. Nil hooks
// are skipped.
type Hooks struct {
	OnInit    func() error
	OnLoop    func(frame uint64) error
	OnCleanup func() error
}

// Presenter is what the loop drives once per iteration.
type Presenter interface {
	// ShouldClose pumps pending window events and reports whether the
	// window asked to close.
	ShouldClose() bool
	// DrawFrame acquires an image, submits its recorded commands using the
	// given slot's semaphores, and presents it.
	DrawFrame(slot int) error
	// WaitIdle blocks until all submitted work has finished.
	WaitIdle() error
}

type Loop struct {
	slots *Slots
	stats *Stats
}

func NewLoop(framesInFlight int, stats *Stats) *Loop {
	return &Loop{
		slots: NewSlots(framesInFlight),
		stats: stats,
	}
}

func (l *Loop) Slots() *Slots {
	return l.slots
}

// Run calls OnInit, draws frames until the presenter reports the window is
// closing, then waits for the device to go idle and calls OnCleanup. Once
// OnInit has succeeded, the idle wait and OnCleanup are always attempted.
func (l *Loop) Run(p Presenter, hooks Hooks) (err error) {
	if hooks.OnInit != nil {
		if err := hooks.OnInit(); err != nil {
			return errors.Wrap(err, "init hook")
		}
	}

	defer func() {
		if idleErr := p.WaitIdle(); idleErr != nil {
			err = errors.CombineErrors(err, errors.Wrap(idleErr, "wait idle"))
		}
		if hooks.OnCleanup != nil {
			if cleanupErr := hooks.OnCleanup(); cleanupErr != nil {
				err = errors.CombineErrors(err, errors.Wrap(cleanupErr, "cleanup hook"))
			}
		}
	}()

	var frame uint64
	for !p.ShouldClose() {
		if err := p.DrawFrame(l.slots.Current()); err != nil {
			return errors.Wrapf(err, "frame %d", frame)
		}

		if hooks.OnLoop != nil {
			if err := hooks.OnLoop(frame); err != nil {
				return errors.Wrapf(err, "loop hook, frame %d", frame)
			}
		}

		l.slots.Advance()
		if l.stats != nil {
			l.stats.Tick()
		}
		frame++
	}

	return nil
}
