package game

import (
	"time"
)

// FixedLoop drives the simulation at a constant timestep from the
// host's per-frame callback. Each frame it drains an accumulator of
// unspent wall-clock time in TimeStep increments, calling update for
// each, and reports the leftover fraction as the interpolation alpha
// for rendering.
type FixedLoop struct {
	update func(dt float64)

	running     bool
	accumulator float64
	alpha       float64
	lastTime    time.Time

	// now is swappable for tests.
	now func() time.Time
}

// NewFixedLoop creates a stopped loop around an update callback.
func NewFixedLoop(update func(dt float64)) *FixedLoop {
	return &FixedLoop{
		update: update,
		now:    time.Now,
	}
}

// Start begins running. Starting an already-running loop is a no-op.
func (l *FixedLoop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.lastTime = l.now()
}

// Stop cancels future frames. The current frame, if in progress, runs
// to completion. Stopping a stopped loop is a no-op.
func (l *FixedLoop) Stop() {
	l.running = false
}

// Running reports whether the loop is active.
func (l *FixedLoop) Running() bool { return l.running }

// RunFrame is called once per rendered frame by the host. It measures
// elapsed wall time (clamped to MaxFrameTime so a stalled host cannot
// trigger runaway catch-up), runs zero or more fixed updates, and
// returns the interpolation alpha in [0, 1).
func (l *FixedLoop) RunFrame() float64 {
	if !l.running {
		return l.alpha
	}

	now := l.now()
	frameTime := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	if frameTime > MaxFrameTime {
		frameTime = MaxFrameTime
	}

	l.accumulator += frameTime
	for l.accumulator >= TimeStep {
		l.update(TimeStep)
		l.accumulator -= TimeStep
	}

	l.alpha = l.accumulator / TimeStep
	return l.alpha
}

// Alpha returns the last computed interpolation fraction.
func (l *FixedLoop) Alpha() float64 { return l.alpha }
