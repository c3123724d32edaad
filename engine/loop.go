package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrStop ends a loop cleanly when returned from a tick
var ErrStop = errors.New("loop stopped")

// TickFunc advances and paints one frame
type TickFunc func(now time.Time) error

// Loop calls a tick once per pacer signal on a single goroutine
type Loop struct {
	pacer  Pacer
	clock  TimeProvider
	budget time.Duration
	log    *zap.Logger

	frames   atomic.Uint64
	overruns atomic.Uint64
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithClock sets the clock used to measure frame cost
func WithClock(c TimeProvider) LoopOption {
	return func(l *Loop) { l.clock = c }
}

// WithBudget sets the per-frame duration above which a frame counts as overrun
// Zero disables overrun tracking
func WithBudget(d time.Duration) LoopOption {
	return func(l *Loop) { l.budget = d }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) LoopOption {
	return func(l *Loop) { l.log = log }
}

// NewLoop creates a loop over p; the loop owns p and stops it when Run returns
func NewLoop(p Pacer, opts ...LoopOption) *Loop {
	l := &Loop{
		pacer: p,
		clock: NewMonotonicTimeProvider(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run blocks until ctx is done or tick returns an error
// ErrStop and context cancellation return nil
func (l *Loop) Run(ctx context.Context, tick TickFunc) error {
	defer l.pacer.Stop()

	for {
		select {
		case <-ctx.Done():
			l.log.Debug("loop done", zap.Uint64("frames", l.frames.Load()), zap.Uint64("overruns", l.overruns.Load()))
			return nil
		case <-l.pacer.C():
		}

		start := l.clock.Now()
		err := tick(start)
		frame := l.frames.Add(1)

		if l.budget > 0 {
			if cost := l.clock.Now().Sub(start); cost > l.budget {
				l.overruns.Add(1)
				l.log.Debug("frame overrun",
					zap.Uint64("frame", frame),
					zap.Duration("cost", cost),
					zap.Duration("budget", l.budget))
			}
		}

		if err != nil {
			if errors.Is(err, ErrStop) {
				l.log.Debug("loop stopped by tick", zap.Uint64("frames", frame))
				return nil
			}
			return err
		}
	}
}

// Frames returns the number of ticks run
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Overruns returns the number of ticks that exceeded the budget
func (l *Loop) Overruns() uint64 {
	return l.overruns.Load()
}
