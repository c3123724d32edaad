package engine

import (
	"sync"
	"time"
)

// DefaultFPS approximates a display refresh
const DefaultFPS = 60

// Pacer delivers one signal per frame
type Pacer interface {
	C() <-chan time.Time
	Stop()
}

// FrameInterval converts a frame rate to a ticker period, non-positive rates use DefaultFPS
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// TickerPacer paces frames with a wall-clock ticker
type TickerPacer struct {
	ticker *time.Ticker
}

// NewTickerPacer starts a ticker with period d
func NewTickerPacer(d time.Duration) *TickerPacer {
	return &TickerPacer{ticker: time.NewTicker(d)}
}

// C returns the ticker channel
func (p *TickerPacer) C() <-chan time.Time {
	return p.ticker.C
}

// Stop stops the ticker
func (p *TickerPacer) Stop() {
	p.ticker.Stop()
}

// ManualPacer emits a frame only when Fire is called
// Fire blocks until the loop has taken the signal, so a second Fire
// returning means the previous frame finished
type ManualPacer struct {
	ch       chan time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewManualPacer creates a pacer driven by Fire
func NewManualPacer() *ManualPacer {
	return &ManualPacer{
		ch:   make(chan time.Time),
		done: make(chan struct{}),
	}
}

// C returns the frame channel
func (p *ManualPacer) C() <-chan time.Time {
	return p.ch
}

// Fire delivers one frame stamped now; false once the pacer is stopped
func (p *ManualPacer) Fire(now time.Time) bool {
	select {
	case p.ch <- now:
		return true
	case <-p.done:
		return false
	}
}

// Stop releases pending and future Fire calls
func (p *ManualPacer) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}
