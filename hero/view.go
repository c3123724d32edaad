// Package hero hosts a particle effect as a full-screen terminal section.
//
// The view owns the screen for its lifetime. Screen events are pumped by
// tcell on a separate goroutine into a channel; everything else, including
// event handling, happens on the frame loop goroutine.
package hero

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/particle-hero/audio"
	"github.com/lixenwraith/particle-hero/engine"
	"github.com/lixenwraith/particle-hero/render"
	"github.com/lixenwraith/particle-hero/status"
	"github.com/lixenwraith/particle-hero/vmath"
)

const eventBuffer = 256

// fpsSmoothing is the weight of the newest sample in the fps average
const fpsSmoothing = 0.1

// statsDim darkens the title ink for the stats line
const statsDim = 0.55

// View binds a screen, an effect and the overlay to a frame loop
type View struct {
	screen  tcell.Screen
	effect  Effect
	surface *render.Surface
	overlay *Overlay
	cfg     Config

	cue   audio.Player
	pacer engine.Pacer
	clock engine.TimeProvider
	log   *zap.Logger

	loop    *engine.Loop
	hovered Element
	onCrash func(any)

	stats     *status.Registry
	showStats bool
	lastFrame time.Time
	frames    *atomic.Int64
	overruns  *atomic.Int64
	particles *atomic.Int64
	active    *atomic.Int64
	fps       *status.AtomicFloat
}

// sized and activeCounter are optional effect capabilities reported on the stats line
type sized interface{ Len() int }

type activeCounter interface{ ActiveCount() int }

// Option configures a View
type Option func(*View)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(v *View) { v.log = l }
}

// WithCue plays chimes on morph transitions
func WithCue(p audio.Player) Option {
	return func(v *View) { v.cue = p }
}

// WithPacer replaces the frame ticker
func WithPacer(p engine.Pacer) Option {
	return func(v *View) { v.pacer = p }
}

// WithClock sets the clock used for frame accounting
func WithClock(c engine.TimeProvider) Option {
	return func(v *View) { v.clock = c }
}

// WithStatus publishes frame statistics into r
func WithStatus(r *status.Registry) Option {
	return func(v *View) { v.stats = r }
}

// WithCrashHandler is called with the recovered value when the frame loop panics
// Without a handler the panic propagates
func WithCrashHandler(fn func(any)) Option {
	return func(v *View) { v.onCrash = fn }
}

// NewView creates a view over an initialized screen
func NewView(screen tcell.Screen, effect Effect, cfg Config, opts ...Option) *View {
	v := &View{
		screen: screen,
		effect: effect,
		cfg:    cfg,
		cue:    audio.Nop{},
		clock:  engine.NewMonotonicTimeProvider(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.pacer == nil {
		v.pacer = engine.NewTickerPacer(engine.FrameInterval(cfg.FPS))
	}
	if v.stats == nil {
		v.stats = status.NewRegistry()
	}
	v.showStats = cfg.Stats
	v.frames = v.stats.Ints.Get("frames")
	v.overruns = v.stats.Ints.Get("overruns")
	v.particles = v.stats.Ints.Get("particles")
	v.active = v.stats.Ints.Get("active")
	v.fps = v.stats.Floats.Get("fps")

	cols, rows := screen.Size()
	v.surface = render.NewSurface(cols, rows, cfg.Metrics, cfg.Background, cfg.MinCoverage)
	v.overlay = NewOverlay(cols, rows)
	v.loop = engine.NewLoop(v.pacer,
		engine.WithClock(v.clock),
		engine.WithBudget(engine.FrameInterval(cfg.FPS)),
		engine.WithLogger(v.log.Named("loop")))
	return v
}

// Run drives the view until ctx is cancelled or the user quits
// The screen is left initialized; the caller owns Fini
func (v *View) Run(ctx context.Context) error {
	v.screen.EnableMouse(tcell.MouseMotionEvents)
	v.screen.EnableFocus()
	defer v.screen.DisableFocus()
	defer v.screen.DisableMouse()

	v.resize()

	events := make(chan tcell.Event, eventBuffer)
	quit := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v.screen.ChannelEvents(events, quit)
		return nil
	})
	g.Go(func() (err error) {
		defer close(quit)
		defer func() {
			if r := recover(); r != nil {
				if v.onCrash == nil {
					panic(r)
				}
				v.onCrash(r)
				err = fmt.Errorf("frame loop crashed: %v", r)
			}
		}()
		return v.loop.Run(gctx, func(now time.Time) error {
			return v.frame(now, events)
		})
	})

	err := g.Wait()
	v.log.Info("view stopped", zap.Uint64("frames", v.loop.Frames()), zap.Uint64("overruns", v.loop.Overruns()), zap.String("stats", v.stats.Line()))
	return err
}

// Stats exposes the live frame statistics
func (v *View) Stats() *status.Registry {
	return v.stats
}

// Loop exposes frame statistics
func (v *View) Loop() *engine.Loop {
	return v.loop
}

// frame applies pending input then paints one frame
func (v *View) frame(now time.Time, events <-chan tcell.Event) error {
	for pending := len(events); pending > 0; pending-- {
		ev, ok := <-events
		if !ok {
			return engine.ErrStop
		}
		if err := v.handle(ev); err != nil {
			return err
		}
	}

	v.effect.Tick(v.surface)
	v.surface.Flush(v.screen)
	if v.cfg.Overlay {
		v.overlay.Draw(v.screen, v.surface, v.hovered)
	}
	v.record(now)
	if v.showStats {
		v.drawStats()
	}
	v.screen.Show()
	return nil
}

// record publishes this frame into the stats registry
func (v *View) record(now time.Time) {
	if !v.lastFrame.IsZero() {
		if dt := now.Sub(v.lastFrame).Seconds(); dt > 0 {
			prev := v.fps.Get()
			if prev == 0 {
				v.fps.Set(1 / dt)
			} else {
				v.fps.Set(vmath.Approach(prev, 1/dt, fpsSmoothing))
			}
		}
	}
	v.lastFrame = now

	v.frames.Store(int64(v.loop.Frames()) + 1)
	v.overruns.Store(int64(v.loop.Overruns()))
	if e, ok := v.effect.(sized); ok {
		v.particles.Store(int64(e.Len()))
	}
	if e, ok := v.effect.(activeCounter); ok {
		v.active.Store(int64(e.ActiveCount()))
	}
}

// drawStats writes the stats line over the bottom row
func (v *View) drawStats() {
	cols, rows := v.screen.Size()
	if rows == 0 {
		return
	}
	style := tcell.StyleDefault.
		Foreground(render.Scale(titleInk, statsDim).TCell()).
		Background(v.cfg.Background.TCell())
	col := 0
	for _, r := range " " + v.stats.Line() {
		if col >= cols {
			break
		}
		v.screen.SetContent(col, rows-1, r, nil, style)
		col++
	}
}

func (v *View) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return engine.ErrStop
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return engine.ErrStop
			case ' ':
				v.toggle()
			case 's', 'S':
				v.showStats = !v.showStats
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		v.effect.SetPointer(v.surface.ToLogical(col, row))
		v.hover(v.overlay.Hit(col, row))

	case *tcell.EventFocus:
		if !ev.Focused {
			v.effect.ClearPointer()
			v.hover(ElementNone)
		}

	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}
	return nil
}

// hover applies the overlay triggers: entering the title forms the shape,
// leaving every element dissolves it
func (v *View) hover(el Element) {
	prev := v.hovered
	v.hovered = el
	if el == prev {
		return
	}
	switch el {
	case ElementTitle:
		v.activate()
	case ElementNone:
		v.deactivate()
	}
}

func (v *View) activate() bool {
	if !v.effect.Activate() {
		return false
	}
	v.cue.MorphIn()
	v.log.Debug("effect activated")
	return true
}

func (v *View) deactivate() bool {
	if !v.effect.Deactivate() {
		return false
	}
	v.cue.MorphOut()
	v.log.Debug("effect deactivated")
	return true
}

func (v *View) toggle() {
	if !v.activate() {
		v.deactivate()
	}
}

func (v *View) resize() {
	cols, rows := v.screen.Size()
	v.surface.Resize(cols, rows)
	v.overlay.Layout(cols, rows)
	w, h := v.surface.LogicalSize()
	v.effect.Build(w, h)
	v.log.Debug("resized", zap.Int("cols", cols), zap.Int("rows", rows), zap.Int("width", w), zap.Int("height", h))
}
