// Package transition sequences the presentation of one overlay surface:
// entrance timeline, backdrop fade, interactivity gating, dismissal and
// teardown.
//
// A Coordinator is single use. It presents exactly one surface, dismisses
// it once and then stays Terminal. All work happens on the scheduler's
// thread; Present and Dismiss return immediately with futures that settle
// on a later Tick.
//
//	c := transition.New(sched, animation.Default(animation.Dialog))
//	presented, err := c.Present(surface, container)
//	...
//	done, err := c.Dismiss(transition.ActionSelected(0))
package transition

import (
	"io"
	"log/slog"

	"github.com/marcus/overlay/internal/geom"
	"github.com/marcus/overlay/pkg/overlay/action"
	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/overlay/dimming"
	"github.com/marcus/overlay/pkg/overlay/scheduler"
)

// Presentable is what a coordinator presents. alert.Surface implements it.
type Presentable interface {
	// Attach claims the surface for one presentation. It fails if another
	// coordinator holds it or it was released.
	Attach() error
	IntrinsicSize(width float64) geom.Size
	ActionCount() int
	Action(i int) *action.Action
	SetInteractive(interactive bool)
	BackdropDismissible() bool
	// Release tears the surface down. It is called once, before any
	// action completion runs.
	Release()
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithBackdropDismiss controls whether a backdrop tap may dismiss. The
// surface can still opt out through BackdropDismissible. Default true.
func WithBackdropDismiss(enabled bool) Option {
	return func(c *Coordinator) { c.backdropDismiss = enabled }
}

// WithDimming sets the backdrop configuration.
func WithDimming(cfg dimming.Config) Option {
	return func(c *Coordinator) { c.dimCfg = cfg }
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// WithFrameObserver is called with every frame the surface moves through.
func WithFrameObserver(fn func(animation.Frame)) Option {
	return func(c *Coordinator) { c.onFrame = fn }
}

type pendingDismiss struct {
	reason  Reason
	resolve scheduler.Resolver[Outcome]
}

// Coordinator drives one present/dismiss cycle.
type Coordinator struct {
	sched           *scheduler.Scheduler
	strategy        animation.Strategy
	dimCfg          dimming.Config
	backdropDismiss bool
	log             *slog.Logger
	onFrame         func(animation.Frame)

	state     State
	surface   Presentable
	container geom.Rect
	intrinsic geom.Size
	backdrop  *dimming.Controller
	frame     animation.Frame
	queued    *pendingDismiss

	tapFuture *scheduler.Future[Outcome]
	tapErr    error
}

// New creates an Idle coordinator for strategy.
func New(sched *scheduler.Scheduler, strategy animation.Strategy, opts ...Option) *Coordinator {
	c := &Coordinator{
		sched:           sched,
		strategy:        strategy,
		dimCfg:          dimming.DefaultConfig(),
		backdropDismiss: true,
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("strategy", strategy.Kind().String())
	return c
}

// State returns the lifecycle state.
func (c *Coordinator) State() State { return c.state }

// Strategy returns the motion strategy.
func (c *Coordinator) Strategy() animation.Strategy { return c.strategy }

// Frame returns the surface's latest frame.
func (c *Coordinator) Frame() animation.Frame { return c.frame }

// Container returns the bounds passed to Present or the latest Resize.
func (c *Coordinator) Container() geom.Rect { return c.container }

// Resize moves the presentation into new container bounds. The surface is
// laid out again at the width the strategy gives the new container. A
// Presented surface snaps to its new resting frame; a running timeline
// keeps sampling the bounds it started with and the entrance snaps when
// it ends.
func (c *Coordinator) Resize(container geom.Rect) {
	if container == c.container {
		return
	}
	c.container = container
	if c.backdrop != nil {
		c.backdrop.SetBounds(container)
	}
	if c.surface == nil {
		return
	}
	c.intrinsic = c.surface.IntrinsicSize(c.layoutWidth(container))
	c.log.Debug("resized", "container", container.String(), "state", c.state.String())
	if c.state == Presented {
		c.setFrame(c.restingFrame())
	}
}

// layoutWidth is the width the surface is laid out at. Strategies size
// the resting frame from the container alone, so a timeline built with
// any intrinsic size yields it.
func (c *Coordinator) layoutWidth(container geom.Rect) float64 {
	return c.strategy.EntranceTimeline(container, container.Size).To.Rect.Size.W
}

func (c *Coordinator) restingFrame() animation.Frame {
	return c.strategy.EntranceTimeline(c.container, c.intrinsic).To
}

// Interactive reports whether the surface accepts hit-testing. Only a
// Presented surface is interactive.
func (c *Coordinator) Interactive() bool { return c.state == Presented }

// BackdropAlpha is the backdrop opacity, 0 once torn down.
func (c *Coordinator) BackdropAlpha() float64 {
	if c.backdrop == nil {
		return 0
	}
	return c.backdrop.Alpha()
}

// BackdropDismissible reports whether a backdrop tap would dismiss.
func (c *Coordinator) BackdropDismissible() bool {
	return c.backdropDismiss && c.surface != nil && c.surface.BackdropDismissible()
}

// Present starts the entrance. The surface becomes Presented and
// interactive when the entrance timeline completes; the future resolves
// once the backdrop fade-in has finished as well. On error nothing is
// shown and the coordinator stays Idle.
func (c *Coordinator) Present(surface Presentable, container geom.Rect) (*scheduler.Future[struct{}], error) {
	if c.state != Idle {
		return nil, &InvalidStateError{Op: "present", State: c.state}
	}
	if surface == nil {
		return nil, ErrNilSurface
	}
	if err := surface.Attach(); err != nil {
		return nil, err
	}

	c.surface = surface
	c.container = container
	c.intrinsic = surface.IntrinsicSize(c.layoutWidth(container))
	c.state = Presenting
	surface.SetInteractive(false)

	c.backdrop = dimming.New(c.sched, container, c.dimCfg)
	c.backdrop.SetTapHandler(func() {
		c.tapFuture, c.tapErr = c.Dismiss(BackdropTapped)
	})
	c.backdrop.EnableTap(c.BackdropDismissible())

	f, done := scheduler.NewPromise[struct{}]()
	entered, enteredDone := scheduler.NewPromise[struct{}]()
	tl := c.strategy.EntranceTimeline(container, c.intrinsic)
	c.setFrame(tl.From)

	c.log.Debug("presenting", "container", container.String(), "frame", tl.To.Rect.String(), "duration", tl.Duration)
	faded := c.backdrop.FadeIn()
	c.sched.Animate(tl.Duration,
		func(p float64) { c.setFrame(tl.Sample(p)) },
		func() { c.didPresent(enteredDone) },
	)
	afterBoth(entered, faded, func() { done.Resolve(struct{}{}) })
	return f, nil
}

func (c *Coordinator) didPresent(entered scheduler.Resolver[struct{}]) {
	c.state = Presented
	if rest := c.restingFrame(); rest != c.frame {
		// The container changed during the entrance.
		c.setFrame(rest)
	}
	c.surface.SetInteractive(true)
	c.log.Debug("presented")
	entered.Resolve(struct{}{})

	if c.queued == nil {
		return
	}
	q := c.queued
	c.queued = nil
	if c.state != Presented {
		// A presented callback already started a dismissal.
		c.log.Debug("queued dismissal superseded", "reason", q.reason.String())
		q.resolve.Resolve(Ignored)
		return
	}
	c.log.Debug("applying queued dismissal", "reason", q.reason.String())
	c.apply(q.reason, q.resolve)
}

// Dismiss requests dismissal. While Presenting the request is queued and
// applied once the entrance completes; only one request may be queued.
// Outside Presenting and Presented it fails with *InvalidStateError.
func (c *Coordinator) Dismiss(reason Reason) (*scheduler.Future[Outcome], error) {
	switch c.state {
	case Presenting:
		if c.queued != nil {
			return nil, &InvalidStateError{Op: "dismiss", State: c.state, Detail: "a dismissal is already queued"}
		}
		if err := c.checkReason(reason); err != nil {
			return nil, err
		}
		f, r := scheduler.NewPromise[Outcome]()
		c.queued = &pendingDismiss{reason: reason, resolve: r}
		c.log.Debug("dismissal queued", "reason", reason.String())
		return f, nil

	case Presented:
		if err := c.checkReason(reason); err != nil {
			return nil, err
		}
		f, r := scheduler.NewPromise[Outcome]()
		c.apply(reason, r)
		return f, nil

	default:
		return nil, &InvalidStateError{Op: "dismiss", State: c.state}
	}
}

// TapBackdrop delivers a tap on the backdrop. The tap only reaches
// Dismiss when the backdrop is dismissible; otherwise the outcome is
// Ignored.
func (c *Coordinator) TapBackdrop() (*scheduler.Future[Outcome], error) {
	if c.state != Presenting && c.state != Presented {
		return nil, &InvalidStateError{Op: "tap backdrop", State: c.state}
	}
	c.tapFuture, c.tapErr = nil, nil
	if !c.backdrop.Tap() {
		return scheduler.Resolved(Ignored), nil
	}
	return c.tapFuture, c.tapErr
}

// Swipe delivers a completed downward swipe on the surface.
func (c *Coordinator) Swipe() (*scheduler.Future[Outcome], error) {
	return c.Dismiss(SwipeGesture)
}

func (c *Coordinator) checkReason(reason Reason) error {
	if reason.Kind != ReasonActionSelected {
		return nil
	}
	if n := c.surface.ActionCount(); reason.Index < 0 || reason.Index >= n {
		return &ActionIndexError{Index: reason.Index, Count: n}
	}
	return nil
}

// apply runs with the coordinator Presented. Guards run here and nowhere
// else, so they never see a Presenting or Dismissing surface.
func (c *Coordinator) apply(reason Reason, resolve scheduler.Resolver[Outcome]) {
	switch reason.Kind {
	case ReasonActionSelected:
		a := c.surface.Action(reason.Index)
		if !a.Enabled() {
			c.log.Debug("dismissal ignored", "reason", reason.String(), "cause", "action disabled")
			resolve.Resolve(Ignored)
			return
		}
		if !a.Guard() {
			c.log.Debug("dismissal vetoed by guard", "action", a.Title())
			resolve.Resolve(GuardRejected)
			return
		}
		if c.state != Presented {
			// The guard started a dismissal of its own.
			c.log.Debug("dismissal superseded", "reason", reason.String(), "state", c.state.String())
			resolve.Resolve(Ignored)
			return
		}
	case ReasonBackdropTapped:
		if !c.BackdropDismissible() {
			c.log.Debug("dismissal ignored", "reason", reason.String(), "cause", "backdrop not dismissible")
			resolve.Resolve(Ignored)
			return
		}
	case ReasonSwipeGesture:
		if !c.strategy.SwipeDismissible() {
			c.log.Debug("dismissal ignored", "reason", reason.String(), "cause", "strategy has no swipe")
			resolve.Resolve(Ignored)
			return
		}
	}
	c.startDismiss(reason, resolve)
}

func (c *Coordinator) startDismiss(reason Reason, resolve scheduler.Resolver[Outcome]) {
	var selected *action.Action
	if reason.Kind == ReasonActionSelected {
		selected = c.surface.Action(reason.Index)
	}

	c.state = Dismissing
	c.surface.SetInteractive(false)
	c.backdrop.EnableTap(false)
	faded := c.backdrop.FadeOut()

	exited, exitedDone := scheduler.NewPromise[struct{}]()
	tl := c.strategy.ExitTimeline(c.container, c.intrinsic)
	c.log.Debug("dismissing", "reason", reason.String(), "duration", tl.Duration)
	c.sched.Animate(tl.Duration,
		func(p float64) { c.setFrame(tl.Sample(p)) },
		func() { c.didExit(reason, exitedDone) },
	)
	afterBoth(exited, faded, func() { c.teardown(selected, resolve) })
}

// didExit removes the surface and enters Terminal when the exit timeline
// ends. The backdrop may still be fading out.
func (c *Coordinator) didExit(reason Reason, exited scheduler.Resolver[struct{}]) {
	c.surface.Release()
	c.surface = nil
	c.state = Terminal
	c.log.Debug("dismissed", "reason", reason.String())
	exited.Resolve(struct{}{})
}

// teardown runs once both the exit timeline and the backdrop fade-out
// have finished. The backdrop goes first, then the selected action's
// completion, then the outcome.
func (c *Coordinator) teardown(selected *action.Action, resolve scheduler.Resolver[Outcome]) {
	c.backdrop.Destroy()
	c.backdrop = nil
	c.log.Debug("torn down")

	if selected != nil {
		selected.Complete()
	}
	resolve.Resolve(Dismissed)
}

// afterBoth runs fn once a and b have settled, in whichever order.
func afterBoth(a, b *scheduler.Future[struct{}], fn func()) {
	a.OnComplete(func(struct{}, error) {
		b.OnComplete(func(struct{}, error) { fn() })
	})
}

func (c *Coordinator) setFrame(f animation.Frame) {
	c.frame = f
	if c.onFrame != nil {
		c.onFrame(f)
	}
}
