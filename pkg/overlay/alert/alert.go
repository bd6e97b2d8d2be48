// Package alert composes a caller-supplied content surface with a list
// of actions into something a transition.Coordinator can present.
package alert

import (
	"errors"

	"github.com/marcus/overlay/internal/geom"
	"github.com/marcus/overlay/pkg/overlay/action"
	"github.com/marcus/overlay/pkg/overlay/layout"
	"github.com/marcus/overlay/pkg/overlay/scheduler"
	"github.com/marcus/overlay/pkg/overlay/transition"
)

var (
	// ErrEmptyActionList: an alert needs at least one action.
	ErrEmptyActionList = errors.New("alert: action list is empty")
	ErrNilContent      = errors.New("alert: nil content")
	ErrNilAction       = errors.New("alert: nil action")
	ErrAlreadyAttached = errors.New("alert: surface is already being presented")
	ErrReleased        = errors.New("alert: surface was released")
)

// Content is the opaque body above the actions. It sizes itself.
type Content interface {
	Size(width float64) geom.Size
}

// ContentFunc adapts a function to Content.
type ContentFunc func(width float64) geom.Size

func (f ContentFunc) Size(width float64) geom.Size { return f(width) }

// Option configures a Surface.
type Option func(*Surface)

// WithMetrics sets the action layout metrics.
func WithMetrics(m layout.Metrics) Option {
	return func(s *Surface) { s.engine = layout.New(m) }
}

// WithoutBackdropDismiss marks the action set as one that must be
// answered: a backdrop tap never dismisses.
func WithoutBackdropDismiss() Option {
	return func(s *Surface) { s.backdropDismiss = false }
}

// WithEnabledObserver is notified, synchronously, when the action at
// index (in display order) changes its enabled flag.
func WithEnabledObserver(fn func(index int, enabled bool)) Option {
	return func(s *Surface) { s.onEnabled = fn }
}

// Surface is an alert card or action sheet body. It exclusively owns its
// action list until Release.
type Surface struct {
	content         Content
	actions         []*action.Action
	engine          layout.Engine
	backdropDismiss bool
	onEnabled       func(int, bool)

	subs        action.Subscriptions
	cached      *layout.Result
	interactive bool
	attached    bool
	released    bool
}

// New builds a surface. Actions are sorted by category once, here.
func New(content Content, actions []*action.Action, opts ...Option) (*Surface, error) {
	if content == nil {
		return nil, ErrNilContent
	}
	if len(actions) == 0 {
		return nil, ErrEmptyActionList
	}
	for _, a := range actions {
		if a == nil {
			return nil, ErrNilAction
		}
	}

	s := &Surface{
		content:         content,
		actions:         action.Sort(actions),
		engine:          layout.New(layout.DefaultMetrics()),
		backdropDismiss: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	for i, a := range s.actions {
		s.subs.Add(a.Subscribe(func(enabled bool) {
			if s.onEnabled != nil {
				s.onEnabled(i, enabled)
			}
		}))
	}
	return s, nil
}

// Actions returns the sorted actions. Empty after Release.
func (s *Surface) Actions() []*action.Action { return s.actions }

func (s *Surface) ActionCount() int { return len(s.actions) }

// Action returns the action at index i in display order, or nil.
func (s *Surface) Action(i int) *action.Action {
	if i < 0 || i >= len(s.actions) {
		return nil
	}
	return s.actions[i]
}

func (s *Surface) Content() Content { return s.content }

func (s *Surface) BackdropDismissible() bool { return s.backdropDismiss }

func (s *Surface) Interactive() bool { return s.interactive }

func (s *Surface) SetInteractive(interactive bool) { s.interactive = interactive }

func (s *Surface) Released() bool { return s.released }

// Attach claims the surface for a single coordinator.
func (s *Surface) Attach() error {
	if s.released {
		return ErrReleased
	}
	if s.attached {
		return ErrAlreadyAttached
	}
	s.attached = true
	return nil
}

// Layout returns the action layout for width, recomputing only when the
// width changed since the last call.
func (s *Surface) Layout(width float64) layout.Result {
	if s.cached != nil && s.cached.Width == width {
		return *s.cached
	}
	res := s.engine.Layout(s.actions, width)
	s.cached = &res
	return res
}

// IntrinsicSize is the content height plus the action block height.
func (s *Surface) IntrinsicSize(width float64) geom.Size {
	content := s.content.Size(width)
	return geom.Size{W: width, H: content.H + s.Layout(width).Height}
}

// ContentFrame is where the content sits inside a surface frame.
func (s *Surface) ContentFrame(frame geom.Rect) geom.Rect {
	h := s.content.Size(frame.Size.W).H
	return geom.R(frame.MinX(), frame.MinY(), frame.Size.W, h)
}

// ActionFrames maps the action layout into container coordinates for a
// surface occupying frame.
func (s *Surface) ActionFrames(frame geom.Rect) []geom.Rect {
	top := s.content.Size(frame.Size.W).H
	res := s.Layout(frame.Size.W)
	out := make([]geom.Rect, len(res.Frames))
	for i, r := range res.Frames {
		out[i] = r.Offset(frame.MinX(), frame.MinY()+top)
	}
	return out
}

// ActionAt hit-tests p against the actions of a surface occupying frame.
// Nothing is hit unless the surface is interactive and the action enabled.
func (s *Surface) ActionAt(frame geom.Rect, p geom.Point) (int, bool) {
	if !s.interactive {
		return -1, false
	}
	for i, r := range s.ActionFrames(frame) {
		if r.Contains(p) && s.actions[i].Enabled() {
			return i, true
		}
	}
	return -1, false
}

// Present hands the surface to c for one presentation cycle.
func (s *Surface) Present(c *transition.Coordinator, container geom.Rect) (*scheduler.Future[struct{}], error) {
	return c.Present(s, container)
}

// Release cancels every enabled-flag subscription and drops the action
// list. It is safe to call more than once.
func (s *Surface) Release() {
	if s.released {
		return
	}
	s.subs.CancelAll()
	s.actions = nil
	s.cached = nil
	s.interactive = false
	s.attached = false
	s.released = true
}
