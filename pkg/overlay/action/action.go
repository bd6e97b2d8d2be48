// Package action describes the selectable actions shown inside an
// overlay surface and lets presentation code observe their enabled flag.
package action

import (
	"fmt"
	"slices"
	"strings"
)

// Category controls both display order and item height.
// Order is Positive < Negative < Neutral < PositiveReversed.
type Category int

const (
	Positive Category = iota
	Negative
	Neutral
	PositiveReversed
)

func (c Category) String() string {
	switch c {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Neutral:
		return "neutral"
	case PositiveReversed:
		return "positive-reversed"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	return c >= Positive && c <= PositiveReversed
}

// ParseCategory accepts the String() form, case-insensitive.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return Positive, nil
	case "negative":
		return Negative, nil
	case "neutral":
		return Neutral, nil
	case "positive-reversed", "positivereversed", "reversed":
		return PositiveReversed, nil
	}
	return 0, fmt.Errorf("unknown action category %q", s)
}

// ImageHandle is an opaque reference to an icon owned by the caller.
type ImageHandle string

// Action is one selectable entry. Guard and completion are plain
// callbacks; they never own the surface that displays the action.
type Action struct {
	title    string
	category Category
	icon     ImageHandle
	enabled  bool

	guard     func() bool
	completed func()

	observers observerList
}

// Option configures an Action at construction.
type Option func(*Action)

// WithIcon attaches an icon handle.
func WithIcon(icon ImageHandle) Option {
	return func(a *Action) { a.icon = icon }
}

// WithGuard sets the predicate consulted before an action-triggered
// dismissal. Returning false keeps the surface on screen.
func WithGuard(guard func() bool) Option {
	return func(a *Action) { a.guard = guard }
}

// WithCompletion sets the callback run after the surface has fully
// dismissed.
func WithCompletion(fn func()) Option {
	return func(a *Action) { a.completed = fn }
}

// Disabled creates the action in the disabled state.
func Disabled() Option {
	return func(a *Action) { a.enabled = false }
}

// New creates an enabled action.
func New(title string, category Category, opts ...Option) *Action {
	a := &Action{title: title, category: category, enabled: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Action) Title() string        { return a.title }
func (a *Action) Category() Category   { return a.category }
func (a *Action) Icon() ImageHandle    { return a.icon }
func (a *Action) HasIcon() bool        { return a.icon != "" }
func (a *Action) Enabled() bool        { return a.enabled }
func (a *Action) SubscriberCount() int { return a.observers.len() }

// SetEnabled updates the flag and synchronously notifies subscribers.
// Setting the current value is a no-op.
func (a *Action) SetEnabled(enabled bool) {
	if a.enabled == enabled {
		return
	}
	a.enabled = enabled
	a.observers.notify(enabled)
}

// Subscribe registers fn for enabled changes. The caller owns the
// returned handle and must cancel it on its own teardown.
func (a *Action) Subscribe(fn func(enabled bool)) *Subscription {
	return a.observers.add(fn)
}

// Guard evaluates the guard. A missing guard always allows dismissal.
func (a *Action) Guard() bool {
	if a.guard == nil {
		return true
	}
	return a.guard()
}

// Complete runs the completion callback, if any.
func (a *Action) Complete() {
	if a.completed != nil {
		a.completed()
	}
}

func (a *Action) String() string {
	return fmt.Sprintf("%s(%s)", a.title, a.category)
}

// Sort returns a copy of actions ordered by category. Actions with the
// same category keep their relative order.
func Sort(actions []*Action) []*Action {
	sorted := slices.Clone(actions)
	slices.SortStableFunc(sorted, func(a, b *Action) int {
		return int(a.category) - int(b.category)
	})
	return sorted
}
