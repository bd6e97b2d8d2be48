package transition

import "fmt"

// State is the coordinator's lifecycle position. Transitions only move
// forward: Idle, Presenting, Presented, Dismissing, Terminal.
type State int

const (
	Idle State = iota
	Presenting
	Presented
	Dismissing
	Terminal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Presenting:
		return "presenting"
	case Presented:
		return "presented"
	case Dismissing:
		return "dismissing"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ReasonKind is why a dismissal was requested.
type ReasonKind int

const (
	ReasonActionSelected ReasonKind = iota
	ReasonBackdropTapped
	ReasonSwipeGesture
)

func (k ReasonKind) String() string {
	switch k {
	case ReasonActionSelected:
		return "action"
	case ReasonBackdropTapped:
		return "backdrop"
	case ReasonSwipeGesture:
		return "swipe"
	default:
		return fmt.Sprintf("reason(%d)", int(k))
	}
}

// Reason is a dismissal request. Index is only meaningful for
// ReasonActionSelected.
type Reason struct {
	Kind  ReasonKind
	Index int
}

// ActionSelected dismisses on behalf of the action at index i.
func ActionSelected(i int) Reason {
	return Reason{Kind: ReasonActionSelected, Index: i}
}

var (
	BackdropTapped = Reason{Kind: ReasonBackdropTapped}
	SwipeGesture   = Reason{Kind: ReasonSwipeGesture}
)

func (r Reason) String() string {
	if r.Kind == ReasonActionSelected {
		return fmt.Sprintf("action[%d]", r.Index)
	}
	return r.Kind.String()
}

// Outcome is how a dismissal request ended. None of these are errors.
type Outcome int

const (
	// Dismissed: the surface left the screen and the coordinator is terminal.
	Dismissed Outcome = iota
	// GuardRejected: the action's guard vetoed; the surface stays presented.
	GuardRejected
	// Ignored: the request does not apply (disabled action, backdrop not
	// dismissible, swipe on a strategy without swipe support).
	Ignored
)

func (o Outcome) String() string {
	switch o {
	case Dismissed:
		return "dismissed"
	case GuardRejected:
		return "guard-rejected"
	case Ignored:
		return "ignored"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}
