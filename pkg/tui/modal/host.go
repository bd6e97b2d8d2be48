package modal

import (
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/marcus/overlay/internal/geom"
	"github.com/marcus/overlay/pkg/overlay/action"
	"github.com/marcus/overlay/pkg/overlay/alert"
	"github.com/marcus/overlay/pkg/overlay/animation"
	"github.com/marcus/overlay/pkg/overlay/dimming"
	"github.com/marcus/overlay/pkg/overlay/layout"
	"github.com/marcus/overlay/pkg/overlay/scheduler"
	"github.com/marcus/overlay/pkg/overlay/transition"
	"github.com/marcus/overlay/pkg/tui/mouse"
)

// DefaultFrameInterval drives animations at 60 fps.
const DefaultFrameInterval = time.Second / 60

// Hit region IDs.
const (
	regionBackdrop = "backdrop"
	regionSurface  = "surface"
	regionAction   = "action"
)

var hostSeq atomic.Uint64

// FrameMsg advances a host's animations by one frame.
type FrameMsg struct {
	id uint64
}

// PresentedMsg is sent once the entrance finishes.
type PresentedMsg struct{}

// OutcomeMsg reports the result of a dismissal request. A request with
// Outcome Dismissed is the last message a host sends.
type OutcomeMsg struct {
	Reason  transition.Reason
	Outcome transition.Outcome
}

// KeyMap is the host's keyboard bindings.
type KeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Select key.Binding
	Cancel key.Binding
	Erase  key.Binding
}

// DefaultKeyMap returns arrow, vim and tab navigation with enter and esc.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("up", "shift+tab", "ctrl+p"),
			key.WithHelp("↑/shift+tab", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("down", "tab", "ctrl+n"),
			key.WithHelp("↓/tab", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
		),
	}
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithClock replaces the system clock.
func WithClock(c scheduler.Clock) HostOption {
	return func(h *Host) { h.clock = c }
}

// WithLogger sets the logger passed down to the coordinator.
func WithLogger(l *slog.Logger) HostOption {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// WithDimming sets the backdrop configuration.
func WithDimming(cfg dimming.Config) HostOption {
	return func(h *Host) { h.dimCfg = cfg }
}

// WithBackdropDismiss controls whether esc and backdrop clicks dismiss.
func WithBackdropDismiss(enabled bool) HostOption {
	return func(h *Host) { h.backdropDismiss = enabled }
}

// WithMetrics overrides the cell metrics used for the action layout.
func WithMetrics(m layout.Metrics) HostOption {
	return func(h *Host) { h.metrics = m }
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) HostOption {
	return func(h *Host) { h.keys = k }
}

// WithFrameInterval sets the animation tick interval.
func WithFrameInterval(d time.Duration) HostOption {
	return func(h *Host) {
		if d > 0 {
			h.frameInterval = d
		}
	}
}

// WithSwipeThreshold sets the downward drag, in rows, that dismisses a
// sheet.
func WithSwipeThreshold(rows int) HostOption {
	return func(h *Host) { h.swipe.Threshold = float64(rows) }
}

// Host presents one alert surface inside a Bubble Tea program. It owns
// the scheduler, the coordinator and the surface for a single
// present/dismiss cycle; make a new Host for every presentation.
type Host struct {
	id              uint64
	clock           scheduler.Clock
	sched           *scheduler.Scheduler
	strategy        animation.Strategy
	content         *TextContent
	surface         *alert.Surface
	coord           *transition.Coordinator
	log             *slog.Logger
	dimCfg          dimming.Config
	metrics         layout.Metrics
	backdropDismiss bool
	keys            KeyMap
	frameInterval   time.Duration

	mouse *mouse.Handler
	swipe animation.SwipeRecognizer

	focus   int
	hover   int
	query   string
	ticking bool
	events  []tea.Msg
}

// NewHost builds the surface for content and actions. Nothing is shown
// until Present.
func NewHost(strategy animation.Strategy, content *TextContent, actions []*action.Action, opts ...HostOption) (*Host, error) {
	h := &Host{
		id:              hostSeq.Add(1),
		clock:           scheduler.SystemClock{},
		strategy:        strategy,
		content:         content,
		log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		dimCfg:          dimming.DefaultConfig(),
		metrics:         layout.CellMetrics(),
		backdropDismiss: true,
		keys:            DefaultKeyMap(),
		frameInterval:   DefaultFrameInterval,
		mouse:           mouse.NewHandler(),
		hover:           -1,
	}
	h.swipe.Threshold = 3
	for _, opt := range opts {
		opt(h)
	}

	var c alert.Content
	if content != nil {
		c = content
	}
	surface, err := alert.New(c, actions,
		alert.WithMetrics(h.metrics),
		alert.WithEnabledObserver(h.enabledChanged),
	)
	if err != nil {
		return nil, err
	}
	h.surface = surface
	h.sched = scheduler.New(h.clock)
	h.focus = h.firstEnabled()
	return h, nil
}

// Present starts the entrance inside a width x height container.
func (h *Host) Present(width, height int) (tea.Cmd, error) {
	if h.coord != nil {
		return nil, &transition.InvalidStateError{Op: "present", State: h.coord.State()}
	}
	coord := transition.New(h.sched, h.strategy,
		transition.WithBackdropDismiss(h.backdropDismiss),
		transition.WithDimming(h.dimCfg),
		transition.WithLogger(h.log),
	)
	f, err := h.surface.Present(coord, geom.R(0, 0, float64(width), float64(height)))
	if err != nil {
		return nil, err
	}
	h.coord = coord
	f.OnComplete(func(struct{}, error) { h.emit(PresentedMsg{}) })
	return h.commands(), nil
}

// Update handles frame ticks, window resizes, keys and mouse events.
func (h *Host) Update(msg tea.Msg) tea.Cmd {
	if h.coord == nil {
		return nil
	}
	switch msg := msg.(type) {
	case FrameMsg:
		if msg.id != h.id {
			return nil
		}
		h.ticking = false
		h.sched.Tick()
	case tea.WindowSizeMsg:
		h.coord.Resize(geom.R(0, 0, float64(msg.Width), float64(msg.Height)))
	case tea.KeyMsg:
		h.handleKey(msg)
	case tea.MouseMsg:
		h.handleMouse(msg)
	}
	return h.commands()
}

// State is the coordinator state, Idle before Present.
func (h *Host) State() transition.State {
	if h.coord == nil {
		return transition.Idle
	}
	return h.coord.State()
}

// Done reports whether the surface has been dismissed and torn down. The
// backdrop can outlast the surface, so a Terminal host keeps ticking until
// its fade-out ends and the final OutcomeMsg is queued.
func (h *Host) Done() bool {
	return h.State() == transition.Terminal && !h.sched.Busy()
}

// Focus is the focused action index in display order, -1 when none.
func (h *Host) Focus() int { return h.focus }

// Hover is the action under the mouse, -1 when none.
func (h *Host) Hover() int { return h.hover }

// Query is the pending type-ahead text.
func (h *Host) Query() string { return h.query }

// Surface returns the presented surface.
func (h *Host) Surface() *alert.Surface { return h.surface }

// Coordinator returns the coordinator, nil before Present.
func (h *Host) Coordinator() *transition.Coordinator { return h.coord }

// Keys returns the active bindings.
func (h *Host) Keys() KeyMap { return h.keys }

func (h *Host) emit(msg tea.Msg) {
	h.events = append(h.events, msg)
}

// commands turns queued events into commands and keeps the frame ticker
// alive while the scheduler has work.
func (h *Host) commands() tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range h.events {
		cmds = append(cmds, func() tea.Msg { return ev })
	}
	h.events = nil

	if h.sched.Busy() && !h.ticking {
		h.ticking = true
		id := h.id
		cmds = append(cmds, tea.Tick(h.frameInterval, func(time.Time) tea.Msg {
			return FrameMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

func (h *Host) request(reason transition.Reason) {
	f, err := h.coord.Dismiss(reason)
	h.watch(reason, f, err)
}

func (h *Host) watch(reason transition.Reason, f *scheduler.Future[transition.Outcome], err error) {
	if err != nil {
		h.log.Debug("dismiss request rejected", "reason", reason.String(), "err", err)
		return
	}
	f.OnComplete(func(o transition.Outcome, err error) {
		if err != nil {
			return
		}
		h.emit(OutcomeMsg{Reason: reason, Outcome: o})
	})
}

func (h *Host) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, h.keys.Prev):
		h.query = ""
		h.moveFocus(-1)
	case key.Matches(msg, h.keys.Next):
		h.query = ""
		h.moveFocus(1)
	case key.Matches(msg, h.keys.Select):
		h.query = ""
		if h.focus >= 0 {
			h.request(transition.ActionSelected(h.focus))
		}
	case key.Matches(msg, h.keys.Cancel):
		h.query = ""
		h.request(transition.BackdropTapped)
	case key.Matches(msg, h.keys.Erase):
		if n := len([]rune(h.query)); n > 0 {
			h.query = string([]rune(h.query)[:n-1])
			h.focusQuery()
		}
	case msg.Type == tea.KeyRunes:
		h.query += string(msg.Runes)
		h.focusQuery()
	}
}

// moveFocus steps to the next enabled action in dir, wrapping around.
func (h *Host) moveFocus(dir int) {
	n := h.surface.ActionCount()
	if n == 0 {
		return
	}
	start := h.focus
	if start < 0 {
		start = -1
		if dir < 0 {
			start = n
		}
	}
	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if h.surface.Action(i).Enabled() {
			h.focus = i
			return
		}
	}
	h.focus = -1
}

// focusQuery moves focus to the best fuzzy title match that is enabled.
func (h *Host) focusQuery() {
	if h.query == "" {
		return
	}
	titles := make([]string, h.surface.ActionCount())
	for i, a := range h.surface.Actions() {
		titles[i] = a.Title()
	}
	for _, m := range fuzzy.Find(h.query, titles) {
		if h.surface.Action(m.Index).Enabled() {
			h.focus = m.Index
			return
		}
	}
}

// enabledChanged keeps focus on an enabled action.
func (h *Host) enabledChanged(index int, enabled bool) {
	switch {
	case !enabled && index == h.focus:
		h.moveFocus(1)
	case enabled && h.focus < 0:
		h.focus = index
	}
}

func (h *Host) firstEnabled() int {
	for i, a := range h.surface.Actions() {
		if a.Enabled() {
			return i
		}
	}
	return -1
}

// rebuildHitMap registers the backdrop, the surface and, while the
// surface is interactive, every action row.
func (h *Host) rebuildHitMap() {
	h.mouse.HitMap.Clear()
	container := h.coord.Container()
	h.mouse.HitMap.AddRect(regionBackdrop, 0, 0, int(container.Size.W), int(container.Size.H), nil)

	st := h.coord.State()
	if st != transition.Presenting && st != transition.Presented {
		return
	}
	visual := geom.Snap(h.coord.Frame().Visual(), 1)
	x, y, w, ht := cellRect(visual)
	h.mouse.HitMap.AddRect(regionSurface, x, y, w, ht, nil)

	if !h.coord.Interactive() {
		return
	}
	for i, r := range h.surface.ActionFrames(h.coord.Frame().Rect) {
		if !visual.Intersects(r) {
			continue
		}
		ax, ay, aw, ah := cellRect(r)
		h.mouse.HitMap.AddRect(regionAction, ax, ay, aw, ah, i)
	}
}

func (h *Host) handleMouse(msg tea.MouseMsg) {
	h.rebuildHitMap()
	act := h.mouse.HandleMouse(msg)

	switch act.Type {
	case mouse.ActionClick, mouse.ActionDoubleClick:
		if act.Region == nil {
			return
		}
		switch act.Region.ID {
		case regionAction:
			i := act.Region.Data.(int)
			h.focus = i
			h.request(transition.ActionSelected(i))
		case regionSurface:
			if h.strategy.SwipeDismissible() {
				h.swipe.Begin(float64(act.Y))
				h.mouse.StartDrag(act.X, act.Y, regionSurface, 0)
			}
		case regionBackdrop:
			f, err := h.coord.TapBackdrop()
			h.watch(transition.BackdropTapped, f, err)
		}

	case mouse.ActionDrag:
		if h.swipe.Move(float64(act.Y)) {
			f, err := h.coord.Swipe()
			h.watch(transition.SwipeGesture, f, err)
		}

	case mouse.ActionDragEnd:
		h.swipe.Reset()

	case mouse.ActionHover:
		h.hover = -1
		if act.Region != nil && act.Region.ID == regionAction {
			h.hover = act.Region.Data.(int)
		}
	}
}

// cellRect converts a snapped rect to integer cells.
func cellRect(r geom.Rect) (x, y, w, h int) {
	return int(r.MinX()), int(r.MinY()), int(r.Size.W), int(r.Size.H)
}
