// Package mouse maps terminal mouse events onto named screen regions.
//
// Regions are registered after each render with the exact cell geometry
// that was drawn, then tested in reverse order so the last region added
// (the topmost layer) wins.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickWindow is the longest gap between two clicks on the same
// region that still counts as a double-click.
const DoubleClickWindow = 400 * time.Millisecond

// Rect is a cell rectangle. W and H are exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit area with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last render.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region. Later regions take priority.
func (h *HitMap) AddRect(id string, x, y, w, h2 int, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h2}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear drops every region.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns the registered regions in insertion order.
func (h *HitMap) Regions() []Region {
	return h.regions
}

// ActionType classifies a mouse event after hit-testing.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
)

// MouseAction is the result of HandleMouse.
type MouseAction struct {
	Type   ActionType
	Region *Region
	X, Y   int
	DragDX int
	DragDY int
}

// ClickResult is the result of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks click timing and drag state on top of a HitMap.
type Handler struct {
	HitMap *HitMap

	now           func() time.Time
	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// HandleClick hit-tests a click and detects double-clicks. A double
// click resets the sequence so a third click is single again.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := h.now()

	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	double := h.lastClickID == region.ID && now.Sub(h.lastClickTime) <= DoubleClickWindow
	if double {
		h.lastClickID = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickID = region.ID
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins a drag at (x, y). startValue is caller state to restore
// or offset from, such as a pane size.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = region
	h.dragStartValue = startValue
}

func (h *Handler) IsDragging() bool    { return h.dragging }
func (h *Handler) DragRegion() string  { return h.dragRegion }
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// DragDelta is the offset of (x, y) from the drag start.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag clears drag state.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartValue = 0
}

// Clear drops all regions and any drag in progress.
func (h *Handler) Clear() {
	h.HitMap.Clear()
	h.EndDrag()
}

// HandleMouse classifies a bubbletea mouse event.
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	act := MouseAction{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			act.Type = ActionScrollUp
			if msg.Shift {
				act.Type = ActionScrollLeft
			}
		case tea.MouseButtonWheelDown:
			act.Type = ActionScrollDown
			if msg.Shift {
				act.Type = ActionScrollRight
			}
		case tea.MouseButtonWheelLeft:
			act.Type = ActionScrollLeft
		case tea.MouseButtonWheelRight:
			act.Type = ActionScrollRight
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			act.Region = res.Region
			act.Type = ActionClick
			if res.IsDoubleClick {
				act.Type = ActionDoubleClick
			}
			return act
		}
		act.Region = h.HitMap.Test(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if h.dragging {
			act.Type = ActionDrag
			act.DragDX, act.DragDY = h.DragDelta(msg.X, msg.Y)
			return act
		}
		act.Type = ActionHover
		act.Region = h.HitMap.Test(msg.X, msg.Y)

	case tea.MouseActionRelease:
		if h.dragging {
			act.Type = ActionDragEnd
			act.DragDX, act.DragDY = h.DragDelta(msg.X, msg.Y)
			h.EndDrag()
		}
	}
	return act
}
