// Package layout positions a fixed list of actions inside a fixed width.
//
// The engine is a pure function of its inputs: the same actions, width
// and metrics always produce identical rectangles. It must be re-run
// whenever the action list or the hosting width changes.
package layout

import (
	"math"

	"github.com/marcus/overlay/internal/geom"
	"github.com/marcus/overlay/pkg/overlay/action"
)

// Metrics are the constants the engine lays out with.
type Metrics struct {
	TopInset        float64
	Gap             float64
	BottomInset     float64
	HorizontalInset float64
	RegularHeight   float64 // Positive, Negative, PositiveReversed
	CompactHeight   float64 // Neutral
	Scale           float64 // device pixels per point, used for snapping
}

// DefaultMetrics returns the point-based metrics.
func DefaultMetrics() Metrics {
	return Metrics{
		TopInset:        32,
		Gap:             16,
		BottomInset:     32,
		HorizontalInset: 16,
		RegularHeight:   56,
		CompactHeight:   40,
		Scale:           1,
	}
}

// CellMetrics returns metrics for a character-cell grid where every
// action occupies a single row. The bottom inset covers a blank row and
// the surface border.
func CellMetrics() Metrics {
	return Metrics{
		TopInset:        1,
		Gap:             0,
		BottomInset:     2,
		HorizontalInset: 2,
		RegularHeight:   1,
		CompactHeight:   1,
		Scale:           1,
	}
}

// ItemHeight returns the height used for a category.
func (m Metrics) ItemHeight(c action.Category) float64 {
	switch c {
	case action.Neutral:
		return m.CompactHeight
	case action.Positive, action.Negative, action.PositiveReversed:
		return m.RegularHeight
	default:
		return m.RegularHeight
	}
}

// Result is the output of one layout pass.
type Result struct {
	Frames []geom.Rect
	Height float64 // total content height including both insets
	Width  float64 // the width the pass was computed for
}

// Engine lays out actions with a fixed set of metrics.
type Engine struct {
	Metrics Metrics
}

// New returns an engine using m.
func New(m Metrics) Engine {
	return Engine{Metrics: m}
}

// Layout computes one rectangle per action, in the given order.
func (e Engine) Layout(actions []*action.Action, width float64) Result {
	categories := make([]action.Category, len(actions))
	for i, a := range actions {
		categories[i] = a.Category()
	}
	return e.LayoutCategories(categories, width)
}

// LayoutCategories is Layout for callers that only know categories.
func (e Engine) LayoutCategories(categories []action.Category, width float64) Result {
	m := e.Metrics
	res := Result{Width: width}
	if len(categories) == 0 {
		res.Height = m.TopInset + m.BottomInset
		return res
	}

	itemWidth := math.Max(0, width-2*m.HorizontalInset)
	res.Frames = make([]geom.Rect, len(categories))

	offset := m.TopInset
	for i, c := range categories {
		if i > 0 {
			offset += m.Gap
		}
		h := m.ItemHeight(c)
		res.Frames[i] = geom.Snap(geom.R(m.HorizontalInset, offset, itemWidth, h), m.Scale)
		offset += h
	}

	last := res.Frames[len(res.Frames)-1]
	res.Height = last.MaxY() + m.BottomInset
	return res
}
