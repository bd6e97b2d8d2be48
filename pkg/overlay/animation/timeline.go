package animation

import (
	"time"

	"github.com/marcus/overlay/internal/geom"
)

// CornerMask describes which corners of the presented surface are
// rounded. Bounds is the size of the final frame the mask was cut for.
type CornerMask struct {
	Radius      float64
	TopLeft     bool
	TopRight    bool
	BottomLeft  bool
	BottomRight bool
	Bounds      geom.Size
}

// AllCorners masks every corner of bounds.
func AllCorners(radius float64, bounds geom.Size) CornerMask {
	return CornerMask{Radius: radius, TopLeft: true, TopRight: true, BottomLeft: true, BottomRight: true, Bounds: bounds}
}

// TopCorners masks only the top corners of bounds.
func TopCorners(radius float64, bounds geom.Size) CornerMask {
	return CornerMask{Radius: radius, TopLeft: true, TopRight: true, Bounds: bounds}
}

// Frame is the presented surface's geometry and appearance at one
// instant. Rect is the layout frame; Scale is applied about its center.
type Frame struct {
	Rect    geom.Rect
	Opacity float64
	Scale   float64
	Corners CornerMask
}

// Visual returns the on-screen rectangle after scaling.
func (f Frame) Visual() geom.Rect {
	if f.Scale == 1 {
		return f.Rect
	}
	return f.Rect.Scaled(f.Scale)
}

// Timeline describes one entrance or exit animation.
type Timeline struct {
	Duration time.Duration
	Easing   Easing
	From     Frame
	To       Frame
}

// Sample returns the frame at linear progress p. Opacity is clamped to
// [0,1] even when the easing overshoots; geometry and scale are not.
func (tl Timeline) Sample(p float64) Frame {
	p = min(max(p, 0), 1)
	if p == 1 {
		return tl.To
	}
	ease := tl.Easing
	if ease == nil {
		ease = Linear
	}
	e := ease(p)
	return Frame{
		Rect:    geom.LerpRect(tl.From.Rect, tl.To.Rect, e),
		Opacity: min(max(geom.Lerp(tl.From.Opacity, tl.To.Opacity, e), 0), 1),
		Scale:   geom.Lerp(tl.From.Scale, tl.To.Scale, e),
		Corners: tl.To.Corners,
	}
}

// Reversed swaps From and To.
func (tl Timeline) Reversed() Timeline {
	tl.From, tl.To = tl.To, tl.From
	return tl
}
