// Package animation computes entrance and exit timelines for presented
// surfaces. Strategies are pure: they return timeline descriptors and
// never touch the surface or the scheduler.
package animation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/marcus/overlay/internal/geom"
)

// Kind selects a motion profile.
type Kind int

const (
	Dialog Kind = iota // centered scale and fade
	Sheet              // slide from the bottom edge
)

func (k Kind) String() string {
	switch k {
	case Dialog:
		return "dialog"
	case Sheet:
		return "sheet"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts "dialog", "alert", "sheet" or "action-sheet".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dialog", "alert":
		return Dialog, nil
	case "sheet", "action-sheet", "actionsheet":
		return Sheet, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (want dialog or sheet)", s)
}

// Scale and opacity the dialog starts from and shrinks back to.
const (
	DialogStartScale   = 0.56
	DialogStartOpacity = 0.0
)

// Config is fixed once a strategy is built.
type Config struct {
	Duration     time.Duration
	FullScreen   bool // Sheet only
	CornerRadius float64

	// Dialog horizontal margins. Containers at or below Breakpoint wide
	// use NarrowMargin.
	NarrowMargin float64
	WideMargin   float64
	Breakpoint   float64

	// SafeAreaTop is the status/notch region a sheet never covers.
	SafeAreaTop float64

	// FullScreenDuration replaces Duration for full-screen sheets.
	FullScreenDuration time.Duration
}

// DefaultConfig returns the stock configuration for kind.
func DefaultConfig(kind Kind) Config {
	switch kind {
	case Sheet:
		return Config{
			Duration:           300 * time.Millisecond,
			FullScreenDuration: 500 * time.Millisecond,
			CornerRadius:       12,
			SafeAreaTop:        44,
		}
	default:
		return Config{
			Duration:     200 * time.Millisecond,
			CornerRadius: 14,
			NarrowMargin: 8,
			WideMargin:   24,
			Breakpoint:   320,
		}
	}
}

// CellConfig returns DefaultConfig scaled to a character grid: margins
// and the sheet safe area in cells, rounded corners drawn with a single
// box character.
func CellConfig(kind Kind) Config {
	cfg := DefaultConfig(kind)
	cfg.CornerRadius = 1
	switch kind {
	case Sheet:
		cfg.SafeAreaTop = 1
	default:
		cfg.NarrowMargin = 2
		cfg.WideMargin = 4
		cfg.Breakpoint = 60
	}
	return cfg
}

// Strategy computes timelines for one motion profile.
type Strategy interface {
	Kind() Kind
	Config() Config
	EntranceTimeline(container geom.Rect, intrinsic geom.Size) Timeline
	ExitTimeline(container geom.Rect, intrinsic geom.Size) Timeline
	// SwipeDismissible reports whether a downward drag may dismiss.
	SwipeDismissible() bool
}

// New builds the strategy for kind.
func New(kind Kind, cfg Config) Strategy {
	switch kind {
	case Sheet:
		return SheetStrategy{cfg: cfg}
	default:
		return DialogStrategy{cfg: cfg}
	}
}

// Default builds kind with DefaultConfig.
func Default(kind Kind) Strategy {
	return New(kind, DefaultConfig(kind))
}

// DialogStrategy centers the surface and scales it in.
type DialogStrategy struct {
	cfg Config
}

func (DialogStrategy) Kind() Kind             { return Dialog }
func (d DialogStrategy) Config() Config       { return d.cfg }
func (DialogStrategy) SwipeDismissible() bool { return false }

// ExitDuration is half the entrance duration.
func (d DialogStrategy) ExitDuration() time.Duration {
	return d.cfg.Duration / 2
}

// Margin returns the horizontal margin used for a container width.
func (d DialogStrategy) Margin(containerWidth float64) float64 {
	if containerWidth <= d.cfg.Breakpoint {
		return d.cfg.NarrowMargin
	}
	return d.cfg.WideMargin
}

// RestingFrame is where the dialog sits once presented.
func (d DialogStrategy) RestingFrame(container geom.Rect, intrinsic geom.Size) geom.Rect {
	margin := d.Margin(container.Size.W)
	w := math.Max(0, container.Size.W-2*margin)
	h := math.Max(0, math.Min(intrinsic.H, container.Size.H-2*margin))
	return geom.R(container.MinX()+margin, container.MinY()+(container.Size.H-h)/2, w, h)
}

func (d DialogStrategy) EntranceTimeline(container geom.Rect, intrinsic geom.Size) Timeline {
	rest := d.RestingFrame(container, intrinsic)
	mask := AllCorners(d.cfg.CornerRadius, rest.Size)
	return Timeline{
		Duration: d.cfg.Duration,
		Easing:   DialogSpring,
		From:     Frame{Rect: rest, Opacity: DialogStartOpacity, Scale: DialogStartScale, Corners: mask},
		To:       Frame{Rect: rest, Opacity: 1, Scale: 1, Corners: mask},
	}
}

func (d DialogStrategy) ExitTimeline(container geom.Rect, intrinsic geom.Size) Timeline {
	tl := d.EntranceTimeline(container, intrinsic).Reversed()
	tl.Duration = d.ExitDuration()
	tl.Easing = EaseInCubic
	return tl
}

// SheetStrategy slides the surface up from the bottom edge.
type SheetStrategy struct {
	cfg Config
}

func (SheetStrategy) Kind() Kind             { return Sheet }
func (s SheetStrategy) Config() Config       { return s.cfg }
func (SheetStrategy) SwipeDismissible() bool { return true }

// Duration is the entrance and exit duration.
func (s SheetStrategy) Duration() time.Duration {
	if s.cfg.FullScreen && s.cfg.FullScreenDuration > 0 {
		return s.cfg.FullScreenDuration
	}
	return s.cfg.Duration
}

// RestingFrame is flush with the container bottom. Full-screen sheets
// extend up to just below the safe area.
func (s SheetStrategy) RestingFrame(container geom.Rect, intrinsic geom.Size) geom.Rect {
	maxH := math.Max(0, container.Size.H-s.cfg.SafeAreaTop)
	h := math.Min(math.Max(0, intrinsic.H), maxH)
	if s.cfg.FullScreen {
		h = maxH
	}
	return geom.R(container.MinX(), container.MaxY()-h, container.Size.W, h)
}

// OffscreenFrame has its top edge on the container's bottom edge.
func (s SheetStrategy) OffscreenFrame(container geom.Rect, intrinsic geom.Size) geom.Rect {
	rest := s.RestingFrame(container, intrinsic)
	rest.Origin.Y = container.MaxY()
	return rest
}

func (s SheetStrategy) EntranceTimeline(container geom.Rect, intrinsic geom.Size) Timeline {
	rest := s.RestingFrame(container, intrinsic)
	mask := TopCorners(s.cfg.CornerRadius, rest.Size)
	return Timeline{
		Duration: s.Duration(),
		Easing:   EaseOutCubic,
		From:     Frame{Rect: s.OffscreenFrame(container, intrinsic), Opacity: 1, Scale: 1, Corners: mask},
		To:       Frame{Rect: rest, Opacity: 1, Scale: 1, Corners: mask},
	}
}

func (s SheetStrategy) ExitTimeline(container geom.Rect, intrinsic geom.Size) Timeline {
	tl := s.EntranceTimeline(container, intrinsic).Reversed()
	tl.Easing = EaseInCubic
	return tl
}
