package dimming

import (
	"math"
	"testing"
	"time"

	"github.com/marcus/overlay/internal/geom"
	"github.com/marcus/overlay/pkg/overlay/scheduler"
)

func setup(cfg Config) (*Controller, *scheduler.Scheduler, *scheduler.FakeClock) {
	clk := scheduler.NewFakeClock(time.Time{})
	s := scheduler.New(clk)
	return New(s, geom.R(0, 0, 320, 568), cfg), s, clk
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFadeInOut(t *testing.T) {
	c, s, clk := setup(DefaultConfig())
	if c.Visible() {
		t.Fatal("new backdrop should be transparent")
	}

	in := c.FadeIn()
	s.Tick()
	clk.Advance(100 * time.Millisecond)
	s.Tick()
	if !approx(c.Alpha(), 0.28) {
		t.Errorf("alpha halfway in = %g, want 0.28", c.Alpha())
	}
	if in.Done() {
		t.Error("fade in resolved early")
	}

	clk.Advance(100 * time.Millisecond)
	s.Tick()
	if c.Alpha() != DefaultMaxAlpha || !in.Done() {
		t.Errorf("after fade in: alpha %g done %v, want 0.56 true", c.Alpha(), in.Done())
	}

	out := c.FadeOut()
	clk.Advance(100 * time.Millisecond)
	s.Tick()
	if c.Alpha() != 0 || !out.Done() {
		t.Errorf("after fade out: alpha %g done %v, want 0 true", c.Alpha(), out.Done())
	}
}

func TestFadeOutReplacesRunningFadeIn(t *testing.T) {
	c, s, clk := setup(DefaultConfig())

	in := c.FadeIn()
	clk.Advance(100 * time.Millisecond)
	s.Tick()
	start := c.Alpha()

	out := c.FadeOut()
	if !in.Done() {
		t.Error("replaced fade should resolve")
	}

	s.Tick()
	if !approx(c.Alpha(), start) {
		t.Errorf("fade out should start from current alpha %g, got %g", start, c.Alpha())
	}
	clk.Advance(100 * time.Millisecond)
	s.Tick()
	if c.Alpha() != 0 || !out.Done() {
		t.Errorf("alpha %g done %v, want 0 true", c.Alpha(), out.Done())
	}
}

func TestTap(t *testing.T) {
	c, _, _ := setup(DefaultConfig())

	taps := 0
	c.SetTapHandler(func() { taps++ })
	if c.Tap() {
		t.Error("tap should be ignored until enabled")
	}

	c.EnableTap(true)
	if !c.Tap() || taps != 1 {
		t.Errorf("enabled tap: handler calls = %d, want 1", taps)
	}

	c.Destroy()
	if c.Tap() || taps != 1 {
		t.Error("tap after Destroy should be ignored")
	}
}

func TestDestroy(t *testing.T) {
	c, s, clk := setup(DefaultConfig())

	f := c.FadeIn()
	clk.Advance(50 * time.Millisecond)
	s.Tick()

	c.Destroy()
	c.Destroy()
	if c.Alpha() != 0 || c.Visible() || !c.Destroyed() {
		t.Errorf("destroyed backdrop alpha %g visible %v", c.Alpha(), c.Visible())
	}
	if !f.Done() {
		t.Error("running fade should resolve on Destroy")
	}
	if s.Busy() {
		t.Error("destroy should stop the fade animation")
	}
	if !c.FadeIn().Done() {
		t.Error("fade on a destroyed backdrop should resolve immediately")
	}
}

func TestZeroMaxAlphaDefaults(t *testing.T) {
	c, _, _ := setup(Config{})
	if c.MaxAlpha() != DefaultMaxAlpha {
		t.Errorf("MaxAlpha() = %g, want %g", c.MaxAlpha(), DefaultMaxAlpha)
	}
}

func TestSetBoundsKeepsFade(t *testing.T) {
	c, s, clk := setup(DefaultConfig())
	f := c.FadeIn()
	clk.Advance(100 * time.Millisecond)
	s.Tick()

	wide := geom.R(0, 0, 568, 320)
	c.SetBounds(wide)
	if c.Bounds() != wide {
		t.Errorf("Bounds() = %v, want %v", c.Bounds(), wide)
	}
	if f.Done() || !c.Fading() {
		t.Fatal("resizing must not cut the fade short")
	}
	clk.Advance(200 * time.Millisecond)
	s.Tick()
	if !f.Done() || !approx(c.Alpha(), c.MaxAlpha()) {
		t.Errorf("after fade: done=%v alpha=%g", f.Done(), c.Alpha())
	}
}
