// Package dimming owns the translucent backdrop behind a presented
// surface.
//
// The backdrop fades on its own timeline. Fades are layered visuals only:
// nothing waits on them except callers that explicitly hold the returned
// future.
package dimming

import (
	"time"

	"github.com/marcus/overlay/internal/geom"
	"github.com/marcus/overlay/pkg/overlay/scheduler"
)

// DefaultMaxAlpha is the backdrop opacity once fully faded in.
const DefaultMaxAlpha = 0.56

// Config controls the backdrop.
type Config struct {
	MaxAlpha        float64
	FadeInDuration  time.Duration
	FadeOutDuration time.Duration
}

// DefaultConfig fades in over 200ms and out over 100ms.
func DefaultConfig() Config {
	return Config{
		MaxAlpha:        DefaultMaxAlpha,
		FadeInDuration:  200 * time.Millisecond,
		FadeOutDuration: 100 * time.Millisecond,
	}
}

// Controller drives one backdrop's opacity and tap handling.
type Controller struct {
	sched  *scheduler.Scheduler
	cfg    Config
	bounds geom.Rect

	alpha     float64
	fade      *scheduler.Animation
	fadeDone  scheduler.Resolver[struct{}]
	hasFade   bool
	onTap     func()
	tapOn     bool
	destroyed bool
}

// New creates a fully transparent backdrop covering bounds.
func New(sched *scheduler.Scheduler, bounds geom.Rect, cfg Config) *Controller {
	if cfg.MaxAlpha <= 0 {
		cfg.MaxAlpha = DefaultMaxAlpha
	}
	return &Controller{sched: sched, cfg: cfg, bounds: bounds}
}

// Bounds is the full-bleed area the backdrop covers.
func (c *Controller) Bounds() geom.Rect { return c.bounds }

// SetBounds follows the container when it resizes. A running fade is not
// affected.
func (c *Controller) SetBounds(bounds geom.Rect) { c.bounds = bounds }

// Alpha is the current opacity.
func (c *Controller) Alpha() float64 { return c.alpha }

// MaxAlpha is the fully faded-in opacity.
func (c *Controller) MaxAlpha() float64 { return c.cfg.MaxAlpha }

// Visible reports whether the backdrop draws anything.
func (c *Controller) Visible() bool { return c.alpha > 0 && !c.destroyed }

// Destroyed reports whether Destroy has been called.
func (c *Controller) Destroyed() bool { return c.destroyed }

// Fading reports whether a fade is running.
func (c *Controller) Fading() bool { return c.fade != nil && !c.fade.Finished() }

// FadeIn animates to MaxAlpha.
func (c *Controller) FadeIn() *scheduler.Future[struct{}] {
	return c.fadeTo(c.cfg.MaxAlpha, c.cfg.FadeInDuration)
}

// FadeOut animates to fully transparent.
func (c *Controller) FadeOut() *scheduler.Future[struct{}] {
	return c.fadeTo(0, c.cfg.FadeOutDuration)
}

// fadeTo replaces any running fade, starting from the current alpha.
// The replaced fade's future still resolves.
func (c *Controller) fadeTo(target float64, d time.Duration) *scheduler.Future[struct{}] {
	if c.destroyed {
		return scheduler.Resolved(struct{}{})
	}
	c.cancelFade()

	f, r := scheduler.NewPromise[struct{}]()
	from := c.alpha
	c.fadeDone = r
	c.hasFade = true
	c.fade = c.sched.Animate(d,
		func(p float64) { c.alpha = from + (target-from)*p },
		func() {
			c.alpha = target
			c.fade = nil
			c.hasFade = false
			r.Resolve(struct{}{})
		},
	)
	return f
}

func (c *Controller) cancelFade() {
	if c.fade != nil {
		c.fade.Stop()
		c.fade = nil
	}
	if c.hasFade {
		c.hasFade = false
		c.fadeDone.Resolve(struct{}{})
	}
}

// SetTapHandler installs the callback run by Tap.
func (c *Controller) SetTapHandler(fn func()) { c.onTap = fn }

// EnableTap turns tap-to-dismiss on or off.
func (c *Controller) EnableTap(enabled bool) { c.tapOn = enabled }

// TapEnabled reports whether Tap will run the handler.
func (c *Controller) TapEnabled() bool { return c.tapOn && c.onTap != nil && !c.destroyed }

// Tap delivers a backdrop tap. It reports whether the handler ran.
func (c *Controller) Tap() bool {
	if !c.TapEnabled() {
		return false
	}
	c.onTap()
	return true
}

// Destroy stops any fade, clears the backdrop and detaches the handler.
// Calling it again does nothing.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.cancelFade()
	c.alpha = 0
	c.onTap = nil
	c.tapOn = false
	c.destroyed = true
}
