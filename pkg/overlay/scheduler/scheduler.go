// Package scheduler is a single-threaded cooperative scheduler for
// timeline-driven UI work.
//
// Nothing in this package starts a goroutine. Work queued with Post,
// After or Animate runs only inside Tick, on the caller's thread, at the
// time reported by the scheduler's Clock. A host event loop calls Tick on
// every frame; tests pair it with a FakeClock.
//
//	clk := scheduler.NewFakeClock(time.Time{})
//	s := scheduler.New(clk)
//	s.Animate(200*time.Millisecond, step, done)
//	clk.Advance(200 * time.Millisecond)
//	s.Tick() // step(1) then done()
package scheduler

import (
	"slices"
	"time"
)

// Scheduler runs posted callbacks, timers and animations.
type Scheduler struct {
	clock  Clock
	seq    uint64
	tick   uint64
	posted []func()
	timers []*Timer
	anims  []*Animation
}

// New creates a scheduler reading time from clock. A nil clock uses the
// system clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Timer is a one-shot callback scheduled with After.
type Timer struct {
	s       *Scheduler
	at      time.Time
	seq     uint64
	fn      func()
	stopped bool
}

// Stop prevents the timer from firing. It reports whether the timer was
// still pending.
func (t *Timer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.s.timers = slices.DeleteFunc(t.s.timers, func(o *Timer) bool { return o == t })
	return true
}

// Animation steps a progress value from 0 to 1 over a duration.
type Animation struct {
	s        *Scheduler
	start    time.Time
	duration time.Duration
	step     func(progress float64)
	done     func()
	lastTick uint64
	finished bool
}

// Finished reports whether the animation has completed or been stopped.
func (a *Animation) Finished() bool { return a.finished }

// Finish snaps the animation to its end: step(1) then done.
func (a *Animation) Finish() {
	if a.finished {
		return
	}
	a.complete()
}

// Stop removes the animation without calling step or done.
func (a *Animation) Stop() {
	if a.finished {
		return
	}
	a.finished = true
	a.s.removeAnimation(a)
}

func (a *Animation) complete() {
	a.finished = true
	a.s.removeAnimation(a)
	if a.step != nil {
		a.step(1)
	}
	if a.done != nil {
		a.done()
	}
}

func (a *Animation) progress(now time.Time) float64 {
	if a.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(a.start)) / float64(a.duration)
	return min(max(p, 0), 1)
}

// Post queues fn to run on the next Tick.
func (s *Scheduler) Post(fn func()) {
	s.posted = append(s.posted, fn)
}

// After runs fn on the first Tick at or after now+d.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	s.seq++
	t := &Timer{s: s, at: s.clock.Now().Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Animate starts an animation at the current time. step receives the
// progress clamped to [0,1] once per Tick; the final call is always
// step(1), followed by done.
func (s *Scheduler) Animate(d time.Duration, step func(progress float64), done func()) *Animation {
	a := &Animation{s: s, start: s.clock.Now(), duration: d, step: step, done: done}
	s.anims = append(s.anims, a)
	return a
}

// Busy reports whether any work is pending.
func (s *Scheduler) Busy() bool {
	return len(s.posted) > 0 || len(s.timers) > 0 || len(s.anims) > 0
}

// Tick runs everything due at the current time. Callbacks may queue more
// work; anything that becomes due during the tick also runs before Tick
// returns. Each animation is stepped at most once per Tick.
func (s *Scheduler) Tick() {
	s.tick++
	now := s.clock.Now()

	for {
		progressed := false

		if len(s.posted) > 0 {
			posted := s.posted
			s.posted = nil
			for _, fn := range posted {
				fn()
			}
			progressed = true
		}

		if t := s.nextDueTimer(now); t != nil {
			t.stopped = true
			s.timers = slices.DeleteFunc(s.timers, func(o *Timer) bool { return o == t })
			t.fn()
			progressed = true
		}

		for _, a := range slices.Clone(s.anims) {
			if a.finished || a.lastTick == s.tick {
				continue
			}
			a.lastTick = s.tick
			progressed = true
			p := a.progress(now)
			if p >= 1 {
				a.complete()
				continue
			}
			if a.step != nil {
				a.step(p)
			}
		}

		if !progressed {
			return
		}
	}
}

// nextDueTimer returns the earliest due timer, ties broken by creation
// order.
func (s *Scheduler) nextDueTimer(now time.Time) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.at.After(now) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) removeAnimation(a *Animation) {
	s.anims = slices.DeleteFunc(s.anims, func(o *Animation) bool { return o == a })
}
