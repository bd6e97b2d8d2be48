package animation

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Easing maps linear progress in [0,1] to curve progress. Spring curves
// may leave [0,1] briefly but always end at exactly 1.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func EaseInCubic(t float64) float64 {
	return t * t * t
}

// springSamples is the resolution of the pre-simulated spring curve.
const springSamples = 120

// Spring returns a spring-like curve. The spring is simulated once with
// harmonica over normalized time and then sampled; progress 1 always
// maps to exactly 1 so timelines land on their final frame.
func Spring(angularFrequency, damping float64) Easing {
	dt := 1.0 / springSamples
	spring := harmonica.NewSpring(dt, angularFrequency, damping)

	table := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = spring.Update(pos, vel, 1)
		table[i] = pos
	}
	table[springSamples] = 1

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		x := t * springSamples
		i := int(math.Floor(x))
		frac := x - float64(i)
		return table[i] + (table[i+1]-table[i])*frac
	}
}

// DialogSpring is the curve used for the dialog entrance: quick, with a
// slight overshoot.
var DialogSpring = Spring(14, 0.72)
