package animation

// DefaultSwipeThreshold is the downward travel, in points, that counts
// as a dismiss swipe.
const DefaultSwipeThreshold = 48

// SwipeRecognizer turns a drag into a single binary dismiss trigger.
// There is no interactive scrubbing: the surface does not follow the
// finger, it either dismisses or stays.
type SwipeRecognizer struct {
	Threshold float64

	startY float64
	active bool
	spent  bool
}

// Begin starts tracking a drag at y.
func (r *SwipeRecognizer) Begin(y float64) {
	r.startY = y
	r.active = true
	r.spent = false
}

// Move reports true exactly once per drag, the first time the downward
// distance reaches the threshold.
func (r *SwipeRecognizer) Move(y float64) bool {
	if !r.active || r.spent {
		return false
	}
	threshold := r.Threshold
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	if y-r.startY >= threshold {
		r.spent = true
		return true
	}
	return false
}

// Tracking reports whether a drag is in progress.
func (r *SwipeRecognizer) Tracking() bool { return r.active }

// Reset ends the drag.
func (r *SwipeRecognizer) Reset() {
	r.active = false
	r.spent = false
}
