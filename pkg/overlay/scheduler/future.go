package scheduler

// Future is the result of an operation that completes on a later Tick.
// It is not safe for concurrent use; like everything in this package it
// lives on the single event-loop thread.
type Future[T any] struct {
	done      bool
	value     T
	err       error
	callbacks []func(T, error)
}

// Resolver settles the Future it was created with. Only the first call
// has any effect.
type Resolver[T any] struct {
	f *Future[T]
}

// NewPromise returns an unsettled future and its resolver.
func NewPromise[T any]() (*Future[T], Resolver[T]) {
	f := &Future[T]{}
	return f, Resolver[T]{f: f}
}

// Resolved returns a future already settled with v.
func Resolved[T any](v T) *Future[T] {
	f, r := NewPromise[T]()
	r.Resolve(v)
	return f
}

// Rejected returns a future already settled with err.
func Rejected[T any](err error) *Future[T] {
	f, r := NewPromise[T]()
	r.Reject(err)
	return f
}

func (r Resolver[T]) Resolve(v T) { r.f.settle(v, nil) }

func (r Resolver[T]) Reject(err error) {
	var zero T
	r.f.settle(zero, err)
}

// Done reports whether the future has settled.
func (f *Future[T]) Done() bool { return f.done }

// Result returns the settled value and error. Before settling it returns
// the zero value and a nil error; check Done first.
func (f *Future[T]) Result() (T, error) { return f.value, f.err }

// OnComplete registers fn. If the future already settled, fn runs now.
func (f *Future[T]) OnComplete(fn func(T, error)) {
	if f.done {
		fn(f.value, f.err)
		return
	}
	f.callbacks = append(f.callbacks, fn)
}

func (f *Future[T]) settle(v T, err error) {
	if f.done {
		return
	}
	f.done = true
	f.value = v
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	for _, fn := range callbacks {
		fn(v, err)
	}
}
