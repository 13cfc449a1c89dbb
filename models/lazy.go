package models

// Lazy defers a computation until first use and caches the result.
type Lazy[T any] struct {
	f      func() T
	v      T
	forced bool
}

func NewLazy[T any](f func() T) *Lazy[T] {
	return &Lazy[T]{f: f}
}

func (l *Lazy[T]) Force() T {
	if !l.forced {
		l.v = l.f()
		l.f = nil
		l.forced = true
	}
	return l.v
}

func (l *Lazy[T]) IsForced() bool {
	return l.forced
}

// AsNeeded re-runs the computation on every access. Used where the
// underlying value can change between reads and caching would go stale.
type AsNeeded[T any] struct {
	f func() T
}

func NewAsNeeded[T any](f func() T) AsNeeded[T] {
	return AsNeeded[T]{f: f}
}

func (a AsNeeded[T]) Get() T {
	return a.f()
}
