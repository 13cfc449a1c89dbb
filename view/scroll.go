package view

import (
	"math"
)

// Scroll acceleration tuning. A drag deflection d in [-1, 1] turns into a
// speed of sign(d) * |d|^ScrollAccel * MaxScrollSpeed, and each tick
// moves 2^|speed|/10 rows. Small deflections nudge one row at a time;
// full deflection jumps 2^16 rows per second.
const (
	MaxScrollSpeed = 16
	ScrollAccel    = 0.8

	// TickInterval is how often a dragging scrollbar should call Tick.
	TickIntervalMs = 100
)

// Scroller accumulates fractional scroll distance over the course of one
// scrollbar drag, emulating continuous accelerating scroll on top of a
// bounded scrollbar widget. It is deterministic: the same sequence of
// deflections always yields the same offsets.
type Scroller struct {
	dragging bool
	distance float64
}

// Start begins a drag, resetting the accumulated distance.
func (s *Scroller) Start() {
	s.dragging = true
	s.distance = 0
}

func (s *Scroller) Dragging() bool {
	return s.dragging
}

// Tick advances one interval of dragging at the given deflection and
// returns the row offset from the drag start: the accumulated distance
// rounded away from zero, so the view never sticks at the start address
// once the distance passes ±1.
func (s *Scroller) Tick(deflect float64) int64 {
	if !s.dragging {
		return 0
	}
	sign := 1.0
	if deflect < 0 {
		sign = -1
	}
	speed := sign * math.Pow(math.Abs(deflect), ScrollAccel) * MaxScrollSpeed

	// per-tick share of a nominal per-second rate
	delta := math.Pow(2, math.Abs(speed)) / 10.0
	if speed > 0 {
		s.distance += delta
	} else if speed < 0 {
		s.distance -= delta
	}
	return s.Offset()
}

// Offset is the current rounded distance since the drag began.
func (s *Scroller) Offset() int64 {
	r := math.Ceil(math.Abs(s.distance))
	if s.distance < 0 {
		r = -r
	}
	return int64(r)
}

// End finishes the drag with one final tick, so even an instantaneous
// click-and-release registers a move when deflected.
func (s *Scroller) End(deflect float64) int64 {
	off := s.Tick(deflect)
	s.dragging = false
	return off
}
