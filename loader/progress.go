package loader

// Progress is one step of a load: Done writes issued out of Total.
type Progress struct {
	Done  int
	Total int
}

// Seq is a lazy, finite, non-restartable sequence of load progress. Each
// Next performs exactly one write; consuming the sequence fully performs
// the whole load. Abandoning it early leaves every write already issued
// intact. A Seq is not safe for concurrent use.
type Seq struct {
	total int
	n     int
	step  func(n int) error
	err   error
}

func newSeq(total int, step func(n int) error) *Seq {
	return &Seq{total: total, step: step}
}

// Next issues the next write and reports progress. It returns false once
// the sequence is exhausted or a write fails; check Err afterwards.
func (s *Seq) Next() (Progress, bool) {
	if s.err != nil || s.n >= s.total {
		return Progress{s.n, s.total}, false
	}
	if err := s.step(s.n); err != nil {
		s.err = err
		return Progress{s.n, s.total}, false
	}
	s.n++
	return Progress{s.n, s.total}, true
}

// Err returns the write error that stopped the sequence, if any.
func (s *Seq) Err() error {
	return s.err
}

// Total is the number of writes the full sequence will issue.
func (s *Seq) Total() int {
	return s.total
}

// Drain consumes the sequence to completion, discarding progress.
func (s *Seq) Drain() error {
	for {
		if _, ok := s.Next(); !ok {
			return s.err
		}
	}
}
