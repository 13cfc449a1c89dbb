package view

// Executor schedules a function onto some execution context, typically a
// UI thread's event loop.
type Executor interface {
	Do(f func())
}

// ExecutorFunc adapts a plain function to Executor.
type ExecutorFunc func(f func())

func (e ExecutorFunc) Do(f func()) { e(f) }

// Sync runs scheduled functions immediately on the calling goroutine.
var Sync Executor = ExecutorFunc(func(f func()) { f() })

// Task is a unit of work with an explicit continuation boundary: the
// Background func runs off the foreground context and its result is then
// handed to Foreground on the given executor. This replaces in-language
// cooperative suspension for the "compute off-thread, then touch UI
// state" pattern.
type Task[T any] struct {
	Background func() (T, error)
	Foreground func(v T, err error)
}

// Run starts Background on a fresh goroutine and schedules Foreground on
// fg when it finishes.
func (t Task[T]) Run(fg Executor) {
	go func() {
		v, err := t.Background()
		fg.Do(func() {
			t.Foreground(v, err)
		})
	}()
}

// RunSync performs both halves on the calling goroutine.
func (t Task[T]) RunSync() {
	v, err := t.Background()
	t.Foreground(v, err)
}
