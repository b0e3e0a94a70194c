package client

import "context"

// Task is the pending result of an asynchronous CloudDB operation.
type Task[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newTask[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

func completedTask[T any](v T, err error) *Task[T] {
	t := newTask[T]()
	t.resolve(v, err)
	return t
}

func (t *Task[T]) resolve(v T, err error) {
	t.value, t.err = v, err
	close(t.done)
}

// Done is closed once the operation has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the operation finishes or ctx is done. Giving up on
// waiting does not cancel the operation.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
