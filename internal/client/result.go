package client

// Result is the outcome of one mutation: either the entity the server
// returned or the reason it refused.
type Result[T any] struct {
	value  T
	reason error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Err[T any](reason error) Result[T] {
	return Result[T]{reason: reason}
}

func (r Result[T]) IsOk() bool {
	return r.reason == nil
}

// Value returns the entity and true on Ok, or the zero value and false.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.reason == nil
}

// Reason is nil on Ok.
func (r Result[T]) Reason() error {
	return r.reason
}
