package detection

import (
	"errors"
	"fmt"
)

// ErrStagePanic marks a stage that panicked instead of returning.
var ErrStagePanic = errors.New("stage panicked")

// Diagnostic names a stage that failed and why.
type Diagnostic struct {
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// Outcome is the result of one pipeline stage: either a value, or the error
// that left it absent.
type Outcome[T any] struct {
	Stage string
	Value T
	Err   error
}

// OK reports whether the stage produced a value.
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Diagnostic converts a failed outcome into a Diagnostic. The second result
// is false for a successful outcome.
func (o Outcome[T]) Diagnostic() (Diagnostic, bool) {
	if o.Err == nil {
		return Diagnostic{}, false
	}
	return Diagnostic{Stage: o.Stage, Error: o.Err.Error()}, true
}

// Run executes one stage. Errors and panics are captured in the outcome,
// never propagated, and the value is left at its zero value.
func Run[T any](stage string, fn func() (T, error)) (out Outcome[T]) {
	out.Stage = stage
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out.Value = zero
			out.Err = fmt.Errorf("%w: %v", ErrStagePanic, r)
		}
	}()

	v, err := fn()
	if err != nil {
		out.Err = err
		return out
	}
	out.Value = v
	return out
}
