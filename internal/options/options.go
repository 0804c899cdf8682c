// Package options implements the generic functional option pattern used by the
// estimator, reader and report packages.
package options

import (
	"fmt"

	"github.com/arloliu/potency/errs"
)

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function to the Option interface.
type Func[T any] struct {
	fn func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.fn(target)
}

// New creates an option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{fn: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		fn: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first failure.
// The returned error wraps errs.ErrInvalidOption.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
		}
	}

	return nil
}
