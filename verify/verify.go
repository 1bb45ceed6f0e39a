// Package verify provides precondition checks shared by the statistics
// packages. Every violated precondition is reported as an error wrapping
// ErrInvalidArgument, so callers can classify failures with errors.Is
// without inspecting message text.
package verify

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root cause reported for every violated
// precondition: non-positive sizes, negative counts, empty collections,
// out-of-range frequencies.
var ErrInvalidArgument = errors.New("invalid argument")

// Validate returns an error wrapping ErrInvalidArgument unless condition
// holds. The format and args describe the violated precondition.
func Validate(condition bool, format string, args ...interface{}) error {
	if !condition {
		return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
	}

	return nil
}

// NonEmptyInts validates that values holds at least one element. The name
// identifies the argument in the error message.
func NonEmptyInts(values []int, name string) error {
	return Validate(len(values) > 0, "empty collection: %s", name)
}

// NonEmptyFloats validates that values holds at least one element. The name
// identifies the argument in the error message.
func NonEmptyFloats(values []float64, name string) error {
	return Validate(len(values) > 0, "empty collection: %s", name)
}
