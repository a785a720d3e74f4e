package set

import "github.com/cockroachdb/errors"

// The conditions reported by the set implementations in this module.
// Programmer errors (argument and state misuse) are reported with a
// panic whose value is an error wrapping one of these, so a caller that
// recovers can test the cause with [errors.Is].
var (
	// ErrIllegalArgument reports a value or bound outside the domain a
	// set supports, such as a negative value added to a bitmap,
	// or an invalid configuration.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrIllegalState reports an iterator used out of sequence.
	ErrIllegalState = errors.New("illegal state")

	// ErrNoSuchElement reports a request for an element
	// from an empty set, view or exhausted iterator.
	ErrNoSuchElement = errors.New("no such element")

	// ErrOutOfRange reports a mutation through a view
	// outside the view's bounds.
	ErrOutOfRange = errors.New("value out of range")

	// ErrCorrupt reports a malformed persisted set.
	ErrCorrupt = errors.New("corrupt set encoding")
)

// Panicf panics with an error wrapping kind, annotated with the
// formatted message.
func Panicf(kind error, format string, args ...any) {
	panic(errors.Wrapf(kind, format, args...))
}
