package benchkit

import "errors"

var (
	// ErrReentrantScope is returned by Start when the benchmark's scope is
	// already active. Same-benchmark re-entrancy is not supported.
	ErrReentrantScope = errors.New("benchkit: timing scope already active")

	// ErrInvalidArgument is returned for API misuse: a non-positive
	// iteration count or increment amount, or a percentile outside [0, 100].
	ErrInvalidArgument = errors.New("benchkit: invalid argument")

	// ErrEmptyStore is returned when statistics are requested before any
	// sample has been committed. A summary of an unrun benchmark is
	// meaningless, not zero.
	ErrEmptyStore = errors.New("benchkit: no samples recorded")
)
