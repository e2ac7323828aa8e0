package persistence

import "errors"

var (
	// ErrIoFailure wraps any open/read/write/truncate/delete failure.
	// Check with errors.Is; the underlying cause is reachable via
	// errors.Unwrap.
	ErrIoFailure = errors.New("persistence: io failure")

	// ErrMissingFile is returned by Read when one of the two required
	// files (F.clus, F.vec) is absent. It also satisfies
	// errors.Is(err, ErrIoFailure), since a missing file is a kind of I/O
	// failure.
	ErrMissingFile = errors.New("persistence: missing index file")

	// ErrInvalidFormat is returned when a persisted file's content does
	// not match the expected layout (disagreeing dimensions, a negative
	// size other than the -1 null sentinel, or truncation mid-record). No
	// partial result is ever returned alongside this error.
	ErrInvalidFormat = errors.New("persistence: invalid index format")
)
