package rope

import "errors"

var (
	// ErrIndexOutOfBounds indicates that an index or offset argument is
	// outside the operation's valid range.  Recoverable; check bounds and
	// retry.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrCorrupt indicates that an internal consistency check failed,
	// e.g. a rebuilt or loaded tree doesn't contain the expected number
	// of items.  Not recoverable; signals a defect or damaged storage,
	// not bad input.
	ErrCorrupt = errors.New("sequence is corrupt")
)
