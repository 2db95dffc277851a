package plotview

import "errors"

// Errors are returned for testability only, drawing degrades gracefully and never aborts on them.
var (
	ErrMismatchedLength = errors.New("x and y data have different lengths")
	ErrDegenerateRange  = errors.New("degenerate range")
	ErrNonPositiveLog   = errors.New("logarithmic axis requires a positive minimum")
	ErrInvalidHandle    = errors.New("invalid axis handle")
	ErrReentrant        = errors.New("redraw called from within a layer draw")
	ErrUnknownLayer     = errors.New("layer not registered")
	ErrLayerExists      = errors.New("layer already registered")
	ErrLogSlave         = errors.New("logarithmic axis cannot follow a master axis")
)
