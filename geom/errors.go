package geom

import "errors"

var (
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrTooFewPositions     = errors.New("too few positions")
	ErrRingNotClosed       = errors.New("ring is not closed")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
)
