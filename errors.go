package allcolors

import "github.com/pkg/errors"

var (
	// ErrOutOfBounds is returned when a placement falls outside the grid.
	ErrOutOfBounds = errors.New("placement out of bounds")
	// ErrColorOutOfRange is returned when a colour does not fit the engine's bit depth.
	ErrColorOutOfRange = errors.New("color outside native range")
	// ErrIndexExhausted marks a step that found a frontier cell but no colour left.
	ErrIndexExhausted = errors.New("color index exhausted")
	// ErrInvalidOptions wraps every option validation failure.
	ErrInvalidOptions = errors.New("invalid options")
)
