package driver

import "errors"

var (
	// ErrBadArgument is returned for an unknown selector or a structure
	// size mismatch on the control interface.
	ErrBadArgument = errors.New("bad argument")

	// ErrNotReady is returned when the report delivery channel has not
	// been established yet.
	ErrNotReady = errors.New("not ready")

	// ErrClosed is returned on calls through a closed connection.
	ErrClosed = errors.New("connection closed")
)
