package minidrv

import "errors"

var (
	// ErrBufferTooSmall is returned when a caller's output buffer cannot
	// hold the requested descriptor or attribute block.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrInvalidParameter is returned for a malformed submit-input
	// payload (wrong size or report ID).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotSupported is returned for control codes the device does not
	// implement.
	ErrNotSupported = errors.New("not supported")
)
