// Package errs defines the sentinel errors returned by quantbits packages.
//
// Errors are wrapped with additional context at the call site, so callers should
// match them with errors.Is rather than comparing values directly:
//
//	if errors.Is(err, errs.ErrInvalidConfig) {
//	    // bit width, bounds or mapping rejected at construction time
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the parent of every configuration error. A codec or quantizer
// is never created when one of these is returned.
var ErrInvalidConfig = errors.New("invalid codec configuration")

var (
	// ErrInvalidBitsPerValue indicates a bit width outside [8, 32].
	ErrInvalidBitsPerValue = fmt.Errorf("%w: bits per value out of range", ErrInvalidConfig)
	// ErrInvalidBounds indicates lowerBound >= upperBound or non-finite bounds.
	ErrInvalidBounds = fmt.Errorf("%w: invalid value bounds", ErrInvalidConfig)
	// ErrInvalidMapping indicates an unknown code mapping.
	ErrInvalidMapping = fmt.Errorf("%w: unknown code mapping", ErrInvalidConfig)
)

var (
	// ErrBufferTooShort indicates the buffer cannot hold the requested number of codes.
	ErrBufferTooShort = errors.New("buffer too short")
	// ErrInvalidCount indicates a zero or negative value count.
	ErrInvalidCount = errors.New("invalid value count")
	// ErrIndexOutOfRange indicates a random access index outside the buffer.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrConfigMismatch indicates a buffer fingerprint from a differently configured codec.
	ErrConfigMismatch = errors.New("codec configuration mismatch")
)
