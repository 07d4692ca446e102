// Package quantbits provides a fixed-width quantizing bit-packing codec for bounded
// float64 data.
//
// Every value is mapped onto one of 2^N evenly spaced levels between a lower and an
// upper bound (8 <= N <= 32) and stored as an N-bit code. Codes are packed back to back,
// most significant bit first, so a slice of n values always occupies exactly
// ceil(n*N/8) bytes.
//
// # Core Features
//
//   - Any code width from 8 to 32 bits, with byte-aligned fast paths for 8/16/24/32
//   - Natural binary or Gray (reflected binary) code mapping
//   - Exact round-trip of both bounds, out-of-range values clamp to the nearest bound
//   - Sequential (All) and random (At) access to encoded buffers
//   - 64-bit xxHash fingerprints to detect buffers from a differently configured codec
//
// # Basic Usage
//
//	c, err := quantbits.NewGrayCodec(16, -5.12, 5.12)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := c.Encode([]float64{-5.12, 0.0, 1.75})
//	values, err := c.Decode(buf, 3)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec package. The
// quantize and bitpack packages expose the two halves of the codec for callers that
// need to work with raw codes.
package quantbits

import (
	"github.com/arloliu/quantbits/codec"
	"github.com/arloliu/quantbits/format"
)

// NewCodec creates a codec with custom options.
//
// Parameters:
//   - bitsPerValue: code width, between MinBitsPerValue() and MaxBitsPerValue()
//   - lowerBound: smallest representable value
//   - upperBound: largest representable value, must be greater than lowerBound
//   - opts: optional configuration functions (see codec.Option)
//
// Returns:
//   - *codec.Codec: the created codec
//   - error: an error wrapping errs.ErrInvalidConfig if the configuration is invalid
//
// Available options:
//   - codec.WithNaturalBinary() / codec.WithGrayBinary()
//   - codec.WithMapping(format.MappingNatural|MappingGray)
//
// Example:
//
//	c, err := quantbits.NewCodec(24, 0, 1, codec.WithMapping(format.MappingGray))
func NewCodec(bitsPerValue int, lowerBound, upperBound float64, opts ...codec.Option) (*codec.Codec, error) {
	return codec.New(bitsPerValue, lowerBound, upperBound, opts...)
}

// NewNaturalCodec creates a codec that stores quantization levels as plain unsigned
// integers. Codes sort in the same order as the values they encode.
func NewNaturalCodec(bitsPerValue int, lowerBound, upperBound float64) (*codec.Codec, error) {
	return codec.New(bitsPerValue, lowerBound, upperBound, codec.WithNaturalBinary())
}

// NewGrayCodec creates a codec that stores quantization levels as Gray codes.
//
// Adjacent levels differ in exactly one bit, so flipping a single bit of an encoded
// buffer is far more likely to land on a nearby value than with natural binary.
func NewGrayCodec(bitsPerValue int, lowerBound, upperBound float64) (*codec.Codec, error) {
	return codec.New(bitsPerValue, lowerBound, upperBound, codec.WithGrayBinary())
}

// MinBitsPerValue returns the smallest supported code width.
func MinBitsPerValue() int { return format.MinBitsPerValue }

// MaxBitsPerValue returns the largest supported code width.
func MaxBitsPerValue() int { return format.MaxBitsPerValue }
