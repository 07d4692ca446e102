// Package quantize maps bounded float64 values onto fixed-width unsigned integer codes.
//
// A Quantizer splits [lowerBound, upperBound] into 2^bitsPerValue levels of equal width
// (the step). Values at or beyond a bound map to a dedicated bound code so the bounds
// themselves always survive a round trip exactly. Interior values are reproduced within
// one step.
//
// Two code mappings are available:
//   - format.MappingNatural: the level index is stored as-is.
//   - format.MappingGray: the level index is stored as its reflected binary code, so
//     adjacent levels differ in exactly one bit.
//
// A Quantizer is an immutable value and is safe for concurrent use.
package quantize

import (
	"fmt"
	"math"

	"github.com/arloliu/quantbits/errs"
	"github.com/arloliu/quantbits/format"
)

// Quantizer converts between float64 values and bitsPerValue-wide codes.
type Quantizer struct {
	lowerBound float64
	upperBound float64
	step       float64
	codeLower  uint32
	codeUpper  uint32
	codeMask   uint32
	maxIndex   uint32
	bits       int
	mapping    mapping
	kind       format.MappingType
}

// New creates a Quantizer.
//
// Parameters:
//   - bitsPerValue: code width in bits, within [format.MinBitsPerValue, format.MaxBitsPerValue]
//   - lowerBound: smallest representable value; anything below encodes as the lower bound code
//   - upperBound: largest representable value; anything above encodes as the upper bound code
//   - kind: format.MappingNatural or format.MappingGray
//
// Returns:
//   - Quantizer: the configured quantizer
//   - error: errs.ErrInvalidBitsPerValue, errs.ErrInvalidBounds or errs.ErrInvalidMapping
func New(bitsPerValue int, lowerBound, upperBound float64, kind format.MappingType) (Quantizer, error) {
	if !format.ValidBitsPerValue(bitsPerValue) {
		return Quantizer{}, fmt.Errorf("%w: got %d, valid range is [%d, %d]",
			errs.ErrInvalidBitsPerValue, bitsPerValue, format.MinBitsPerValue, format.MaxBitsPerValue)
	}

	if err := validateBounds(lowerBound, upperBound); err != nil {
		return Quantizer{}, err
	}

	m, ok := mappings[kind]
	if !ok {
		return Quantizer{}, fmt.Errorf("%w: %s", errs.ErrInvalidMapping, kind)
	}

	mask := maxIndex(bitsPerValue)

	return Quantizer{
		lowerBound: lowerBound,
		upperBound: upperBound,
		step:       (upperBound - lowerBound) / math.Ldexp(1, bitsPerValue),
		codeLower:  0,
		codeUpper:  m.upperCode(bitsPerValue),
		codeMask:   mask,
		maxIndex:   mask,
		bits:       bitsPerValue,
		mapping:    m,
		kind:       kind,
	}, nil
}

func validateBounds(lowerBound, upperBound float64) error {
	if math.IsNaN(lowerBound) || math.IsNaN(upperBound) ||
		math.IsInf(lowerBound, 0) || math.IsInf(upperBound, 0) {
		return fmt.Errorf("%w: bounds must be finite, got lowerBound = %v, upperBound = %v",
			errs.ErrInvalidBounds, lowerBound, upperBound)
	}

	if lowerBound >= upperBound {
		return fmt.Errorf("%w: upper bound must be greater than lower bound, got lowerBound = %v, upperBound = %v",
			errs.ErrInvalidBounds, lowerBound, upperBound)
	}

	if math.IsInf(upperBound-lowerBound, 0) {
		return fmt.Errorf("%w: range between %v and %v overflows float64",
			errs.ErrInvalidBounds, lowerBound, upperBound)
	}

	return nil
}

// Encode quantizes v into a code of BitsPerValue bits.
//
// Values at or below the lower bound (and NaN) return CodeLowerBound; values at or
// above the upper bound return CodeUpperBound.
func (q Quantizer) Encode(v float64) uint32 {
	if v <= q.lowerBound || math.IsNaN(v) {
		return q.codeLower
	}
	if v >= q.upperBound {
		return q.codeUpper
	}

	level := math.Floor((v - q.lowerBound) / q.step)

	// v < upperBound, but the division may still round up to 2^bits.
	index := q.maxIndex
	if level < float64(q.maxIndex) {
		index = uint32(level)
	}

	return q.mapping.toCode(index)
}

// Decode reconstructs the value represented by code. Bits above BitsPerValue are ignored.
func (q Quantizer) Decode(code uint32) float64 {
	code &= q.codeMask

	switch code {
	case q.codeLower:
		return q.lowerBound
	case q.codeUpper:
		return q.upperBound
	}

	return float64(q.mapping.toIndex(code))*q.step + q.lowerBound
}

// BitsPerValue returns the code width in bits.
func (q Quantizer) BitsPerValue() int { return q.bits }

// LowerBound returns the smallest representable value.
func (q Quantizer) LowerBound() float64 { return q.lowerBound }

// UpperBound returns the largest representable value.
func (q Quantizer) UpperBound() float64 { return q.upperBound }

// Step returns the width of one quantization level, (upper-lower)/2^bits.
// It is also the worst-case reconstruction error for in-range values.
func (q Quantizer) Step() float64 { return q.step }

// CodeLowerBound returns the code that represents the lower bound.
func (q Quantizer) CodeLowerBound() uint32 { return q.codeLower }

// CodeUpperBound returns the code that represents the upper bound.
func (q Quantizer) CodeUpperBound() uint32 { return q.codeUpper }

// Mapping returns the code mapping in use.
func (q Quantizer) Mapping() format.MappingType { return q.kind }
