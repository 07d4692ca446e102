package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/quantbits/errs"
	"github.com/arloliu/quantbits/format"
	"github.com/arloliu/quantbits/internal/hash"
	"github.com/arloliu/quantbits/internal/options"
)

// fingerprintSize is the length of the canonical configuration encoding:
// mapping (1) + bits per value (1) + lower bound (8) + upper bound (8).
const fingerprintSize = 18

// Config holds the parameters of a Codec. It is immutable once the codec is built.
type Config struct {
	bitsPerValue int
	lowerBound   float64
	upperBound   float64
	mapping      format.MappingType
}

// BitsPerValue returns the code width in bits.
func (c Config) BitsPerValue() int { return c.bitsPerValue }

// LowerBound returns the smallest representable value.
func (c Config) LowerBound() float64 { return c.lowerBound }

// UpperBound returns the largest representable value.
func (c Config) UpperBound() float64 { return c.upperBound }

// Mapping returns the code mapping.
func (c Config) Mapping() format.MappingType { return c.mapping }

// Fingerprint returns a 64-bit xxHash of the configuration.
//
// Buffers carry no metadata, so callers that persist encoded data can store the
// fingerprint next to it and check it with Codec.Matches before decoding. Two configs
// have the same fingerprint when they encode identically; the sign of a zero bound is
// not significant.
func (c Config) Fingerprint() uint64 {
	var b [fingerprintSize]byte
	b[0] = byte(c.mapping)
	b[1] = byte(c.bitsPerValue)
	binary.BigEndian.PutUint64(b[2:10], math.Float64bits(canonicalZero(c.lowerBound)))
	binary.BigEndian.PutUint64(b[10:18], math.Float64bits(canonicalZero(c.upperBound)))

	return hash.Sum(b[:])
}

func (c Config) String() string {
	return fmt.Sprintf("%s[%d bits, %v..%v]", c.mapping, c.bitsPerValue, c.lowerBound, c.upperBound)
}

func canonicalZero(v float64) float64 {
	if v == 0 {
		return 0
	}

	return v
}

// setMapping sets the code mapping.
func (c *Config) setMapping(m format.MappingType) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %s", errs.ErrInvalidMapping, m)
	}
	c.mapping = m

	return nil
}

// Option represents a functional option for configuring a Codec.
type Option = options.Option[*Config]

// WithMapping selects the code mapping. The default is format.MappingNatural.
func WithMapping(m format.MappingType) Option {
	return options.New(func(c *Config) error {
		return c.setMapping(m)
	})
}

// WithNaturalBinary stores quantization levels as plain unsigned integers.
func WithNaturalBinary() Option {
	return options.NoError(func(c *Config) {
		c.mapping = format.MappingNatural
	})
}

// WithGrayBinary stores quantization levels as reflected binary (Gray) codes,
// so neighbouring levels differ in a single bit.
func WithGrayBinary() Option {
	return options.NoError(func(c *Config) {
		c.mapping = format.MappingGray
	})
}
