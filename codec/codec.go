// Package codec encodes bounded float64 slices into densely packed fixed-width codes.
//
// A Codec quantizes every value to bitsPerValue bits (see package quantize) and packs
// the resulting codes back to back, most significant bit first (see package bitpack).
// The encoded buffer is exactly ceil(len(values)*bitsPerValue/8) bytes and carries no
// header, so the codec configuration and, where needed, the value count travel
// out-of-band with the buffer.
//
// # Basic Usage
//
//	c, err := codec.New(12, -5.12, 5.12, codec.WithGrayBinary())
//	if err != nil {
//	    return err
//	}
//
//	buf := c.Encode([]float64{-5.12, 0.5, 3.3})
//	values, err := c.Decode(buf, 3)
//
// Decoded values are within c.Step() of the input after clamping to the bounds, and
// the bounds themselves round-trip exactly.
//
// # Thread Safety
//
// A Codec is immutable after New returns and is safe for concurrent use. Every
// Encode and Decode call allocates its own output.
package codec

import (
	"fmt"
	"iter"

	"github.com/arloliu/quantbits/bitpack"
	"github.com/arloliu/quantbits/errs"
	"github.com/arloliu/quantbits/format"
	"github.com/arloliu/quantbits/internal/options"
	"github.com/arloliu/quantbits/internal/pool"
	"github.com/arloliu/quantbits/quantize"
)

// Codec converts between float64 slices and packed byte buffers.
type Codec struct {
	quantizer   quantize.Quantizer
	config      Config
	fingerprint uint64
}

// New creates a Codec.
//
// Parameters:
//   - bitsPerValue: code width, within [format.MinBitsPerValue, format.MaxBitsPerValue]
//   - lowerBound: smallest representable value, values below it encode as lowerBound
//   - upperBound: largest representable value, values above it encode as upperBound
//   - opts: optional configuration (WithMapping, WithNaturalBinary, WithGrayBinary)
//
// Returns:
//   - *Codec: the codec, never partially initialised
//   - error: an error wrapping errs.ErrInvalidConfig if the configuration is rejected
//
// Example:
//
//	c, err := codec.New(16, 0, 1, codec.WithMapping(format.MappingGray))
func New(bitsPerValue int, lowerBound, upperBound float64, opts ...Option) (*Codec, error) {
	cfg := Config{
		bitsPerValue: bitsPerValue,
		lowerBound:   lowerBound,
		upperBound:   upperBound,
		mapping:      format.MappingNatural,
	}

	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	q, err := quantize.New(cfg.bitsPerValue, cfg.lowerBound, cfg.upperBound, cfg.mapping)
	if err != nil {
		return nil, err
	}

	return &Codec{
		quantizer:   q,
		config:      cfg,
		fingerprint: cfg.Fingerprint(),
	}, nil
}

// Config returns the codec configuration.
func (c *Codec) Config() Config { return c.config }

// Quantizer returns the scalar quantizer used by the codec.
func (c *Codec) Quantizer() quantize.Quantizer { return c.quantizer }

// BitsPerValue returns the code width in bits.
func (c *Codec) BitsPerValue() int { return c.config.bitsPerValue }

// Step returns the quantization step, the worst-case error for in-range values.
func (c *Codec) Step() float64 { return c.quantizer.Step() }

// Fingerprint returns Config().Fingerprint(), computed once at construction.
func (c *Codec) Fingerprint() uint64 { return c.fingerprint }

// Matches reports whether fingerprint was produced by an identically configured codec.
func (c *Codec) Matches(fingerprint uint64) bool { return c.fingerprint == fingerprint }

// Compatible reports whether buffers produced by other can be decoded by c.
func (c *Codec) Compatible(other *Codec) bool {
	return other != nil && c.Matches(other.fingerprint)
}

// EncodedLen returns the buffer length produced by encoding count values.
func (c *Codec) EncodedLen(count int) int {
	return bitpack.PackedLen(count, c.config.bitsPerValue)
}

// ValueCount returns the number of values stored in a buffer of bufLen bytes.
func (c *Codec) ValueCount(bufLen int) int {
	return bitpack.Count(bufLen, c.config.bitsPerValue)
}

// EncodeValue quantizes a single value into its code.
func (c *Codec) EncodeValue(v float64) uint32 { return c.quantizer.Encode(v) }

// DecodeValue reconstructs a single value from its code.
func (c *Codec) DecodeValue(code uint32) float64 { return c.quantizer.Decode(code) }

// Encode quantizes and packs values into a new buffer of EncodedLen(len(values)) bytes.
//
// Encode never fails: out-of-range values are clamped to the bounds.
func (c *Codec) Encode(values []float64) []byte {
	return c.AppendEncode(make([]byte, 0, c.EncodedLen(len(values))), values)
}

// AppendEncode appends the encoding of values to dst and returns the extended slice.
// The encoded data starts on a byte boundary at len(dst).
func (c *Codec) AppendEncode(dst []byte, values []float64) []byte {
	codes, release := pool.GetCodeSlice(len(values))
	defer release()

	for i, v := range values {
		codes[i] = c.quantizer.Encode(v)
	}

	// The width was validated by quantize.New, Pack cannot fail here.
	out, _ := bitpack.Pack(dst, codes, c.config.bitsPerValue)

	return out
}

// Decode reconstructs count values from buf.
//
// Returns:
//   - []float64: the decoded values, len == count
//   - error: errs.ErrInvalidCount if count <= 0, errs.ErrBufferTooShort if buf holds
//     fewer than count values
func (c *Codec) Decode(buf []byte, count int) ([]float64, error) {
	return c.DecodeInto(nil, buf, count)
}

// DecodeInto is like Decode but reuses dst when it has enough capacity.
// On error dst is left unmodified.
func (c *Codec) DecodeInto(dst []float64, buf []byte, count int) ([]float64, error) {
	bitsPerValue := c.config.bitsPerValue
	if err := bitpack.Check(len(buf), bitsPerValue, count); err != nil {
		return nil, err
	}

	codes, release := pool.GetCodeSlice(count)
	defer release()

	codes, err := bitpack.Unpack(codes[:0], buf, bitsPerValue, count)
	if err != nil {
		return nil, err
	}

	if cap(dst) >= count {
		dst = dst[:count]
	} else {
		dst = make([]float64, count)
	}

	for i, code := range codes {
		dst[i] = c.quantizer.Decode(code)
	}

	return dst, nil
}

// DecodeAll decodes every value stored in buf, inferring the count from its length.
//
// Because codes are at least 8 bits wide, the trailing padding of a buffer produced
// by Encode never looks like an extra value. An empty buffer decodes to an empty slice.
func (c *Codec) DecodeAll(buf []byte) ([]float64, error) {
	count := c.ValueCount(len(buf))
	if count == 0 {
		return []float64{}, nil
	}

	return c.Decode(buf, count)
}

// All returns an iterator over the first count values in buf.
//
// The iterator yields fewer than count values if buf is too short. Use Decode when a
// short buffer must be reported as an error.
func (c *Codec) All(buf []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for code := range bitpack.All(buf, c.config.bitsPerValue, count) {
			if !yield(c.quantizer.Decode(code)) {
				return
			}
		}
	}
}

// At decodes the value at position index without decoding the values before it.
func (c *Codec) At(buf []byte, index int) (float64, error) {
	code, err := bitpack.At(buf, c.config.bitsPerValue, index)
	if err != nil {
		return 0, err
	}

	return c.quantizer.Decode(code), nil
}

// Verify checks that buf was produced by a codec with the given fingerprint and holds
// at least count values.
func (c *Codec) Verify(buf []byte, fingerprint uint64, count int) error {
	if !c.Matches(fingerprint) {
		return fmt.Errorf("%w: fingerprint %#016x does not match codec %s (%#016x)",
			errs.ErrConfigMismatch, fingerprint, c.config, c.fingerprint)
	}

	return bitpack.Check(len(buf), c.config.bitsPerValue, count)
}
