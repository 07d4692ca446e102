package bitpack

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/arloliu/quantbits/errs"
)

// Unpack decodes count codes of bitsPerValue bits from buf into dst.
//
// dst is reused when it has enough capacity, otherwise a new slice is allocated.
// All arguments are validated before anything is written to dst.
//
// Parameters:
//   - dst: destination slice to reuse (may be nil)
//   - buf: packed data produced by Pack
//   - bitsPerValue: code width used when packing
//   - count: number of codes to decode, must be positive
//
// Returns:
//   - []uint32: the decoded codes, len == count
//   - error: errs.ErrInvalidBitsPerValue, errs.ErrInvalidCount or errs.ErrBufferTooShort
func Unpack(dst []uint32, buf []byte, bitsPerValue, count int) ([]uint32, error) {
	if err := Check(len(buf), bitsPerValue, count); err != nil {
		return nil, err
	}

	if cap(dst) >= count {
		dst = dst[:count]
	} else {
		dst = make([]uint32, count)
	}

	if bitsPerValue%8 == 0 {
		unpackAligned(dst, buf, bitsPerValue/8)
	} else {
		unpackGeneric(dst, buf, bitsPerValue)
	}

	return dst, nil
}

// Check reports whether a buffer of bufLen bytes can be unpacked into count codes of
// bitsPerValue bits. Unpack performs the same validation.
func Check(bufLen, bitsPerValue, count int) error {
	if err := validateWidth(bitsPerValue); err != nil {
		return err
	}

	if count <= 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCount, count)
	}

	if need := PackedLen(count, bitsPerValue); bufLen < need {
		return fmt.Errorf("%w: %d values of %d bits need %d bytes, got %d",
			errs.ErrBufferTooShort, count, bitsPerValue, need, bufLen)
	}

	return nil
}

func unpackGeneric(dst []uint32, buf []byte, bitsPerValue int) {
	var c cursor
	for i := range dst {
		dst[i] = c.read(buf, bitsPerValue)
	}
}

func unpackAligned(dst []uint32, buf []byte, bytesPerValue int) {
	switch bytesPerValue {
	case 1:
		for i := range dst {
			dst[i] = uint32(buf[i])
		}
	case 2:
		for i := range dst {
			dst[i] = uint32(binary.BigEndian.Uint16(buf[i*2:]))
		}
	case 3:
		for i := range dst {
			o := i * 3
			dst[i] = uint32(buf[o])<<16 | uint32(buf[o+1])<<8 | uint32(buf[o+2])
		}
	case 4:
		for i := range dst {
			dst[i] = binary.BigEndian.Uint32(buf[i*4:])
		}
	}
}

// At returns the code at position index without decoding the codes before it.
//
// Returns:
//   - uint32: the code
//   - error: errs.ErrInvalidBitsPerValue, or errs.ErrIndexOutOfRange if index < 0 or
//     the code would extend past the end of buf
func At(buf []byte, bitsPerValue, index int) (uint32, error) {
	if err := validateWidth(bitsPerValue); err != nil {
		return 0, err
	}

	if index < 0 || index >= Count(len(buf), bitsPerValue) {
		return 0, fmt.Errorf("%w: index %d, buffer holds %d values of %d bits",
			errs.ErrIndexOutOfRange, index, Count(len(buf), bitsPerValue), bitsPerValue)
	}

	c := cursorAt(index * bitsPerValue)

	return c.read(buf, bitsPerValue), nil
}

// All returns an iterator over the first count codes in buf.
//
// The iterator yields fewer than count codes if buf is too short, and nothing at all
// for an invalid width or a non-positive count.
func All(buf []byte, bitsPerValue, count int) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if validateWidth(bitsPerValue) != nil || count <= 0 {
			return
		}

		n := min(count, Count(len(buf), bitsPerValue))

		var c cursor
		for range n {
			if !yield(c.read(buf, bitsPerValue)) {
				return
			}
		}
	}
}
