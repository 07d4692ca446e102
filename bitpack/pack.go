// Package bitpack serializes fixed-width unsigned codes into a dense byte stream.
//
// Codes are written most-significant bit first, one after another with no padding
// between them. Only the final byte may carry padding, which is always zero. A buffer
// holding count codes of bitsPerValue bits is exactly PackedLen(count, bitsPerValue)
// bytes long and carries no header: the reader must know bitsPerValue and, where the
// padding is ambiguous, count.
//
// Layout example for three 12-bit codes 0xABC, 0x123, 0xFFF:
//
//	AB C1 23 FF F0
//
// Widths that are a multiple of 8 never leave the cursor inside a byte, so they are
// packed as plain big-endian integers.
package bitpack

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/arloliu/quantbits/errs"
	"github.com/arloliu/quantbits/format"
)

// PackedLen returns the number of bytes needed for count codes of bitsPerValue bits.
func PackedLen(count, bitsPerValue int) int {
	return (count*bitsPerValue + 7) / 8
}

// Count returns how many whole codes of bitsPerValue bits fit in bufLen bytes.
//
// For widths of at least 8 bits the trailing padding is always shorter than one code,
// so Count(PackedLen(n, w), w) == n.
func Count(bufLen, bitsPerValue int) int {
	if bitsPerValue <= 0 || bufLen <= 0 {
		return 0
	}

	return bufLen * 8 / bitsPerValue
}

// Pack appends codes to dst using bitsPerValue bits per code and returns the extended slice.
//
// The packed data starts on a fresh byte boundary at len(dst); existing bytes of dst
// are left untouched. Bits of a code above bitsPerValue are discarded.
//
// Parameters:
//   - dst: destination slice to append to (may be nil)
//   - codes: codes to pack, in order
//   - bitsPerValue: code width in bits, within [format.MinBitsPerValue, format.MaxBitsPerValue]
//
// Returns:
//   - []byte: dst extended by PackedLen(len(codes), bitsPerValue) bytes
//   - error: errs.ErrInvalidBitsPerValue if the width is out of range
func Pack(dst []byte, codes []uint32, bitsPerValue int) ([]byte, error) {
	if err := validateWidth(bitsPerValue); err != nil {
		return dst, err
	}

	n := PackedLen(len(codes), bitsPerValue)
	start := len(dst)
	dst = slices.Grow(dst, n)[:start+n]
	out := dst[start:]
	// Spare capacity may hold stale bytes; the generic path ORs into them.
	clear(out)

	if bitsPerValue%8 == 0 {
		packAligned(out, codes, bitsPerValue/8)
	} else {
		packGeneric(out, codes, bitsPerValue)
	}

	return dst, nil
}

func packGeneric(out []byte, codes []uint32, bitsPerValue int) {
	mask := lowMask(bitsPerValue)

	var c cursor
	for _, code := range codes {
		c.write(out, code&mask, bitsPerValue)
	}
}

// packAligned writes each code as a big-endian integer of bytesPerValue bytes.
func packAligned(out []byte, codes []uint32, bytesPerValue int) {
	switch bytesPerValue {
	case 1:
		for i, code := range codes {
			out[i] = byte(code)
		}
	case 2:
		for i, code := range codes {
			binary.BigEndian.PutUint16(out[i*2:], uint16(code))
		}
	case 3:
		for i, code := range codes {
			o := i * 3
			out[o] = byte(code >> 16)
			out[o+1] = byte(code >> 8)
			out[o+2] = byte(code)
		}
	case 4:
		for i, code := range codes {
			binary.BigEndian.PutUint32(out[i*4:], code)
		}
	}
}

func validateWidth(bitsPerValue int) error {
	if !format.ValidBitsPerValue(bitsPerValue) {
		return fmt.Errorf("%w: got %d, valid range is [%d, %d]",
			errs.ErrInvalidBitsPerValue, bitsPerValue, format.MinBitsPerValue, format.MaxBitsPerValue)
	}

	return nil
}
