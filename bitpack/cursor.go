package bitpack

// cursor tracks the next bit position inside a packed buffer.
//
// index is the byte being filled or read; offset is the number of bits of that byte
// already consumed, always in [0, 8). Bits are addressed most-significant first.
type cursor struct {
	index  int
	offset int
}

func cursorAt(bitPos int) cursor {
	return cursor{index: bitPos >> 3, offset: bitPos & 7}
}

// lowMask returns a mask of the n low bits, n in [0, 32].
func lowMask(n int) uint32 {
	return uint32((uint64(1) << n) - 1)
}

// write stores the low width bits of code at the cursor and advances it.
// code must not carry bits above width, and buf bytes past the cursor must be zero.
func (c *cursor) write(buf []byte, code uint32, width int) {
	free := 8 - c.offset
	if width <= free {
		buf[c.index] |= byte(code << (free - width))
		c.advanceWithin(width)

		return
	}

	// Head: the most significant bits complete the current byte.
	remaining := width - free
	buf[c.index] |= byte(code >> remaining)
	c.index++

	for remaining >= 8 {
		remaining -= 8
		buf[c.index] = byte(code >> remaining)
		c.index++
	}

	// Tail: left-aligned in the next byte.
	if remaining > 0 {
		buf[c.index] = byte(code << (8 - remaining))
	}
	c.offset = remaining
}

// read gathers width bits starting at the cursor, right-aligns them and advances it.
func (c *cursor) read(buf []byte, width int) uint32 {
	free := 8 - c.offset
	if width <= free {
		v := uint32(buf[c.index]>>(free-width)) & lowMask(width)
		c.advanceWithin(width)

		return v
	}

	remaining := width - free
	v := uint32(buf[c.index]) & lowMask(free)
	c.index++

	for remaining >= 8 {
		v = v<<8 | uint32(buf[c.index])
		c.index++
		remaining -= 8
	}

	if remaining > 0 {
		v = v<<remaining | uint32(buf[c.index]>>(8-remaining))
	}
	c.offset = remaining

	return v
}

// advanceWithin moves the cursor by n bits that did not cross a byte boundary.
func (c *cursor) advanceWithin(n int) {
	c.offset += n
	if c.offset == 8 {
		c.offset = 0
		c.index++
	}
}
