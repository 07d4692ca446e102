package quantize

// GrayEncode converts a natural binary index into its reflected binary (Gray) code.
// Consecutive indices produce codes that differ in exactly one bit.
func GrayEncode(index uint32) uint32 {
	return index ^ (index >> 1)
}

// GrayDecode converts a Gray code back into its natural binary index.
//
// The code is folded with successively right-shifted copies of itself until the
// shifted copy is zero.
func GrayDecode(code uint32) uint32 {
	index := code
	for mask := code >> 1; mask != 0; mask >>= 1 {
		index ^= mask
	}

	return index
}
