package quantize

import "github.com/arloliu/quantbits/format"

// mapping describes how quantization indices map onto stored codes.
type mapping struct {
	toCode    func(index uint32) uint32
	toIndex   func(code uint32) uint32
	upperCode func(bitsPerValue int) uint32
}

func identity(v uint32) uint32 { return v }

var mappings = map[format.MappingType]mapping{
	format.MappingNatural: {
		toCode:  identity,
		toIndex: identity,
		upperCode: func(bitsPerValue int) uint32 {
			return maxIndex(bitsPerValue)
		},
	},
	format.MappingGray: {
		toCode:  GrayEncode,
		toIndex: GrayDecode,
		// Gray code of the all-ones index: a single leading one.
		upperCode: func(bitsPerValue int) uint32 {
			return 1 << (bitsPerValue - 1)
		},
	},
}

// maxIndex returns 2^bitsPerValue - 1 without overflowing at 32 bits.
func maxIndex(bitsPerValue int) uint32 {
	return uint32((uint64(1) << bitsPerValue) - 1)
}
