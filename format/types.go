package format

import "fmt"

type MappingType uint8

const (
	MappingNatural MappingType = 0x1 // MappingNatural maps quantization levels to plain unsigned integers.
	MappingGray    MappingType = 0x2 // MappingGray maps quantization levels to reflected binary (Gray) codes.
)

// Bit width limits shared by every codec configuration.
const (
	MinBitsPerValue = 8
	MaxBitsPerValue = 32
)

func (m MappingType) String() string {
	switch m {
	case MappingNatural:
		return "Natural"
	case MappingGray:
		return "Gray"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(m))
	}
}

// Valid reports whether m is one of the supported mappings.
func (m MappingType) Valid() bool {
	return m == MappingNatural || m == MappingGray
}

// ValidBitsPerValue reports whether n lies in [MinBitsPerValue, MaxBitsPerValue].
func ValidBitsPerValue(n int) bool {
	return n >= MinBitsPerValue && n <= MaxBitsPerValue
}
