package quantize

import (
	"math"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/quantbits/errs"
	"github.com/arloliu/quantbits/format"
)

var allMappings = []format.MappingType{format.MappingNatural, format.MappingGray}

// tolerance is one quantization step plus a few ulps of float rounding at the
// magnitude of the bounds.
func tolerance(q Quantizer) float64 {
	scale := math.Max(math.Abs(q.LowerBound()), math.Abs(q.UpperBound()))
	ulp := math.Nextafter(scale, math.Inf(1)) - scale

	return q.Step() + 8*ulp
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		bits    int
		lower   float64
		upper   float64
		mapping format.MappingType
		wantErr error
	}{
		{"bits too small", 7, 0, 1, format.MappingNatural, errs.ErrInvalidBitsPerValue},
		{"bits too large", 33, 0, 1, format.MappingNatural, errs.ErrInvalidBitsPerValue},
		{"zero bits", 0, 0, 1, format.MappingGray, errs.ErrInvalidBitsPerValue},
		{"equal bounds", 8, 1, 1, format.MappingNatural, errs.ErrInvalidBounds},
		{"inverted bounds", 8, 2, -2, format.MappingNatural, errs.ErrInvalidBounds},
		{"nan lower", 8, math.NaN(), 1, format.MappingNatural, errs.ErrInvalidBounds},
		{"inf upper", 8, 0, math.Inf(1), format.MappingNatural, errs.ErrInvalidBounds},
		{"range overflow", 8, -math.MaxFloat64, math.MaxFloat64, format.MappingNatural, errs.ErrInvalidBounds},
		{"unknown mapping", 8, 0, 1, format.MappingType(0), errs.ErrInvalidMapping},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.bits, tt.lower, tt.upper, tt.mapping)
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, errs.ErrInvalidConfig)
		})
	}
}

func TestNew_DerivedConstants(t *testing.T) {
	for bitsPerValue := format.MinBitsPerValue; bitsPerValue <= format.MaxBitsPerValue; bitsPerValue++ {
		natural, err := New(bitsPerValue, -3, 5, format.MappingNatural)
		require.NoError(t, err)
		gray, err := New(bitsPerValue, -3, 5, format.MappingGray)
		require.NoError(t, err)

		wantStep := 8 / math.Pow(2, float64(bitsPerValue))
		require.Equal(t, wantStep, natural.Step())
		require.Equal(t, wantStep, gray.Step())

		require.Equal(t, uint32(0), natural.CodeLowerBound())
		require.Equal(t, uint32(0), gray.CodeLowerBound())
		require.Equal(t, uint32((uint64(1)<<bitsPerValue)-1), natural.CodeUpperBound())
		require.Equal(t, uint32(1)<<(bitsPerValue-1), gray.CodeUpperBound())

		require.Equal(t, bitsPerValue, natural.BitsPerValue())
		require.Equal(t, -3.0, gray.LowerBound())
		require.Equal(t, 5.0, gray.UpperBound())
		require.Equal(t, format.MappingNatural, natural.Mapping())
		require.Equal(t, format.MappingGray, gray.Mapping())
	}
}

func TestQuantizer_ConcreteEightBit(t *testing.T) {
	natural, err := New(8, -1, 1, format.MappingNatural)
	require.NoError(t, err)
	require.Equal(t, 0.0078125, natural.Step())

	require.Equal(t, uint32(0x00), natural.Encode(-1))
	require.Equal(t, uint32(0x80), natural.Encode(0))
	require.Equal(t, uint32(0xFF), natural.Encode(1))
	require.Equal(t, -1.0, natural.Decode(0x00))
	require.Equal(t, 128*0.0078125-1, natural.Decode(0x80))
	require.Equal(t, 1.0, natural.Decode(0xFF))

	gray, err := New(8, -1, 1, format.MappingGray)
	require.NoError(t, err)
	require.Equal(t, uint32(0x00), gray.Encode(-1))
	require.Equal(t, uint32(0xC0), gray.Encode(0))
	require.Equal(t, uint32(0x80), gray.Encode(1))
	require.Equal(t, 0.0, gray.Decode(0xC0))
	require.Equal(t, 1.0, gray.Decode(0x80))
}

func TestQuantizer_BoundaryExactness(t *testing.T) {
	for _, m := range allMappings {
		for bitsPerValue := format.MinBitsPerValue; bitsPerValue <= format.MaxBitsPerValue; bitsPerValue++ {
			q, err := New(bitsPerValue, -12.5, 0.3, m)
			require.NoError(t, err)

			require.Equal(t, q.LowerBound(), q.Decode(q.Encode(q.LowerBound())))
			require.Equal(t, q.UpperBound(), q.Decode(q.Encode(q.UpperBound())))
		}
	}
}

func TestQuantizer_Clamping(t *testing.T) {
	for _, m := range allMappings {
		q, err := New(12, 0, 10, m)
		require.NoError(t, err)

		for _, v := range []float64{-0.0001, -1, -1e300, math.Inf(-1), math.NaN()} {
			require.Equal(t, q.CodeLowerBound(), q.Encode(v), "%s value %v", m, v)
		}
		for _, v := range []float64{10.0001, 11, 1e300, math.Inf(1)} {
			require.Equal(t, q.CodeUpperBound(), q.Encode(v), "%s value %v", m, v)
		}
	}
}

func TestQuantizer_RoundTripBound(t *testing.T) {
	rng := rand.New(rand.NewSource(2025))
	ranges := [][2]float64{{-1, 1}, {0, 1}, {-1000, 1e-3}, {100, 100.5}, {-5.12, 5.12}}

	for _, m := range allMappings {
		for bitsPerValue := format.MinBitsPerValue; bitsPerValue <= format.MaxBitsPerValue; bitsPerValue++ {
			for _, r := range ranges {
				q, err := New(bitsPerValue, r[0], r[1], m)
				require.NoError(t, err)

				for range 200 {
					v := r[0] + rng.Float64()*(r[1]-r[0])
					got := q.Decode(q.Encode(v))
					require.InDelta(t, v, got, tolerance(q),
						"%s bits=%d range=%v value=%v", m, bitsPerValue, r, v)
				}
			}
		}
	}
}

func TestQuantizer_CodeFitsWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, m := range allMappings {
		for bitsPerValue := format.MinBitsPerValue; bitsPerValue <= format.MaxBitsPerValue; bitsPerValue++ {
			q, err := New(bitsPerValue, -1, 1, m)
			require.NoError(t, err)

			limit := uint64(1) << bitsPerValue
			for range 500 {
				v := rng.Float64()*2.2 - 1.1
				require.Less(t, uint64(q.Encode(v)), limit)
			}
			// Just below the upper bound, where the division is most likely to round up.
			require.Less(t, uint64(q.Encode(math.Nextafter(1, 0))), limit)
		}
	}
}

func TestQuantizer_NaturalMonotonic(t *testing.T) {
	q, err := New(10, 0, 1, format.MappingNatural)
	require.NoError(t, err)

	prev := q.Encode(0)
	for i := 1; i <= 5000; i++ {
		code := q.Encode(float64(i) / 5000)
		require.GreaterOrEqual(t, code, prev)
		prev = code
	}
}

func TestQuantizer_GrayLevelsDifferByOneBit(t *testing.T) {
	q, err := New(9, 0, 512, format.MappingGray)
	require.NoError(t, err)
	require.Equal(t, 1.0, q.Step())

	// Level i covers [i, i+1); sample the middle of each pair of neighbouring levels.
	for i := 0; i < 511; i++ {
		a := q.Encode(float64(i) + 0.5)
		b := q.Encode(float64(i) + 1.5)
		require.Equal(t, 1, bits.OnesCount32(a^b), "levels %d and %d", i, i+1)
	}
}

func TestQuantizer_DecodeIgnoresHighBits(t *testing.T) {
	q, err := New(8, -1, 1, format.MappingNatural)
	require.NoError(t, err)

	require.Equal(t, q.Decode(0x80), q.Decode(0xABCD0080))
}

func TestQuantizer_DecodeEveryCode(t *testing.T) {
	for _, m := range allMappings {
		t.Run(m.String(), func(t *testing.T) {
			q, err := New(12, -2, 2, m)
			require.NoError(t, err)

			prev := math.Inf(-1)
			for index := uint32(0); index < 1<<12; index++ {
				code := index
				if m == format.MappingGray {
					code = GrayEncode(index)
				}
				v := q.Decode(code)
				require.GreaterOrEqual(t, v, q.LowerBound())
				require.LessOrEqual(t, v, q.UpperBound())
				require.Greater(t, v, prev, "index %d", index)
				prev = v
			}
		})
	}
}

func BenchmarkQuantizer_Encode(b *testing.B) {
	for _, m := range allMappings {
		q, _ := New(17, -1, 1, m)
		b.Run(m.String(), func(b *testing.B) {
			for b.Loop() {
				_ = q.Encode(0.123456)
			}
		})
	}
}

func BenchmarkQuantizer_Decode(b *testing.B) {
	for _, m := range allMappings {
		q, _ := New(17, -1, 1, m)
		code := q.Encode(0.123456)
		b.Run(m.String(), func(b *testing.B) {
			for b.Loop() {
				_ = q.Decode(code)
			}
		})
	}
}
