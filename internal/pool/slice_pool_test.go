package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCodeSlice_Length(t *testing.T) {
	for _, size := range []int{0, 1, 7, 1000} {
		codes, release := GetCodeSlice(size)
		require.Len(t, codes, size)
		require.GreaterOrEqual(t, cap(codes), size)
		release()
	}
}

func TestGetCodeSlice_Reuse(t *testing.T) {
	codes, release := GetCodeSlice(64)
	for i := range codes {
		codes[i] = uint32(i)
	}
	release()

	// A smaller request must still return the requested length even when the
	// pooled slice is larger.
	again, releaseAgain := GetCodeSlice(16)
	defer releaseAgain()
	require.Len(t, again, 16)
}

func TestGetCodeSlice_OversizedNotPooled(t *testing.T) {
	codes, release := GetCodeSlice(MaxPooledCodes + 1)
	require.Len(t, codes, MaxPooledCodes+1)
	require.NotPanics(t, release)
}

func BenchmarkGetCodeSlice(b *testing.B) {
	for b.Loop() {
		codes, release := GetCodeSlice(1000)
		codes[0] = 1
		release()
	}
}
