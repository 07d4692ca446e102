package pool

import "sync"

// MaxPooledCodes caps the capacity of slices returned to the code pool so a single
// very large encode does not pin memory for the lifetime of the process.
const MaxPooledCodes = 1 << 20

var codeSlicePool = sync.Pool{
	New: func() any { return &[]uint32{} },
}

// GetCodeSlice retrieves a uint32 scratch slice of exactly size elements.
//
// The contents of the returned slice are unspecified; callers overwrite every element.
// The caller must call the returned cleanup function (typically with defer) once the
// slice is no longer referenced.
//
// Example:
//
//	codes, release := pool.GetCodeSlice(len(values))
//	defer release()
func GetCodeSlice(size int) ([]uint32, func()) {
	ptr, _ := codeSlicePool.Get().(*[]uint32)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]uint32, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { putCodeSlice(ptr) }
}

func putCodeSlice(ptr *[]uint32) {
	if cap(*ptr) > MaxPooledCodes {
		return
	}
	codeSlicePool.Put(ptr)
}
