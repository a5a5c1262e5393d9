package components

import (
	"fmt"
	"unsafe"
)

// CacheLineSize is the byte alignment of every star column.
const CacheLineSize = 64

// SIMDWidth is the lane count capacities are rounded up to.
const SIMDWidth = 8

// roundCapacity rounds n up to a multiple of SIMDWidth.
func roundCapacity(n int) int {
	return (n + SIMDWidth - 1) / SIMDWidth * SIMDWidth
}

// alignedSlice returns a zeroed slice of n elements whose first element sits
// on a CacheLineSize boundary. The backing array is over-allocated by one line
// and stays alive through the returned interior pointer.
//
// Allocation failures surface as runtime panics in make; they are recovered
// and reported as ErrAllocation.
func alignedSlice[T any](n int) (s []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = fmt.Errorf("%w: %d elements: %v", ErrAllocation, n, r)
		}
	}()

	var zero T
	size := int(unsafe.Sizeof(zero))
	pad := CacheLineSize / size
	buf := make([]T, n+pad)
	if n == 0 {
		return buf[:0:0], nil
	}

	addr := uintptr(unsafe.Pointer(&buf[0]))
	off := 0
	if rem := int(addr % CacheLineSize); rem != 0 {
		off = (CacheLineSize - rem) / size
	}
	return buf[off : off+n : off+n], nil
}

// isAligned reports whether the slice starts on a cache line boundary.
func isAligned[T any](s []T) bool {
	if cap(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))%CacheLineSize == 0
}
