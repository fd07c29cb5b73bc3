package pool

import "sync"

var intSlicePool = sync.Pool{
	New: func() any { return &[]int{} },
}

// GetIntSlice retrieves an int slice of exactly size elements from the pool.
//
// The contents are unspecified. The caller must call the returned cleanup
// function, typically with defer, to return the slice to the pool.
//
// Example:
//
//	perm, cleanup := pool.GetIntSlice(cols)
//	defer cleanup()
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)

	if cap(*ptr) < size {
		*ptr = make([]int, size)
	} else {
		*ptr = (*ptr)[:size]
	}

	return *ptr, func() { intSlicePool.Put(ptr) }
}
