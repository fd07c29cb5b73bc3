package alloc

// Standard allocates from the Go heap and never pads columns.
type Standard struct{}

var _ Policy = Standard{}

// Allocate returns a zero-filled heap buffer of size bytes.
func (Standard) Allocate(size int) ([]byte, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}

	return make([]byte, size), nil
}

// Deallocate is a no-op; the garbage collector reclaims heap buffers.
func (Standard) Deallocate([]byte) {}

// Copy copies src into dst.
func (Standard) Copy(dst, src []byte) {
	copyBytes(dst, src)
}

// Compare reports whether lhs and rhs are byte-wise equal.
func (Standard) Compare(lhs, rhs []byte) bool {
	return compareBytes(lhs, rhs)
}

// ResizeHint returns count unchanged.
func (Standard) ResizeHint(count, _ int) (int, error) {
	return count, nil
}

// Boundary returns the word alignment guaranteed by the Go allocator.
func (Standard) Boundary() int {
	return 8
}
