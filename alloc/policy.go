package alloc

import (
	"bytes"
	"fmt"

	"github.com/arloliu/planar/errs"
)

// Policy is the capability set a block needs from its storage allocator.
//
// Implementations must be stateless so that the zero value is ready to use.
type Policy interface {
	// Allocate returns a zero-filled buffer of exactly size bytes.
	//
	// Returns errs.ErrInvalidArgument when size is zero or negative.
	Allocate(size int) ([]byte, error)

	// Deallocate releases a buffer previously returned by Allocate.
	// Releasing the same buffer twice is undefined.
	Deallocate(buf []byte)

	// Copy copies len(src) bytes from src into dst. The buffers must not overlap.
	Copy(dst, src []byte)

	// Compare reports whether lhs and rhs hold the same bytes.
	Compare(lhs, rhs []byte) bool

	// ResizeHint returns the allocated column count for a logical column
	// count of elements that are elemSize bytes wide.
	ResizeHint(count, elemSize int) (int, error)

	// Boundary returns the byte alignment of buffers returned by Allocate.
	Boundary() int
}

// validateSize rejects zero and negative allocation sizes.
func validateSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidArgument, size)
	}

	return nil
}

// copyBytes is the shared Copy implementation.
func copyBytes(dst, src []byte) {
	copy(dst, src)
}

// compareBytes is the shared Compare implementation.
func compareBytes(lhs, rhs []byte) bool {
	return bytes.Equal(lhs, rhs)
}

// FirstMismatch returns the offset of the first byte that differs between lhs
// and rhs, or -1 when they are equal. A length difference counts as a mismatch
// at the shorter length.
func FirstMismatch(lhs, rhs []byte) int {
	n := min(len(lhs), len(rhs))
	for i := range n {
		if lhs[i] != rhs[i] {
			return i
		}
	}

	if len(lhs) != len(rhs) {
		return n
	}

	return -1
}
