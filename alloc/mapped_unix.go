//go:build linux || darwin

package alloc

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/arloliu/planar/errs"
)

// Mapped allocates page-aligned anonymous memory with mmap.
//
// The memory lives outside the Go heap: every buffer must be released with
// Deallocate or it leaks for the lifetime of the process.
type Mapped struct{}

var _ Policy = Mapped{}

// Allocate maps size bytes of private anonymous memory. The kernel hands out
// zero-filled pages.
func (Mapped) Allocate(size int) ([]byte, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}

	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %w", errs.ErrAllocationFailed, size, err)
	}

	return buf, nil
}

// Deallocate unmaps a buffer returned by Allocate. buf must be the exact slice
// Allocate returned, not a sub-slice.
func (Mapped) Deallocate(buf []byte) {
	if len(buf) == 0 {
		return
	}

	_ = unix.Munmap(buf)
}

// Copy copies src into dst.
func (Mapped) Copy(dst, src []byte) {
	copyBytes(dst, src)
}

// Compare reports whether lhs and rhs are byte-wise equal.
func (Mapped) Compare(lhs, rhs []byte) bool {
	return compareBytes(lhs, rhs)
}

// ResizeHint returns count unchanged; page alignment needs no column padding.
func (Mapped) ResizeHint(count, _ int) (int, error) {
	return count, nil
}

// Boundary returns the system page size.
func (Mapped) Boundary() int {
	return unix.Getpagesize()
}
