package alloc

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/planar/errs"
)

const (
	// Boundary16 matches SSE and NEON registers.
	Boundary16 = 16
	// Boundary32 matches AVX and AVX2 registers.
	Boundary32 = 32
	// Boundary64 matches AVX-512 registers and a typical cache line.
	Boundary64 = 64
)

// Aligned16 returns 16-byte aligned buffers and pads columns to 16-byte registers.
type Aligned16 struct{}

// Aligned32 returns 32-byte aligned buffers and pads columns to 32-byte registers.
type Aligned32 struct{}

// Aligned64 returns 64-byte aligned buffers and pads columns to 64-byte registers.
type Aligned64 struct{}

var (
	_ Policy = Aligned16{}
	_ Policy = Aligned32{}
	_ Policy = Aligned64{}
)

func (Aligned16) Allocate(size int) ([]byte, error) { return alignedAllocate(size, Boundary16) }
func (Aligned16) Deallocate([]byte)                 {}
func (Aligned16) Copy(dst, src []byte)              { copyBytes(dst, src) }
func (Aligned16) Compare(lhs, rhs []byte) bool      { return compareBytes(lhs, rhs) }
func (Aligned16) Boundary() int                     { return Boundary16 }

func (Aligned16) ResizeHint(count, elemSize int) (int, error) {
	return alignedResizeHint(count, elemSize, Boundary16)
}

func (Aligned32) Allocate(size int) ([]byte, error) { return alignedAllocate(size, Boundary32) }
func (Aligned32) Deallocate([]byte)                 {}
func (Aligned32) Copy(dst, src []byte)              { copyBytes(dst, src) }
func (Aligned32) Compare(lhs, rhs []byte) bool      { return compareBytes(lhs, rhs) }
func (Aligned32) Boundary() int                     { return Boundary32 }

func (Aligned32) ResizeHint(count, elemSize int) (int, error) {
	return alignedResizeHint(count, elemSize, Boundary32)
}

func (Aligned64) Allocate(size int) ([]byte, error) { return alignedAllocate(size, Boundary64) }
func (Aligned64) Deallocate([]byte)                 {}
func (Aligned64) Copy(dst, src []byte)              { copyBytes(dst, src) }
func (Aligned64) Compare(lhs, rhs []byte) bool      { return compareBytes(lhs, rhs) }
func (Aligned64) Boundary() int                     { return Boundary64 }

func (Aligned64) ResizeHint(count, elemSize int) (int, error) {
	return alignedResizeHint(count, elemSize, Boundary64)
}

// alignedAllocate over-allocates a heap buffer by boundary-1 bytes and returns
// the sub-slice that starts on the boundary. The capacity is clipped so that
// appends can never write into the slack.
func alignedAllocate(size, boundary int) ([]byte, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}

	buf := make([]byte, size+boundary-1)
	addr := uintptr(unsafe.Pointer(&buf[0]))

	offset := 0
	if mod := int(addr % uintptr(boundary)); mod != 0 {
		offset = boundary - mod
	}

	aligned := buf[offset : offset+size : offset+size]
	if !IsAligned(aligned, boundary) {
		return nil, fmt.Errorf("%w: address %#x not on %d-byte boundary",
			errs.ErrAllocationFailed, uintptr(unsafe.Pointer(&aligned[0])), boundary)
	}

	return aligned, nil
}

// alignedResizeHint pads count to the next whole register, always adding one
// register of tail room even for exact multiples.
func alignedResizeHint(count, elemSize, boundary int) (int, error) {
	if elemSize <= 0 || elemSize > boundary {
		return 0, fmt.Errorf("%w: element size %d, boundary %d", errs.ErrUsage, elemSize, boundary)
	}

	perRegister := boundary / elemSize

	return (count/perRegister + 1) * perRegister, nil
}

// IsAligned reports whether the first byte of buf sits on the given boundary.
// Empty buffers are never aligned.
func IsAligned(buf []byte, boundary int) bool {
	if len(buf) == 0 || boundary <= 0 {
		return false
	}

	return uintptr(unsafe.Pointer(&buf[0]))%uintptr(boundary) == 0
}
