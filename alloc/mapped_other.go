//go:build !linux && !darwin

package alloc

// Mapped falls back to page-aligned heap buffers on platforms without the
// unix mmap interface.
type Mapped struct{}

var _ Policy = Mapped{}

const fallbackPageSize = 4096

func (Mapped) Allocate(size int) ([]byte, error)    { return alignedAllocate(size, fallbackPageSize) }
func (Mapped) Deallocate([]byte)                    {}
func (Mapped) Copy(dst, src []byte)                 { copyBytes(dst, src) }
func (Mapped) Compare(lhs, rhs []byte) bool         { return compareBytes(lhs, rhs) }
func (Mapped) ResizeHint(count, _ int) (int, error) { return count, nil }
func (Mapped) Boundary() int                        { return fallbackPageSize }
