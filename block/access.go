package block

import (
	"fmt"

	"github.com/arloliu/planar/errs"
)

// At returns element (i, j) without bounds or state checks.
// It panics if the block is compressed or the offset is outside the buffer.
func (b *Block[T, A]) At(i, j int) T {
	return b.elems[i+j*b.cols]
}

// Set stores v at (i, j) without bounds or state checks.
func (b *Block[T, A]) Set(i, j int, v T) {
	b.elems[i+j*b.cols] = v
}

// Ref returns a pointer to element (i, j) without bounds or state checks.
// The pointer is invalidated by Compress, Resize, Move, Assign and Release.
func (b *Block[T, A]) Ref(i, j int) *T {
	return &b.elems[i+j*b.cols]
}

// Get returns element (i, j).
//
// Returns errs.ErrCompressed if the block is compressed and errs.ErrOutOfRange
// if i >= Dim0() or j >= Rows().
func (b *Block[T, A]) Get(i, j int) (T, error) {
	if err := b.checkIndex(i, j); err != nil {
		var zero T
		return zero, err
	}

	return b.elems[i+j*b.cols], nil
}

// Put stores v at (i, j) with the same checks as Get.
func (b *Block[T, A]) Put(i, j int, v T) error {
	if err := b.checkIndex(i, j); err != nil {
		return err
	}
	b.elems[i+j*b.cols] = v

	return nil
}

func (b *Block[T, A]) checkIndex(i, j int) error {
	if b.state == Compressed {
		return errs.ErrCompressed
	}
	if i < 0 || i >= b.dim0 || j < 0 || j >= b.rows {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", errs.ErrOutOfRange, i, j, b.dim0, b.rows)
	}

	return nil
}

// Row returns the Dim0() logical elements of row j, aliasing the block's buffer.
// Like At it is unchecked.
func (b *Block[T, A]) Row(j int) []T {
	off := j * b.cols
	return b.elems[off : off+b.dim0 : off+b.dim0]
}

// Fill sets every logical element to v. Padding stays zero.
func (b *Block[T, A]) Fill(v T) error {
	if b.state == Compressed {
		return errs.ErrCompressed
	}

	for j := range b.rows {
		row := b.Row(j)
		for i := range row {
			row[i] = v
		}
	}

	return nil
}
