package block

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/internal/pool"
)

// ColumnPermutation returns the order that sorts the logical columns by their
// value in pivotRow: perm[k] is the original index of the column that belongs
// at position k.
//
// The sort is stable, so columns with equal pivot values keep their relative
// order. Floats are ordered by cmp.Compare, which puts NaN first.
func (b *Block[T, A]) ColumnPermutation(pivotRow int) ([]int, error) {
	perm := make([]int, b.dim0)
	if err := b.columnPermutation(pivotRow, perm); err != nil {
		return nil, err
	}

	return perm, nil
}

func (b *Block[T, A]) columnPermutation(pivotRow int, perm []int) error {
	if b.state == Compressed {
		return errs.ErrCompressed
	}
	if pivotRow < 0 || pivotRow >= b.rows {
		return fmt.Errorf("%w: pivot row %d outside %d rows", errs.ErrOutOfRange, pivotRow, b.rows)
	}

	key := b.Row(pivotRow)
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(x, y int) int {
		return cmp.Compare(key[x], key[y])
	})

	return nil
}

// SortColumns permutes whole columns so that pivotRow becomes non-decreasing.
//
// Every other row is permuted the same way, so each column's values travel
// together. The permutation is applied in place by swapping columns.
//
// Returns errs.ErrCompressed on a compressed block and errs.ErrOutOfRange for
// an invalid pivot row.
func (b *Block[T, A]) SortColumns(pivotRow int) error {
	n := b.dim0

	perm, putPerm := pool.GetIntSlice(n)
	defer putPerm()

	if err := b.columnPermutation(pivotRow, perm); err != nil {
		return err
	}

	// pos[c] is the position currently holding original column c,
	// at[k] the original column currently at position k.
	pos, putPos := pool.GetIntSlice(n)
	defer putPos()
	at, putAt := pool.GetIntSlice(n)
	defer putAt()

	for i := range n {
		pos[i] = i
		at[i] = i
	}

	for k, want := range perm {
		src := pos[want]
		if src == k {
			continue
		}

		b.swapColumns(k, src)

		displaced := at[k]
		at[k], at[src] = want, displaced
		pos[want], pos[displaced] = k, src
	}

	return nil
}

func (b *Block[T, A]) swapColumns(x, y int) {
	for j := range b.rows {
		off := j * b.cols
		b.elems[off+x], b.elems[off+y] = b.elems[off+y], b.elems[off+x]
	}
}
