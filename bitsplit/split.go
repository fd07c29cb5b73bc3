package bitsplit

import (
	"fmt"

	"github.com/arloliu/planar/alloc"
	"github.com/arloliu/planar/block"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// Plane selects one of the three column groups of a split block.
type Plane uint8

const (
	Sign Plane = iota
	Exponent
	Mantissa
)

func (p Plane) String() string {
	switch p {
	case Sign:
		return "sign"
	case Exponent:
		return "exponent"
	case Mantissa:
		return "mantissa"
	default:
		return "unknown"
	}
}

// Split decomposes every element of b into a new block of bit planes.
//
// The result has 3*b.Dim0() logical columns, b.Rows() rows, the same
// allocator policy and b's configuration with the split layout.
//
// Returns errs.ErrCompressed for a compressed block and errs.ErrEmptyBlock for an empty one.
func Split[F Float, U Bits, A alloc.Policy](l Layout[F, U], b *block.Block[F, A]) (*block.Block[U, A], error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if b.IsEmpty() {
		return nil, errs.ErrEmptyBlock
	}
	if b.IsCompressed() {
		return nil, errs.ErrCompressed
	}

	d := b.Dim0()
	out, err := block.New[U, A](3*d, b.Rows(), block.WithConfig(b.Config()), block.WithLayout(format.LayoutSplit))
	if err != nil {
		return nil, fmt.Errorf("bitsplit: allocate split block: %w", err)
	}

	for j := range b.Rows() {
		src := b.Row(j)
		dst := out.Row(j)
		for i, v := range src {
			dst[i], dst[i+d], dst[i+2*d] = l.Decompose(v)
		}
	}

	return out, nil
}

// Unsplit reassembles the float block that Split produced s from.
//
// Returns errs.ErrShapeMismatch if s.Dim0() is not a multiple of 3,
// errs.ErrInvalidPlaneValue if a plane value exceeds its field width,
// and errs.ErrCompressed for a compressed block.
func Unsplit[F Float, U Bits, A alloc.Policy](l Layout[F, U], s *block.Block[U, A]) (*block.Block[F, A], error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if s.IsEmpty() {
		return nil, errs.ErrEmptyBlock
	}
	if s.IsCompressed() {
		return nil, errs.ErrCompressed
	}
	if s.Dim0()%3 != 0 {
		return nil, fmt.Errorf("%w: split block has %d columns, not a multiple of 3", errs.ErrShapeMismatch, s.Dim0())
	}

	d := s.Dim0() / 3
	out, err := block.New[F, A](d, s.Rows(), block.WithConfig(s.Config()), block.WithLayout(format.LayoutDense))
	if err != nil {
		return nil, fmt.Errorf("bitsplit: allocate float block: %w", err)
	}

	for j := range s.Rows() {
		src := s.Row(j)
		dst := out.Row(j)
		for i := range dst {
			v, err := l.Compose(src[i], src[i+d], src[i+2*d])
			if err != nil {
				out.Release()
				return nil, fmt.Errorf("bitsplit: column %d row %d: %w", i, j, err)
			}
			dst[i] = v
		}
	}

	return out, nil
}

// ExtractPlane copies one plane of a split block into its own block with
// s.Dim0()/3 columns, for compressing the planes separately.
func ExtractPlane[U Bits, A alloc.Policy](s *block.Block[U, A], p Plane) (*block.Block[U, A], error) {
	if s.IsEmpty() {
		return nil, errs.ErrEmptyBlock
	}
	if s.IsCompressed() {
		return nil, errs.ErrCompressed
	}
	if s.Dim0()%3 != 0 {
		return nil, fmt.Errorf("%w: split block has %d columns, not a multiple of 3", errs.ErrShapeMismatch, s.Dim0())
	}
	if p > Mantissa {
		return nil, fmt.Errorf("%w: plane %d", errs.ErrOutOfRange, p)
	}

	d := s.Dim0() / 3
	out, err := block.New[U, A](d, s.Rows(), block.WithConfig(s.Config()))
	if err != nil {
		return nil, fmt.Errorf("bitsplit: allocate %s plane: %w", p, err)
	}

	off := int(p) * d
	for j := range s.Rows() {
		copy(out.Row(j), s.Row(j)[off:off+d])
	}

	return out, nil
}

// Split32 splits a float32 block with the Float32 layout.
func Split32[A alloc.Policy](b *block.Block[float32, A]) (*block.Block[uint32, A], error) {
	return Split(Float32, b)
}

// Unsplit32 reverses Split32.
func Unsplit32[A alloc.Policy](s *block.Block[uint32, A]) (*block.Block[float32, A], error) {
	return Unsplit(Float32, s)
}

// Split64 splits a float64 block with the Float64 layout.
func Split64[A alloc.Policy](b *block.Block[float64, A]) (*block.Block[uint64, A], error) {
	return Split(Float64, b)
}

// Unsplit64 reverses Split64.
func Unsplit64[A alloc.Policy](s *block.Block[uint64, A]) (*block.Block[float64, A], error) {
	return Unsplit(Float64, s)
}
