// Package planar stores dense numeric matrices in compact, compressible form.
//
// The building blocks live in sub-packages:
//
//   - block: Block[T, A], a typed 2D buffer with an allocator policy A and a
//     pluggable compression codec
//   - alloc: allocator policies (Standard, Aligned16/32/64, Mapped)
//   - compress: zlib, zstd, s2, lz4 and identity codecs
//   - bitsplit: the sign/exponent/mantissa plane transform for float blocks
//   - frame: the binary container for a single block
//
// This package wires them together for the common float pipeline: split a
// float block into bit planes, compress the planes and frame the result.
//
//	b, _ := planar.ParseFloat64("2,3\n1,2\n3,4\n5,6")
//	data, _ := planar.Pack64(b)
//	back, _ := planar.Unpack64(data)
//
// For other element types or allocators use the block package directly.
package planar

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/planar/alloc"
	"github.com/arloliu/planar/bitsplit"
	"github.com/arloliu/planar/block"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/frame"
)

// DefaultPolicy is the allocator used by the convenience constructors.
type DefaultPolicy = alloc.Aligned32

type (
	Float64Block = block.Block[float64, DefaultPolicy]
	Float32Block = block.Block[float32, DefaultPolicy]
)

// NewFloat64Block creates a zero-filled float64 block.
func NewFloat64Block(cols, rows int, opts ...block.Option) (*Float64Block, error) {
	return block.New[float64, DefaultPolicy](cols, rows, opts...)
}

// NewFloat32Block creates a zero-filled float32 block.
func NewFloat32Block(cols, rows int, opts ...block.Option) (*Float32Block, error) {
	return block.New[float32, DefaultPolicy](cols, rows, opts...)
}

// ParseFloat64 parses the text form of a float64 block.
func ParseFloat64(text string, opts ...block.Option) (*Float64Block, error) {
	return block.Parse[float64, DefaultPolicy](text, opts...)
}

// ParseFloat32 parses the text form of a float32 block.
func ParseFloat32(text string, opts ...block.Option) (*Float32Block, error) {
	return block.Parse[float32, DefaultPolicy](text, opts...)
}

// Pack64 splits b into bit planes, compresses them with b's codec and
// returns the framed bytes. b is left unchanged.
func Pack64(b *Float64Block) ([]byte, error) {
	return pack(bitsplit.Float64, b)
}

// Pack32 is Pack64 for float32 blocks.
func Pack32(b *Float32Block) ([]byte, error) {
	return pack(bitsplit.Float32, b)
}

// WritePacked64 writes the frame Pack64 would return to w.
func WritePacked64(w io.Writer, b *Float64Block) (int64, error) {
	return packTo(w, bitsplit.Float64, b)
}

// WritePacked32 is WritePacked64 for float32 blocks.
func WritePacked32(w io.Writer, b *Float32Block) (int64, error) {
	return packTo(w, bitsplit.Float32, b)
}

// Unpack64 decodes a frame written by Pack64 or by a float64 block's
// MarshalBinary and returns the raw float block. opts configure the
// returned block; the frame decides its layout.
func Unpack64(data []byte, opts ...block.Option) (*Float64Block, error) {
	h, payload, err := frame.Decode(data)
	if err != nil {
		return nil, err
	}

	return FromFrame64(h, payload, opts...)
}

// Unpack32 is Unpack64 for float32 frames.
func Unpack32(data []byte, opts ...block.Option) (*Float32Block, error) {
	h, payload, err := frame.Decode(data)
	if err != nil {
		return nil, err
	}

	return FromFrame32(h, payload, opts...)
}

// FromFrame64 is Unpack64 for a frame already separated into header and
// payload, as returned by frame.Read.
func FromFrame64(h frame.Header, payload []byte, opts ...block.Option) (*Float64Block, error) {
	return unpack(bitsplit.Float64, h, payload, opts)
}

// FromFrame32 is FromFrame64 for float32 frames.
func FromFrame32(h frame.Header, payload []byte, opts ...block.Option) (*Float32Block, error) {
	return unpack(bitsplit.Float32, h, payload, opts)
}

func pack[F bitsplit.Float, U bitsplit.Bits](l bitsplit.Layout[F, U], b *block.Block[F, DefaultPolicy]) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := packTo(&buf, l, b); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func packTo[F bitsplit.Float, U bitsplit.Bits](w io.Writer, l bitsplit.Layout[F, U], b *block.Block[F, DefaultPolicy]) (int64, error) {
	s, err := bitsplit.Split(l, b)
	if err != nil {
		return 0, err
	}
	defer s.Release()

	if err := s.Compress(); err != nil {
		return 0, err
	}

	return s.WriteFrame(w)
}

func unpack[F bitsplit.Float, U bitsplit.Bits](l bitsplit.Layout[F, U], h frame.Header, payload []byte, opts []block.Option) (*block.Block[F, DefaultPolicy], error) {
	if h.Flag.Layout() == format.LayoutDense {
		out, err := block.Default[F, DefaultPolicy](opts...)
		if err != nil {
			return nil, err
		}
		if err := out.DecodeFrame(h, payload); err != nil {
			out.Release()
			return nil, err
		}

		if err := uncompressed(out); err != nil {
			out.Release()
			return nil, err
		}

		return out, nil
	}

	if h.Flag.ElementKind != block.KindOf[U]() {
		return nil, fmt.Errorf("%w: split frame holds %s planes", errs.ErrElementKindMismatch, h.Flag.ElementKind)
	}

	s, err := block.Default[U, DefaultPolicy](opts...)
	if err != nil {
		return nil, err
	}
	defer s.Release()

	if err := s.DecodeFrame(h, payload); err != nil {
		return nil, err
	}

	if err := uncompressed(s); err != nil {
		return nil, err
	}

	return bitsplit.Unsplit(l, s)
}

func uncompressed[T block.Element, A alloc.Policy](b *block.Block[T, A]) error {
	if !b.IsCompressed() {
		return nil
	}

	return b.Uncompress()
}
