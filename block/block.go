package block

import (
	"fmt"
	"math"

	"github.com/arloliu/planar/alloc"
	"github.com/arloliu/planar/compress"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// State is the representation currently held by a block's buffer.
type State uint8

const (
	Raw        State = iota // Raw means the buffer holds typed elements.
	Compressed              // Compressed means the buffer holds codec output.
)

func (s State) String() string {
	switch s {
	case Raw:
		return "Raw"
	case Compressed:
		return "Compressed"
	default:
		return "Unknown"
	}
}

// Block is a dense rows x cols buffer of T whose storage comes from the
// allocator policy A.
//
// The zero value is an empty block that ReadFrom, UnmarshalBinary or Assign
// can fill.
type Block[T Element, A alloc.Policy] struct {
	alloc A

	rows int
	cols int
	dim0 int

	data  []byte
	elems []T

	state     State
	codecType format.CompressionType
	stats     compress.CompressionStats

	cfg Config
}

// New creates a zero-filled block with cols logical columns and rows rows.
//
// The allocated column count is A.ResizeHint(cols, SizeOf[T]()).
//
// Returns:
//   - errs.ErrInvalidArgument if cols or rows is not positive or the size overflows
//   - errs.ErrUsage if T is wider than the allocator's alignment boundary
func New[T Element, A alloc.Policy](cols, rows int, opts ...Option) (*Block[T, A], error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newBlock[T, A](cols, rows, cfg)
}

// Default creates a 1x1 block.
func Default[T Element, A alloc.Policy](opts ...Option) (*Block[T, A], error) {
	return New[T, A](1, 1, opts...)
}

func newBlock[T Element, A alloc.Policy](cols, rows int, cfg Config) (*Block[T, A], error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", errs.ErrInvalidArgument, cols, rows)
	}

	var a A
	elemSize := SizeOf[T]()

	padded, err := a.ResizeHint(cols, elemSize)
	if err != nil {
		return nil, fmt.Errorf("block: resize hint for %d columns: %w", cols, err)
	}

	size, err := byteSize(padded, rows, elemSize)
	if err != nil {
		return nil, err
	}

	data, err := a.Allocate(size)
	if err != nil {
		return nil, fmt.Errorf("block: allocate %dx%d: %w", padded, rows, err)
	}

	return &Block[T, A]{
		alloc: a,
		rows:  rows,
		cols:  padded,
		dim0:  cols,
		data:  data,
		elems: view[T](data),
		state: Raw,
		cfg:   cfg,
	}, nil
}

// byteSize returns cols*rows*elemSize, or errs.ErrInvalidArgument when it
// overflows an int.
func byteSize(cols, rows, elemSize int) (int, error) {
	if cols > math.MaxInt/elemSize/rows {
		return 0, fmt.Errorf("%w: %dx%d elements of %d bytes overflow", errs.ErrInvalidArgument, cols, rows, elemSize)
	}

	return cols * rows * elemSize, nil
}

// Rows returns the row count.
func (b *Block[T, A]) Rows() int { return b.rows }

// Cols returns the allocated column count, including padding.
func (b *Block[T, A]) Cols() int { return b.cols }

// Dim0 returns the logical column count.
func (b *Block[T, A]) Dim0() int { return b.dim0 }

// Size returns the byte length of the buffer as currently stored.
// While compressed this is the compressed size.
func (b *Block[T, A]) Size() int { return len(b.data) }

// RawSize returns the uncompressed byte size, SizeOf[T]() * Cols() * Rows().
func (b *Block[T, A]) RawSize() int { return b.rows * b.cols * SizeOf[T]() }

func (b *Block[T, A]) IsCompressed() bool { return b.state == Compressed }

func (b *Block[T, A]) State() State { return b.state }

// IsEmpty reports whether the block owns no storage, after Move or Release.
func (b *Block[T, A]) IsEmpty() bool { return b.data == nil }

// Bytes returns the current buffer without copying. The block retains ownership.
func (b *Block[T, A]) Bytes() []byte { return b.data }

// Config returns the block configuration.
func (b *Block[T, A]) Config() Config { return b.cfg.normalized() }

// Stats returns the statistics of the last Compress or Uncompress.
func (b *Block[T, A]) Stats() compress.CompressionStats { return b.stats }

// CompressionType returns the codec that produced the compressed bytes, or
// the configured codec while the block is raw.
func (b *Block[T, A]) CompressionType() format.CompressionType {
	if b.state == Compressed {
		return b.codecType
	}

	return b.Config().Codec().Type()
}

// Resize changes the block dimensions, keeping the values in the overlapping
// rectangle. It is a no-op when the dimensions are unchanged.
func (b *Block[T, A]) Resize(cols, rows int) error {
	if cols == b.dim0 && rows == b.rows {
		return nil
	}
	if b.state == Compressed {
		return errs.ErrCompressed
	}

	tmp, err := newBlock[T, A](cols, rows, b.Config())
	if err != nil {
		return err
	}

	elemSize := SizeOf[T]()
	width := min(cols, b.dim0) * elemSize
	for j := range min(rows, b.rows) {
		src := b.data[j*b.cols*elemSize:]
		dst := tmp.data[j*tmp.cols*elemSize:]
		b.alloc.Copy(dst[:width], src[:width])
	}

	b.Assign(tmp)

	return nil
}

// Clone returns a deep copy of the block. A compressed block is copied as
// compressed bytes.
func (b *Block[T, A]) Clone() (*Block[T, A], error) {
	out := &Block[T, A]{
		rows:      b.rows,
		cols:      b.cols,
		dim0:      b.dim0,
		state:     b.state,
		codecType: b.codecType,
		stats:     b.stats,
		cfg:       b.cfg,
	}

	if b.data == nil {
		return out, nil
	}

	data, err := b.alloc.Allocate(len(b.data))
	if err != nil {
		return nil, fmt.Errorf("block: clone: %w", err)
	}
	b.alloc.Copy(data, b.data)

	out.data = data
	if b.state == Raw {
		out.elems = view[T](data)
	}

	return out, nil
}

// Move transfers the block's storage and state to a new Block and leaves b
// empty: nil buffer and zero dimensions. b keeps its configuration.
func (b *Block[T, A]) Move() *Block[T, A] {
	out := &Block[T, A]{}
	*out = *b
	b.reset()

	return out
}

// Assign releases b's storage and takes over src's, leaving src empty.
func (b *Block[T, A]) Assign(src *Block[T, A]) {
	if src == b {
		return
	}

	b.Release()
	*b = *src
	src.reset()
}

// Release returns the buffer to the allocator and empties the block.
// It does nothing on an empty block.
func (b *Block[T, A]) Release() {
	if b.data == nil {
		return
	}

	b.alloc.Deallocate(b.data)
	b.reset()
}

func (b *Block[T, A]) reset() {
	*b = Block[T, A]{cfg: b.cfg}
}
