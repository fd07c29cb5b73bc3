package block

import (
	"encoding"
	"fmt"
	"io"

	"github.com/go-kit/log/level"

	"github.com/arloliu/planar/alloc"
	"github.com/arloliu/planar/compress"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/frame"
)

var (
	_ encoding.BinaryMarshaler   = (*Block[float64, alloc.Standard])(nil)
	_ encoding.BinaryUnmarshaler = (*Block[float64, alloc.Standard])(nil)
)

// Header returns the frame header describing the block's current state.
// PayloadSize and Checksum are left zero.
func (b *Block[T, A]) Header() frame.Header {
	h := frame.NewHeader(KindOf[T](), b.CompressionType(), b.dim0, b.rows, b.cols)
	h.Flag.SetLayout(b.Config().Layout())
	h.Flag.SetCompressed(b.state == Compressed)

	return h
}

// MarshalBinary encodes the block as a frame holding its current bytes.
// A compressed block is written compressed.
func (b *Block[T, A]) MarshalBinary() ([]byte, error) {
	if b.data == nil {
		return nil, errs.ErrEmptyBlock
	}

	return frame.Encode(b.Header(), b.data)
}

// WriteFrame writes the block to w as a frame holding its current bytes,
// the streaming counterpart of MarshalBinary.
func (b *Block[T, A]) WriteFrame(w io.Writer) (int64, error) {
	if b.data == nil {
		return 0, errs.ErrEmptyBlock
	}

	return frame.Write(w, b.Header(), b.data)
}

// UnmarshalBinary replaces the block with the one encoded in data.
// See DecodeFrame for the rules applied to the frame.
func (b *Block[T, A]) UnmarshalBinary(data []byte) error {
	h, payload, err := frame.Decode(data)
	if err != nil {
		return err
	}

	return b.DecodeFrame(h, payload)
}

// DecodeFrame replaces the block with the frame made of h and payload, as
// returned by frame.Decode or frame.Read. The payload checksum is not
// checked again.
//
// The frame must hold elements of type T, otherwise errs.ErrElementKindMismatch
// is returned. Shapes whose raw size overflows, exceeds the configured
// MaxRawSize, or exceeds what the compressed payload can decode to fail with
// errs.ErrInvalidFormat before any allocation. When the frame was written
// with a different column padding than A produces, the payload is
// decompressed and re-laid out, leaving the block raw.
func (b *Block[T, A]) DecodeFrame(h frame.Header, payload []byte) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if uint64(len(payload)) != h.PayloadSize {
		return fmt.Errorf("%w: header declares %d payload bytes, have %d", errs.ErrInvalidFormat, h.PayloadSize, len(payload))
	}

	if kind := KindOf[T](); h.Flag.ElementKind != kind {
		return fmt.Errorf("%w: frame holds %s, block is %s", errs.ErrElementKindMismatch, h.Flag.ElementKind, kind)
	}

	cfg := b.Config()
	cfg.layout = h.Flag.Layout()

	dim0, rows := int(h.Dim0), int(h.Rows)
	if dim0 == 0 || rows == 0 {
		return fmt.Errorf("%w: frame dimensions %dx%d", errs.ErrInvalidFormat, dim0, rows)
	}

	padded, err := b.alloc.ResizeHint(dim0, SizeOf[T]())
	if err != nil {
		return fmt.Errorf("block: resize hint for %d columns: %w", dim0, err)
	}

	rawSize, err := checkFrameSize(h, payload, max(padded, int(h.Cols)), SizeOf[T](), cfg)
	if err != nil {
		return err
	}

	if padded != int(h.Cols) {
		return b.relayout(h, payload, rawSize, cfg)
	}

	buf, err := b.alloc.Allocate(len(payload))
	if err != nil {
		return fmt.Errorf("block: allocate frame payload: %w", err)
	}
	b.alloc.Copy(buf, payload)

	out := &Block[T, A]{
		rows: rows,
		cols: padded,
		dim0: dim0,
		data: buf,
		cfg:  cfg,
	}
	if h.Flag.IsCompressed() {
		out.state = Compressed
		out.codecType = h.Flag.CompressionType
	} else {
		out.elems = view[T](buf)
	}

	b.Assign(out)

	return nil
}

// checkFrameSize bounds the memory a frame can make the block allocate and
// returns the frame's raw payload size. cols is the wider of the frame's
// padding and the block's own.
func checkFrameSize(h frame.Header, payload []byte, cols, elemSize int, cfg Config) (int, error) {
	rows := int(h.Rows)

	size, err := byteSize(cols, rows, elemSize)
	if err != nil {
		return 0, fmt.Errorf("%w: frame shape: %w", errs.ErrInvalidFormat, err)
	}
	if size > cfg.MaxRawSize() {
		return 0, fmt.Errorf("%w: frame needs %d raw bytes, limit is %d", errs.ErrInvalidFormat, size, cfg.MaxRawSize())
	}

	rawSize := h.RawSize()
	if !h.Flag.IsCompressed() {
		return rawSize, nil
	}

	codec, err := compress.GetCodec(h.Flag.CompressionType)
	if err != nil {
		return 0, err
	}

	bound, ok, err := compress.MaxDecodedLen(codec, payload)
	if err != nil {
		return 0, fmt.Errorf("%w: frame payload: %w", errs.ErrInvalidFormat, err)
	}
	if ok && rawSize > bound {
		return 0, fmt.Errorf("%w: frame declares %d raw bytes, %d byte %s payload holds at most %d",
			errs.ErrInvalidFormat, rawSize, len(payload), h.Flag.CompressionType, bound)
	}

	return rawSize, nil
}

// relayout copies a frame written with a different column padding into a
// fresh raw block.
func (b *Block[T, A]) relayout(h frame.Header, payload []byte, rawSize int, cfg Config) error {
	raw := payload
	if h.Flag.IsCompressed() {
		codec, err := compress.GetCodec(h.Flag.CompressionType)
		if err != nil {
			return err
		}

		raw = make([]byte, rawSize)
		if err := compress.DecompressInto(codec, raw, payload); err != nil {
			return fmt.Errorf("block: uncompress frame payload: %w", err)
		}
	}

	tmp, err := newBlock[T, A](int(h.Dim0), int(h.Rows), cfg)
	if err != nil {
		return err
	}

	elemSize := SizeOf[T]()
	width := int(h.Dim0) * elemSize
	for j := range tmp.rows {
		src := raw[j*int(h.Cols)*elemSize:]
		dst := tmp.data[j*tmp.cols*elemSize:]
		tmp.alloc.Copy(dst[:width], src[:width])
	}

	level.Debug(cfg.Logger()).Log("msg", "frame column padding differs from allocator, payload re-laid out",
		"frame_cols", h.Cols, "block_cols", tmp.cols, "allocator", alloc.Name(tmp.alloc))

	b.Assign(tmp)

	return nil
}
