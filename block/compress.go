package block

import (
	"fmt"
	"time"

	"github.com/go-kit/log/level"

	"github.com/arloliu/planar/alloc"
	"github.com/arloliu/planar/compress"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// Compress replaces the raw elements with the configured codec's output.
//
// The compressed bytes are copied into a buffer from the allocator and the
// raw buffer is released. Size() reports the compressed size afterwards.
//
// Returns errs.ErrCompressed when already compressed, errs.ErrEmptyBlock on an
// empty block, or the codec error.
func (b *Block[T, A]) Compress() error {
	if b.data == nil {
		return errs.ErrEmptyBlock
	}
	if b.state == Compressed {
		return errs.ErrCompressed
	}

	cfg := b.Config()
	codec := cfg.Codec()

	start := time.Now()
	out, err := codec.Compress(b.data)
	if err != nil {
		return fmt.Errorf("block: compress with %s: %w", codec.Type(), err)
	}
	elapsed := time.Since(start)

	if codec.Type() == format.CompressionNone {
		level.Debug(cfg.Logger()).Log("msg", "identity codec in use, compressed bytes equal raw bytes", "bytes", len(out))
	}

	buf, err := b.alloc.Allocate(len(out))
	if err != nil {
		return fmt.Errorf("block: allocate compressed buffer: %w", err)
	}
	b.alloc.Copy(buf, out)

	rawSize := len(b.data)
	b.alloc.Deallocate(b.data)

	b.data = buf
	b.elems = nil
	b.state = Compressed
	b.codecType = codec.Type()
	b.stats = compress.NewCompressionStats(codec.Type(), rawSize, len(buf), elapsed)

	level.Debug(cfg.Logger()).Log("msg", "block compressed", "codec", codec.Type(),
		"raw_bytes", rawSize, "compressed_bytes", len(buf), "ratio", b.stats.CompressionRatio())

	return nil
}

// Uncompress restores the raw elements.
//
// The destination is allocated with exactly RawSize() bytes and the codec
// that produced the data decompresses straight into it. On failure the block
// stays compressed and unchanged.
//
// Returns errs.ErrNotCompressed on a raw block, errs.ErrEmptyBlock on an empty
// block, or the codec error.
func (b *Block[T, A]) Uncompress() error {
	if b.data == nil {
		return errs.ErrEmptyBlock
	}
	if b.state == Raw {
		return errs.ErrNotCompressed
	}

	cfg := b.Config()
	codec, err := b.decoder(cfg)
	if err != nil {
		return err
	}

	buf, err := b.alloc.Allocate(b.RawSize())
	if err != nil {
		return fmt.Errorf("block: allocate raw buffer: %w", err)
	}

	start := time.Now()
	if err := compress.DecompressInto(codec, buf, b.data); err != nil {
		b.alloc.Deallocate(buf)
		return fmt.Errorf("block: uncompress with %s: %w", b.codecType, err)
	}
	elapsed := time.Since(start)

	compressedSize := len(b.data)
	b.alloc.Deallocate(b.data)

	b.data = buf
	b.elems = view[T](buf)
	b.state = Raw
	b.stats.DecompressionTimeNs = elapsed.Nanoseconds()

	level.Debug(cfg.Logger()).Log("msg", "block uncompressed", "codec", b.codecType,
		"compressed_bytes", compressedSize, "raw_bytes", len(buf))

	return nil
}

// decoder returns the codec for the compressed bytes, preferring the
// configured instance when it produced them.
func (b *Block[T, A]) decoder(cfg Config) (compress.Codec, error) {
	if cfg.Codec().Type() == b.codecType {
		return cfg.Codec(), nil
	}

	return compress.GetCodec(b.codecType)
}

// Equal reports whether b and other hold the same dimensions and bytes.
//
// Both blocks must be in the same compression state, otherwise Equal returns
// errs.ErrStateMismatch. Compressed blocks compare equal only when their
// compressed bytes match, which requires the same codec. On a mismatch a
// warning with the first differing byte offset is logged.
//
// A nil other is reported as errs.ErrEmptyBlock.
func (b *Block[T, A]) Equal(other *Block[T, A]) (bool, error) {
	if other == nil {
		return false, fmt.Errorf("%w: nil block in comparison", errs.ErrEmptyBlock)
	}
	if b.state != other.state {
		return false, fmt.Errorf("%w: %s vs %s", errs.ErrStateMismatch, b.state, other.state)
	}

	logger := b.Config().Logger()

	if b.dim0 != other.dim0 || b.rows != other.rows || b.cols != other.cols {
		level.Warn(logger).Log("msg", "block dimensions differ",
			"lhs", fmt.Sprintf("%dx%d/%d", b.dim0, b.rows, b.cols),
			"rhs", fmt.Sprintf("%dx%d/%d", other.dim0, other.rows, other.cols))

		return false, nil
	}

	if len(b.data) != len(other.data) || !b.alloc.Compare(b.data, other.data) {
		level.Warn(logger).Log("msg", "block contents differ",
			"offset", alloc.FirstMismatch(b.data, other.data), "size", len(b.data), "state", b.state)

		return false, nil
	}

	return true, nil
}
