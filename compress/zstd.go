package compress

import (
	"math"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/planar/format"
)

// ZstdCompressor provides Zstandard compression.
//
// Zstd gives the best ratio of the built-in codecs on the exponent and sign
// planes of a split block, which are dominated by long runs. It is slower
// than S2 and LZ4 on the compress side.
//
// The default build uses the pure Go klauspost/compress implementation. Building
// with the "gozstd" tag and cgo enabled switches to the libzstd binding.
type ZstdCompressor struct{}

var (
	_ Codec             = (*ZstdCompressor)(nil)
	_ SizedDecompressor = (*ZstdCompressor)(nil)
	_ DecodedLenBounder = (*ZstdCompressor)(nil)
)

// A zstd block holds at most 128 KiB and an RLE block encodes that in 4 bytes.
const (
	zstdMaxRatio = 32 << 10
	zstdSlack    = 128 << 10
)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}

// MaxDecodedLen returns the content size recorded in the frame header, or
// the worst-case expansion when the frame omits it.
func (c ZstdCompressor) MaxDecodedLen(src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	var h zstd.Header
	if err := h.Decode(src); err != nil {
		return 0, corruptErr("zstd", err)
	}

	if h.HasFCS {
		if h.FrameContentSize > math.MaxInt {
			return 0, corruptErr("zstd", zstd.ErrFrameSizeExceeded)
		}

		return int(h.FrameContentSize), nil
	}

	return expansionBound(len(src), zstdMaxRatio, zstdSlack), nil
}
