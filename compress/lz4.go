package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/planar/format"
)

// lz4CompressorPool pools lz4.Compressor instances; each keeps a hash table worth reusing.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor uses raw LZ4 blocks without the frame format.
//
// An LZ4 block does not record its decoded size, so Decompress has to guess
// and retry. Blocks always know their raw size and go through DecompressTo.
type LZ4Compressor struct{}

var (
	_ Codec             = (*LZ4Compressor)(nil)
	_ SizedDecompressor = (*LZ4Compressor)(nil)
	_ DecodedLenBounder = (*LZ4Compressor)(nil)
)

// Each extra length byte of an LZ4 sequence adds at most 255 output bytes.
const (
	lz4MaxRatio = 255
	lz4Slack    = 64
)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress compresses the input data into a buffer sized by lz4.CompressBlockBound.
//
// Returns:
//   - []byte: Compressed data (nil if input is empty)
//   - error: errs.ErrBufferTooSmall if the bound was insufficient, errs.ErrBackend otherwise
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, tooSmallErr("lz4", len(data), len(dst))
		}

		return nil, backendErr("lz4", err)
	}

	return dst[:n], nil
}

// Decompress decompresses the input data when the decoded size is unknown.
//
// It starts with a buffer 4x the compressed size and doubles it on
// ErrInvalidSourceShortBuffer, up to a 128MB limit.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, corruptErr("lz4", err)
		}

		return buf[:n], nil
	}

	return nil, corruptErr("lz4", lz4.ErrInvalidSourceShortBuffer)
}

// DecompressTo decodes src into dst, which must hold the exact uncompressed size.
func (c LZ4Compressor) DecompressTo(dst, src []byte) (int, error) {
	if len(src) == 0 {
		if len(dst) != 0 {
			return 0, sizeMismatchErr("lz4", len(dst), 0)
		}

		return 0, nil
	}

	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return 0, tooSmallErr("lz4", len(dst)+1, len(dst))
		}

		return 0, corruptErr("lz4", err)
	}

	if n != len(dst) {
		return 0, sizeMismatchErr("lz4", len(dst), n)
	}

	return n, nil
}

// MaxDecodedLen returns the largest output an LZ4 block of len(src) bytes
// can expand to.
func (c LZ4Compressor) MaxDecodedLen(src []byte) (int, error) {
	return expansionBound(len(src), lz4MaxRatio, lz4Slack), nil
}
