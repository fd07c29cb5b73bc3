package compress

import (
	"fmt"
	"math"
	"time"
	"unsafe"

	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// Compressor compresses a block's raw byte buffer.
//
// Compress returns the compressed bytes as a new buffer; the new size is
// len(result). The input slice is never modified and the result never aliases
// it, so the caller may release the input immediately afterwards.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Decompress returns a newly allocated buffer holding the original bytes.
// The input slice is not modified.
//
// Error conditions:
//   - errs.ErrCorruptData if the input is malformed
//   - errs.ErrBackend for any other backend failure
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor is implemented by decompressors that can write straight
// into a caller-owned buffer whose length is the exact uncompressed size.
//
// DecompressTo returns the number of bytes written, which equals len(dst) on
// success. It fails with errs.ErrBufferTooSmall when the data decompresses to
// more than len(dst) bytes and errs.ErrSizeMismatch when it decompresses to fewer.
type SizedDecompressor interface {
	DecompressTo(dst, src []byte) (int, error)
}

// DecodedLenBounder is implemented by codecs that can tell, from the
// compressed bytes alone, the most bytes src can decompress to.
//
// The bound lets a caller reject a declared raw size before allocating for
// it. Codecs whose streams record their length return that length; the rest
// return their worst-case expansion.
type DecodedLenBounder interface {
	MaxDecodedLen(src []byte) (int, error)
}

// MaxDecodedLen returns d's bound for src. ok is false when d cannot bound
// its output.
func MaxDecodedLen(d Decompressor, src []byte) (n int, ok bool, err error) {
	b, ok := d.(DecodedLenBounder)
	if !ok {
		return 0, false, nil
	}

	n, err = b.MaxDecodedLen(src)

	return n, true, err
}

// expansionBound returns n*ratio+slack, saturating at math.MaxInt.
func expansionBound(n, ratio, slack int) int {
	if n > (math.MaxInt-slack)/ratio {
		return math.MaxInt
	}

	return n*ratio + slack
}

// Codec combines both compression and decompression capabilities and reports
// the compression type it implements.
type Codec interface {
	Compressor
	Decompressor

	// Type returns the compression type recorded for data produced by this codec.
	Type() format.CompressionType
}

// DecompressInto decompresses src into dst, whose length must be the exact
// uncompressed size.
//
// Codecs implementing SizedDecompressor decompress in place; others fall back
// to Decompress followed by a length check and a copy.
func DecompressInto(d Decompressor, dst, src []byte) error {
	if sd, ok := d.(SizedDecompressor); ok {
		n, err := sd.DecompressTo(dst, src)
		if err != nil {
			return err
		}
		if n != len(dst) {
			return fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrSizeMismatch, len(dst), n)
		}

		return nil
	}

	out, err := d.Decompress(src)
	if err != nil {
		return err
	}

	return checkedCopy(dst, out)
}

// checkedCopy copies out into dst after verifying it has exactly len(dst) bytes.
func checkedCopy(dst, out []byte) error {
	switch {
	case len(out) > len(dst):
		return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrBufferTooSmall, len(out), len(dst))
	case len(out) < len(dst):
		return fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrSizeMismatch, len(dst), len(out))
	}

	if len(out) > 0 && unsafe.SliceData(out) != unsafe.SliceData(dst) {
		copy(dst, out)
	}

	return nil
}

// CompressionStats records the outcome of one compress or uncompress call.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// CompressionTimeNs is the time taken to compress the data
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data (if applicable)
	DecompressionTimeNs int64
}

// NewCompressionStats builds stats for a finished compression.
func NewCompressionStats(algo format.CompressionType, original, compressed int, elapsed time.Duration) CompressionStats {
	return CompressionStats{
		Algorithm:         algo,
		OriginalSize:      int64(original),
		CompressedSize:    int64(compressed),
		CompressionTimeNs: elapsed.Nanoseconds(),
	}
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
// Values greater than 1.0 indicate compression overhead, common for noisy mantissa planes.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
//
// Returns:
//   - float64: Space savings percentage, negative when compression grew the data
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or Zlib)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: errs.ErrUnsupportedCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionZlib:
		return NewZlibCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: invalid %s compression: %s", errs.ErrUnsupportedCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
	format.CompressionZlib: NewZlibCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}
