package compress

import "github.com/arloliu/planar/format"

// NoOpCompressor is the identity codec used when no compression backend is wanted.
//
// Unlike a pass-through that hands back its input, both directions return a
// copy. A block releases its raw buffer after compressing, so the "compressed"
// bytes must not alias it. The identity transform is its own inverse, which
// keeps a block's compressed flag truthful even with this codec.
type NoOpCompressor struct{}

var (
	_ Codec             = (*NoOpCompressor)(nil)
	_ SizedDecompressor = (*NoOpCompressor)(nil)
	_ DecodedLenBounder = (*NoOpCompressor)(nil)
)

// NewNoOpCompressor creates a new identity codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Type returns format.CompressionNone.
func (c NoOpCompressor) Type() format.CompressionType {
	return format.CompressionNone
}

// Compress returns a copy of data. Empty input yields nil.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return append([]byte(nil), data...), nil
}

// Decompress returns a copy of data. Empty input yields nil.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return append([]byte(nil), data...), nil
}

// DecompressTo copies src into dst, which must have exactly len(src) bytes.
func (c NoOpCompressor) DecompressTo(dst, src []byte) (int, error) {
	if err := checkedCopy(dst, src); err != nil {
		return 0, err
	}

	return len(src), nil
}

// MaxDecodedLen returns len(src).
func (c NoOpCompressor) MaxDecodedLen(src []byte) (int, error) {
	return len(src), nil
}
