package compress

import (
	"errors"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/planar/format"
)

// S2Compressor is the fastest built-in codec, trading ratio for speed.
type S2Compressor struct{}

var (
	_ Codec             = (*S2Compressor)(nil)
	_ SizedDecompressor = (*S2Compressor)(nil)
	_ DecodedLenBounder = (*S2Compressor)(nil)
)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress compresses the input data using S2 block compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bound := s2.MaxEncodedLen(len(data))
	if bound < 0 {
		return nil, backendErr("s2", s2.ErrTooLarge)
	}

	return s2.Encode(make([]byte, bound), data), nil
}

// Decompress decompresses the input data using S2 block decompression.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, s2Err(err)
	}

	return out, nil
}

// DecompressTo decodes src into dst, which must hold the exact uncompressed size.
func (c S2Compressor) DecompressTo(dst, src []byte) (int, error) {
	if len(src) == 0 {
		if len(dst) != 0 {
			return 0, sizeMismatchErr("s2", len(dst), 0)
		}

		return 0, nil
	}

	n, err := s2.DecodedLen(src)
	if err != nil {
		return 0, s2Err(err)
	}

	switch {
	case n > len(dst):
		return 0, tooSmallErr("s2", n, len(dst))
	case n < len(dst):
		return 0, sizeMismatchErr("s2", len(dst), n)
	}

	if _, err := s2.Decode(dst, src); err != nil {
		return 0, s2Err(err)
	}

	return n, nil
}

func s2Err(err error) error {
	if errors.Is(err, s2.ErrCorrupt) {
		return corruptErr("s2", err)
	}

	return backendErr("s2", err)
}

// MaxDecodedLen returns the decoded length recorded in the block preamble.
func (c S2Compressor) MaxDecodedLen(src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	n, err := s2.DecodedLen(src)
	if err != nil {
		return 0, s2Err(err)
	}

	return n, nil
}
