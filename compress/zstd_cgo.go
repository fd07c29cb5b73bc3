//go:build cgo && gozstd

package compress

import "github.com/valyala/gozstd"

const gozstdLevel = 3

// Compress compresses the input data using libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, gozstdLevel), nil
}

// Decompress decompresses Zstd-compressed data using libzstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, corruptErr("zstd", err)
	}

	return out, nil
}

// DecompressTo decodes src into dst, which must hold the exact uncompressed size.
func (c ZstdCompressor) DecompressTo(dst, src []byte) (int, error) {
	out, err := c.Decompress(src)
	if err != nil {
		return 0, err
	}

	if err := checkedCopy(dst, out); err != nil {
		return 0, err
	}

	return len(out), nil
}
