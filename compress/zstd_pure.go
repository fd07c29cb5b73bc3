//go:build !(cgo && gozstd)

package compress

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse.
// The klauspost decoder is designed to run without allocations after warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress compresses the input data using a pooled encoder.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, make([]byte, 0, encoder.MaxEncodedSize(len(data)))), nil
}

// Decompress decompresses Zstd-compressed data using a pooled decoder.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// A failed DecodeAll leaves the decoder reusable.
	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, corruptErr("zstd", err)
	}

	return out, nil
}

// DecompressTo decodes src into dst, which must hold the exact uncompressed size.
func (c ZstdCompressor) DecompressTo(dst, src []byte) (int, error) {
	if len(src) == 0 {
		if len(dst) != 0 {
			return 0, sizeMismatchErr("zstd", len(dst), 0)
		}

		return 0, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(src, dst[:0:len(dst)])
	if err != nil {
		return 0, corruptErr("zstd", err)
	}

	switch {
	case len(out) > len(dst):
		return 0, tooSmallErr("zstd", len(out), len(dst))
	case len(out) < len(dst):
		return 0, sizeMismatchErr("zstd", len(dst), len(out))
	}

	// DecodeAll reallocates once output passes len(dst), which the checks above rule out.
	if unsafe.SliceData(out) != unsafe.SliceData(dst) {
		copy(dst, out)
	}

	return len(out), nil
}
