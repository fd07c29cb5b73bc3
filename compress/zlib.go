package compress

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/planar/format"
)

var zlibWriterPool = sync.Pool{
	New: func() any {
		w, _ := zlib.NewWriterLevel(nil, zlib.DefaultCompression)
		return w
	},
}

var zlibReaderPool sync.Pool

// ZlibCompressor produces zlib (RFC 1950) streams.
//
// It is the default codec for blocks: slower than S2 but with broad
// interoperability and a known worst-case output bound.
type ZlibCompressor struct{}

var (
	_ Codec             = (*ZlibCompressor)(nil)
	_ SizedDecompressor = (*ZlibCompressor)(nil)
	_ DecodedLenBounder = (*ZlibCompressor)(nil)
)

// Deflate encodes a 258-byte match in as little as 2 bits, so no stream
// inflates by more than 1032:1.
const (
	deflateMaxRatio = 1032
	deflateSlack    = 258
)

// NewZlibCompressor creates a new zlib compressor at the default level.
func NewZlibCompressor() ZlibCompressor {
	return ZlibCompressor{}
}

// Type returns format.CompressionZlib.
func (c ZlibCompressor) Type() format.CompressionType {
	return format.CompressionZlib
}

// ZlibBound returns the worst-case zlib output size for n input bytes.
func ZlibBound(n int) int {
	return n + n>>12 + n>>14 + n>>25 + 13
}

// Compress compresses the input data into a scratch buffer of ZlibBound size.
func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bound := ZlibBound(len(data))
	buf := bytes.NewBuffer(make([]byte, 0, bound))

	w, _ := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(w)
	w.Reset(buf)

	if _, err := w.Write(data); err != nil {
		return nil, backendErr("zlib", err)
	}
	if err := w.Close(); err != nil {
		return nil, backendErr("zlib", err)
	}

	if buf.Len() > bound {
		return nil, tooSmallErr("zlib", buf.Len(), bound)
	}

	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream of unknown decoded size.
func (c ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := c.reader(data)
	if err != nil {
		return nil, err
	}
	defer zlibReaderPool.Put(r)

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, zlibErr(err)
	}

	return out, nil
}

// DecompressTo inflates src into dst, which must hold the exact uncompressed size.
func (c ZlibCompressor) DecompressTo(dst, src []byte) (int, error) {
	if len(src) == 0 {
		if len(dst) != 0 {
			return 0, sizeMismatchErr("zlib", len(dst), 0)
		}

		return 0, nil
	}

	r, err := c.reader(src)
	if err != nil {
		return 0, err
	}
	defer zlibReaderPool.Put(r)

	// A clean EOF means the stream ended short; a cut-off stream surfaces
	// as io.ErrUnexpectedEOF and counts as corrupt.
	n := 0
	for n < len(dst) {
		m, err := r.Read(dst[n:])
		n += m
		if errors.Is(err, io.EOF) {
			if n < len(dst) {
				return 0, sizeMismatchErr("zlib", len(dst), n)
			}

			break
		}
		if err != nil {
			return 0, zlibErr(err)
		}
	}

	// The stream must end exactly here; reading on also verifies the adler32 trailer.
	var tail [1]byte
	extra, err := r.Read(tail[:])
	if extra > 0 {
		return 0, tooSmallErr("zlib", len(dst)+extra, len(dst))
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, zlibErr(err)
	}

	return n, nil
}

func (c ZlibCompressor) reader(src []byte) (io.ReadCloser, error) {
	if r, ok := zlibReaderPool.Get().(io.ReadCloser); ok {
		if err := r.(zlib.Resetter).Reset(bytes.NewReader(src), nil); err != nil {
			return nil, zlibErr(err)
		}

		return r, nil
	}

	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, zlibErr(err)
	}

	return r, nil
}

func zlibErr(err error) error {
	var corrupt flate.CorruptInputError
	if errors.As(err, &corrupt) ||
		errors.Is(err, zlib.ErrHeader) ||
		errors.Is(err, zlib.ErrChecksum) ||
		errors.Is(err, zlib.ErrDictionary) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return corruptErr("zlib", err)
	}

	return backendErr("zlib", err)
}

// MaxDecodedLen returns the largest output a zlib stream of len(src) bytes
// can inflate to.
func (c ZlibCompressor) MaxDecodedLen(src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	return expansionBound(len(src), deflateMaxRatio, deflateSlack), nil
}
