package frame

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"

	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// Header is the fixed-size section at the start of a frame.
type Header struct {
	Flag Flag // byte offset 0-3

	// Dim0 is the logical column count.
	Dim0 uint32 // byte offset 4-7
	// Rows is the row count.
	Rows uint32 // byte offset 8-11
	// Cols is the padded column count the payload was laid out with.
	Cols uint32 // byte offset 12-15
	// PayloadSize is the number of payload bytes following the header.
	PayloadSize uint64 // byte offset 16-23
	// Checksum is the xxHash64 of the payload.
	Checksum uint64 // byte offset 24-31
}

// NewHeader creates a header for an uncompressed dense payload in host byte order.
func NewHeader(kind format.ElementKind, compression format.CompressionType, dim0, rows, cols int) Header {
	return Header{
		Flag: NewFlag(kind, compression),
		Dim0: uint32(dim0), //nolint:gosec
		Rows: uint32(rows), //nolint:gosec
		Cols: uint32(cols), //nolint:gosec
	}
}

// RawSize returns the uncompressed payload size implied by the shape, or 0
// when Rows*Cols*element size does not fit in an int. Validate rejects such
// headers.
func (h Header) RawSize() int {
	n, ok := h.rawSize()
	if !ok {
		return 0
	}

	return int(n)
}

func (h Header) rawSize() (uint64, bool) {
	hi, cells := bits.Mul64(uint64(h.Rows), uint64(h.Cols))
	if hi != 0 {
		return 0, false
	}

	hi, n := bits.Mul64(cells, uint64(h.Flag.ElementKind.Size())) //nolint:gosec
	if hi != 0 || n > math.MaxInt {
		return 0, false
	}

	return n, true
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	h.Flag.ElementKind = format.ElementKind(data[2])
	h.Flag.CompressionType = format.CompressionType(data[3])

	engine := h.Flag.Engine()
	h.Dim0 = engine.Uint32(data[4:8])
	h.Rows = engine.Uint32(data[8:12])
	h.Cols = engine.Uint32(data[12:16])
	h.PayloadSize = engine.Uint64(data[16:24])
	h.Checksum = engine.Uint64(data[24:32])

	return h.Validate()
}

// Validate checks the flag and the consistency of the shape fields.
func (h Header) Validate() error {
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	if h.Cols < h.Dim0 {
		return fmt.Errorf("%w: padded cols %d below dim0 %d", errs.ErrInvalidFormat, h.Cols, h.Dim0)
	}

	rawSize, ok := h.rawSize()
	if !ok {
		return fmt.Errorf("%w: shape %dx%d of %s overflows", errs.ErrInvalidFormat, h.Cols, h.Rows, h.Flag.ElementKind)
	}

	if h.Flag.IsSplit() && h.Dim0%3 != 0 {
		return fmt.Errorf("%w: split dim0 %d is not a multiple of 3", errs.ErrShapeMismatch, h.Dim0)
	}

	if !h.Flag.IsCompressed() && h.PayloadSize != rawSize {
		return fmt.Errorf("%w: raw payload is %d bytes, shape needs %d", errs.ErrInvalidFormat, h.PayloadSize, rawSize)
	}

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h Header) AppendTo(dst []byte) []byte {
	engine := h.Flag.Engine()

	dst = binary.LittleEndian.AppendUint16(dst, h.Flag.Options)
	dst = append(dst, uint8(h.Flag.ElementKind), uint8(h.Flag.CompressionType))
	dst = engine.AppendUint32(dst, h.Dim0)
	dst = engine.AppendUint32(dst, h.Rows)
	dst = engine.AppendUint32(dst, h.Cols)
	dst = engine.AppendUint64(dst, h.PayloadSize)
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
