// Package errs defines the sentinel errors shared by the planar packages.
//
// Errors are returned wrapped with context via fmt.Errorf("...: %w", err);
// callers should match them with errors.Is.
package errs

import "errors"

// Allocation errors.
var (
	// ErrInvalidArgument indicates a zero or negative allocation size.
	ErrInvalidArgument = errors.New("alloc: invalid allocation size")

	// ErrUsage indicates an allocator/element-size combination with no valid aligned stride.
	ErrUsage = errors.New("alloc: element size exceeds alignment boundary")

	// ErrAllocationFailed indicates the underlying allocation primitive reported a failure.
	ErrAllocationFailed = errors.New("alloc: allocation failed")
)

// Compression backend errors.
var (
	// ErrBufferTooSmall indicates the decompressed data does not fit the declared size.
	ErrBufferTooSmall = errors.New("compress: destination buffer too small")

	// ErrSizeMismatch indicates the decompressed data is shorter than the declared size.
	ErrSizeMismatch = errors.New("compress: decompressed size mismatch")

	// ErrCorruptData indicates the backend rejected its input as malformed.
	ErrCorruptData = errors.New("compress: corrupt compressed data")

	// ErrBackend indicates any other failure reported by a compression backend.
	ErrBackend = errors.New("compress: backend failure")

	// ErrUnsupportedCompression indicates an unknown compression type.
	ErrUnsupportedCompression = errors.New("compress: unsupported compression type")
)

// Block state and shape errors.
var (
	// ErrCompressed indicates an operation that requires raw elements was called on a compressed block.
	ErrCompressed = errors.New("block: block is compressed")

	// ErrNotCompressed indicates Uncompress was called on a raw block.
	ErrNotCompressed = errors.New("block: block is not compressed")

	// ErrStateMismatch indicates two blocks in different compression states were compared.
	ErrStateMismatch = errors.New("block: compression state mismatch")

	// ErrEmptyBlock indicates an operation on a moved-from or released block.
	ErrEmptyBlock = errors.New("block: block is empty")

	// ErrOutOfRange indicates a column or row index outside the logical bounds.
	ErrOutOfRange = errors.New("block: index out of range")

	// ErrShapeMismatch indicates a block whose dimensions do not fit the requested transform.
	ErrShapeMismatch = errors.New("block: shape mismatch")

	// ErrInvalidPlaneValue indicates a bit-plane value wider than its IEEE-754 field.
	ErrInvalidPlaneValue = errors.New("bitsplit: plane value exceeds field width")

	// ErrInvalidFormat indicates malformed text or binary block input.
	ErrInvalidFormat = errors.New("block: invalid block format")
)

// Frame errors.
var (
	// ErrInvalidHeaderSize indicates the frame header is truncated.
	ErrInvalidHeaderSize = errors.New("frame: invalid header size")

	// ErrInvalidMagicNumber indicates the data does not start with a frame header.
	ErrInvalidMagicNumber = errors.New("frame: invalid magic number")

	// ErrChecksumMismatch indicates the payload checksum does not match the header.
	ErrChecksumMismatch = errors.New("frame: payload checksum mismatch")

	// ErrEndianMismatch indicates the frame was written on a host with a different byte order.
	ErrEndianMismatch = errors.New("frame: byte order mismatch")

	// ErrElementKindMismatch indicates the frame holds a different element type than requested.
	ErrElementKindMismatch = errors.New("frame: element kind mismatch")
)
