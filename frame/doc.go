// Package frame defines the binary container for a single block.
//
// A frame is a fixed 32-byte header followed by the block's current bytes,
// raw or compressed:
//
//	offset  size  field
//	0       2     Options (always little-endian)
//	2       1     ElementKind
//	3       1     CompressionType
//	4       4     Dim0 (logical columns)
//	8       4     Rows
//	12      4     Cols (padded columns)
//	16      8     PayloadSize
//	24      8     Checksum (xxHash64 of the payload)
//
// Options packs the flags and the magic number:
//
//	bit 0      split layout (sign/exponent/mantissa planes)
//	bit 1      byte order, 0 little-endian, 1 big-endian
//	bit 2      payload is compressed
//	bit 3      reserved, must be 0
//	bits 4-15  magic number 0xB1A (Options & 0xFFF0 == 0xB1A0)
//
// Fields after Options use the byte order from bit 1, which is also the byte
// order of the element data in the payload. A reader on a host with the
// other byte order gets errs.ErrEndianMismatch.
package frame
