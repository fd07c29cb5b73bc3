// Package compress provides the byte-level codecs a block uses for its
// compressed state.
//
// A codec sees only the block's raw byte buffer. Compress never modifies its
// input and never returns a slice aliasing it, so the block may release its
// raw buffer once compression succeeds.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): identity copy. Compressing with it still
//     produces a distinct buffer so the block state machine stays consistent.
//   - Zlib (format.CompressionZlib): the default. Deflate in a zlib wrapper with
//     an adler32 trailer; output never exceeds ZlibBound(n).
//   - Zstd (format.CompressionZstd): best ratio, especially on the sign and
//     exponent planes of a split block.
//   - S2 (format.CompressionS2): fastest, lowest ratio.
//   - LZ4 (format.CompressionLZ4): raw LZ4 blocks; fast decode.
//
// # Sized decompression
//
// A block always knows its raw byte size, so it decompresses into a buffer
// obtained from its allocator:
//
//	buf, _ := policy.Allocate(rawSize)
//	if err := compress.DecompressInto(codec, buf, compressed); err != nil {
//		policy.Deallocate(buf)
//		return err
//	}
//
// Every built-in codec implements SizedDecompressor and decodes directly into
// buf. A custom codec that only implements Decompressor still works through a
// copy.
//
// # Errors
//
// Failures are tagged with the kinds from the errs package so callers can use
// errors.Is:
//
//   - errs.ErrCorruptData: input is not a valid stream for the codec
//   - errs.ErrBufferTooSmall: the data decodes to more bytes than the destination holds
//   - errs.ErrSizeMismatch: the data decodes to fewer bytes than expected
//   - errs.ErrBackend: any other backend failure
//   - errs.ErrUnsupportedCompression: unknown format.CompressionType
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool encoders and decoders
// and are safe for concurrent use.
//
// # Build tags
//
// The Zstd codec uses github.com/klauspost/compress/zstd by default. Building
// with cgo and the "gozstd" tag selects github.com/valyala/gozstd instead.
package compress
