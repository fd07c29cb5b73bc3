// Package block implements Block, a dense two-dimensional numeric buffer with
// a compile-time allocator policy and a pluggable compression codec.
//
// # Layout
//
// A Block has Rows() rows and Dim0() logical columns. The allocator may pad
// each row to Cols() >= Dim0() columns; element (i, j), column i of row j,
// lives at linear offset i + j*Cols(). Padding is always zero.
//
//	b, err := block.New[float64, alloc.Aligned32](5, 3)
//	b.Set(4, 2, 1.5)
//	v := b.At(4, 2)
//
// # Compression state
//
// A block is either Raw or Compressed. Compress and Uncompress are the only
// transitions; element access, Resize and text output require the Raw state
// and fail with errs.ErrCompressed otherwise. Compressing twice fails with
// errs.ErrCompressed and uncompressing a raw block with errs.ErrNotCompressed.
// Equal refuses to compare blocks in different states.
//
// # Ownership
//
// A Block exclusively owns its buffer. Clone makes a deep copy; Move and
// Assign transfer ownership and leave the source empty. A Block is not safe
// for concurrent use.
//
// # Text format
//
// ReadFrom parses
//
//	<dim0>,<rows>
//	v00, v01, ...
//	v10, v11, ...
//
// where values are separated by commas, whitespace or both. WriteTo prints
// values separated by single spaces and rows by newlines, floats with 15
// significant digits, with no trailing whitespace or newline.
package block
