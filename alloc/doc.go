// Package alloc provides the allocator policies that back a block's storage.
//
// A policy is a stateless, zero-size value type. The block selects its policy
// through a type parameter, so the choice is fixed at compile time and calls
// are dispatched statically:
//
//	b, err := block.New[float64, alloc.Aligned32](cols, rows)
//
// Every policy supplies the same capability set:
//
//   - Allocate: zero-filled buffer of exactly size bytes
//   - Deallocate: release a buffer returned by Allocate
//   - Copy: non-overlapping byte copy
//   - Compare: byte-wise equality
//   - ResizeHint: padded column count for a logical column count
//
// # Policies
//
// Standard allocates from the Go heap with no column padding.
//
// Aligned16, Aligned32 and Aligned64 return buffers whose first byte sits on
// the named boundary and pad column counts to a whole number of SIMD
// registers, always leaving at least one extra register of tail room:
//
//	padded = (count / perRegister + 1) * perRegister
//
// Mapped allocates page-aligned anonymous memory outside the Go heap. Buffers
// from Mapped must be released with Deallocate (block.Release does this);
// the garbage collector never reclaims them.
package alloc
