// Package bitsplit rearranges a block of IEEE-754 floats into three integer
// planes, sign, exponent and mantissa, so a byte compressor can exploit their
// very different entropy.
//
// For a float block with Dim0() = d, Split produces an unsigned block with
// Dim0() = 3d and the same row count. In every row, column i of the source
// maps to column i (sign), i+d (exponent) and i+2d (mantissa):
//
//	source row:  v0          v1          v2
//	split row:   s0 s1 s2 | e0 e1 e2 | m0 m1 m2
//
// The transform works on raw bits, so every bit pattern round-trips exactly,
// including NaN payloads, infinities, subnormals and negative zero.
package bitsplit
