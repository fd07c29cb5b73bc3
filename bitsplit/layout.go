package bitsplit

import (
	"fmt"
	"math"

	"github.com/arloliu/planar/errs"
)

// Float is the set of IEEE-754 element types that can be split.
type Float interface {
	float32 | float64
}

// Bits is the set of unsigned plane element types.
type Bits interface {
	uint32 | uint64
}

// Layout describes the bit fields of the IEEE-754 binary format F, with the
// planes stored as U. The field widths follow from F alone, so the zero
// value is ready to use. U must be at least as wide as F.
type Layout[F Float, U Bits] struct{}

var (
	// Float32 is the binary32 layout: 1 sign, 8 exponent and 23 mantissa bits.
	Float32 = Layout[float32, uint32]{}

	// Float64 is the binary64 layout: 1 sign, 11 exponent and 52 mantissa bits.
	Float64 = Layout[float64, uint64]{}
)

func isFloat64[F Float]() bool {
	var f F
	_, ok := any(f).(float64)

	return ok
}

func isUint64[U Bits]() bool {
	var u U
	_, ok := any(u).(uint64)

	return ok
}

// ExponentBits returns the width of the biased exponent field.
func (l Layout[F, U]) ExponentBits() int {
	if isFloat64[F]() {
		return 11
	}

	return 8
}

// MantissaBits returns the width of the stored fraction field.
func (l Layout[F, U]) MantissaBits() int {
	if isFloat64[F]() {
		return 52
	}

	return 23
}

// Validate reports errs.ErrInvalidArgument when U cannot hold the bits of F.
func (l Layout[F, U]) Validate() error {
	if isFloat64[F]() && !isUint64[U]() {
		return fmt.Errorf("%w: float64 planes need uint64 elements", errs.ErrInvalidArgument)
	}

	return nil
}

// ExponentMask returns the largest valid exponent plane value.
func (l Layout[F, U]) ExponentMask() U {
	return U(1)<<l.ExponentBits() - 1
}

// MantissaMask returns the largest valid mantissa plane value.
func (l Layout[F, U]) MantissaMask() U {
	return U(1)<<l.MantissaBits() - 1
}

func (l Layout[F, U]) toBits(v F) U {
	switch x := any(v).(type) {
	case float32:
		return U(math.Float32bits(x))
	case float64:
		return U(math.Float64bits(x))
	}

	return 0
}

func (l Layout[F, U]) fromBits(bits U) F {
	if isFloat64[F]() {
		return F(math.Float64frombits(uint64(bits)))
	}

	return F(math.Float32frombits(uint32(bits)))
}

// Decompose splits v into its sign, biased exponent and mantissa fields.
func (l Layout[F, U]) Decompose(v F) (sign, exponent, mantissa U) {
	bits := l.toBits(v)
	mb := l.MantissaBits()

	sign = bits >> (l.ExponentBits() + mb)
	exponent = (bits >> mb) & l.ExponentMask()
	mantissa = bits & l.MantissaMask()

	return sign, exponent, mantissa
}

// Compose reassembles a value from its fields.
//
// Returns errs.ErrInvalidPlaneValue if a field is wider than its bit width.
func (l Layout[F, U]) Compose(sign, exponent, mantissa U) (F, error) {
	if sign > 1 || exponent > l.ExponentMask() || mantissa > l.MantissaMask() {
		return 0, fmt.Errorf("%w: sign=%d exponent=%d mantissa=%d", errs.ErrInvalidPlaneValue, sign, exponent, mantissa)
	}

	mb := l.MantissaBits()
	bits := sign<<(l.ExponentBits()+mb) | exponent<<mb | mantissa

	return l.fromBits(bits), nil
}
