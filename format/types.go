package format

import "strings"

type (
	CompressionType uint8
	ElementKind     uint8
	Layout          uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionZlib CompressionType = 0x5 // CompressionZlib represents zlib (deflate) compression.
)

const (
	KindInvalid ElementKind = 0x0
	KindInt8    ElementKind = 0x1
	KindInt16   ElementKind = 0x2
	KindInt32   ElementKind = 0x3
	KindInt64   ElementKind = 0x4
	KindUint8   ElementKind = 0x5
	KindUint16  ElementKind = 0x6
	KindUint32  ElementKind = 0x7
	KindUint64  ElementKind = 0x8
	KindFloat32 ElementKind = 0x9
	KindFloat64 ElementKind = 0xA
)

const (
	LayoutDense Layout = 0x0 // LayoutDense is a plain row-major element block.
	LayoutSplit Layout = 0x1 // LayoutSplit is a sign/exponent/mantissa bit-plane block.
)

// CompressionTypes lists every supported compression type in ascending order.
var CompressionTypes = []CompressionType{
	CompressionNone,
	CompressionZstd,
	CompressionS2,
	CompressionLZ4,
	CompressionZlib,
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZlib:
		return "Zlib"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive codec name to its CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "none", "noop":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	case "zlib":
		return CompressionZlib, true
	default:
		return 0, false
	}
}

func (k ElementKind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return "invalid"
	}
}

// Size returns the element width in bytes, or 0 for KindInvalid.
func (k ElementKind) Size() int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether the kind is an IEEE-754 floating point type.
func (k ElementKind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsSigned reports whether the kind is a signed integer type.
func (k ElementKind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt64
}

func (l Layout) String() string {
	switch l {
	case LayoutDense:
		return "Dense"
	case LayoutSplit:
		return "Split"
	default:
		return "Unknown"
	}
}
