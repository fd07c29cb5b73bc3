package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	tests := []struct {
		cType    CompressionType
		expected string
	}{
		{CompressionNone, "None"},
		{CompressionZstd, "Zstd"},
		{CompressionS2, "S2"},
		{CompressionLZ4, "LZ4"},
		{CompressionZlib, "Zlib"},
		{CompressionType(0xFF), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.cType.String())
		})
	}
}

func TestParseCompressionType(t *testing.T) {
	for _, ct := range CompressionTypes {
		parsed, ok := ParseCompressionType(ct.String())
		require.True(t, ok, ct.String())
		require.Equal(t, ct, parsed)
	}

	parsed, ok := ParseCompressionType("noop")
	require.True(t, ok)
	require.Equal(t, CompressionNone, parsed)

	_, ok = ParseCompressionType("brotli")
	require.False(t, ok)
}

func TestElementKind(t *testing.T) {
	tests := []struct {
		kind   ElementKind
		name   string
		size   int
		float  bool
		signed bool
	}{
		{KindInt8, "int8", 1, false, true},
		{KindInt16, "int16", 2, false, true},
		{KindInt32, "int32", 4, false, true},
		{KindInt64, "int64", 8, false, true},
		{KindUint8, "uint8", 1, false, false},
		{KindUint16, "uint16", 2, false, false},
		{KindUint32, "uint32", 4, false, false},
		{KindUint64, "uint64", 8, false, false},
		{KindFloat32, "float32", 4, true, false},
		{KindFloat64, "float64", 8, true, false},
		{KindInvalid, "invalid", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.kind.String())
			require.Equal(t, tt.size, tt.kind.Size())
			require.Equal(t, tt.float, tt.kind.IsFloat())
			require.Equal(t, tt.signed, tt.kind.IsSigned())
		})
	}
}

func TestLayout_String(t *testing.T) {
	require.Equal(t, "Dense", LayoutDense.String())
	require.Equal(t, "Split", LayoutSplit.String())
	require.Equal(t, "Unknown", Layout(9).String())
}
