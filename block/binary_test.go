package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/planar/alloc"
	"github.com/arloliu/planar/compress"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/frame"
)

func TestBinary_RawRoundTrip(t *testing.T) {
	b, err := Parse[float64, alloc.Aligned16]("3,2\n1.5 2.5 3.5\n-1 -2 -3", WithCompression(format.CompressionLZ4))
	require.NoError(t, err)
	defer b.Release()

	data, err := b.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, frame.HeaderSize+b.Size())

	h, _, err := frame.Decode(data)
	require.NoError(t, err)
	require.Equal(t, format.KindFloat64, h.Flag.ElementKind)
	require.Equal(t, format.CompressionLZ4, h.Flag.CompressionType)
	require.False(t, h.Flag.IsCompressed())
	require.Equal(t, uint32(b.Cols()), h.Cols)

	var out Block[float64, alloc.Aligned16]
	require.NoError(t, out.UnmarshalBinary(data))
	defer out.Release()

	eq, err := b.Equal(&out)
	require.NoError(t, err)
	require.True(t, eq)
	require.Equal(t, "1.5 2.5 3.5\n-1 -2 -3", out.String())
}

func TestBinary_CompressedRoundTrip(t *testing.T) {
	b := smoothBlock(t, WithCompression(format.CompressionZstd))
	defer b.Release()

	want := b.String()
	require.NoError(t, b.Compress())

	data, err := b.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, frame.HeaderSize+b.Size())

	var out Block[float64, alloc.Aligned32]
	require.NoError(t, out.UnmarshalBinary(data))
	defer out.Release()

	require.True(t, out.IsCompressed())
	require.Equal(t, format.CompressionZstd, out.CompressionType())

	eq, err := b.Equal(&out)
	require.NoError(t, err)
	require.True(t, eq)

	require.NoError(t, out.Uncompress())
	require.Equal(t, want, out.String())
}

func TestBinary_Relayout(t *testing.T) {
	for _, compressed := range []bool{false, true} {
		src, err := Parse[float32, alloc.Standard]("5,2\n1 2 3 4 5\n6 7 8 9 10")
		require.NoError(t, err)

		if compressed {
			require.NoError(t, src.Compress())
		}

		data, err := src.MarshalBinary()
		require.NoError(t, err)
		src.Release()

		var dst Block[float32, alloc.Aligned64]
		require.NoError(t, dst.UnmarshalBinary(data))

		require.Equal(t, 16, dst.Cols())
		require.Equal(t, 5, dst.Dim0())
		require.False(t, dst.IsCompressed())
		require.Equal(t, "1 2 3 4 5\n6 7 8 9 10", dst.String())

		dst.Release()
	}
}

func TestBinary_Errors(t *testing.T) {
	var empty Block[int32, alloc.Standard]
	_, err := empty.MarshalBinary()
	require.ErrorIs(t, err, errs.ErrEmptyBlock)

	b, err := Parse[int32, alloc.Standard]("2,1\n1 2")
	require.NoError(t, err)
	defer b.Release()

	data, err := b.MarshalBinary()
	require.NoError(t, err)

	var wrong Block[float32, alloc.Standard]
	require.ErrorIs(t, wrong.UnmarshalBinary(data), errs.ErrElementKindMismatch)

	data[frame.HeaderSize] ^= 0xFF
	var out Block[int32, alloc.Standard]
	require.ErrorIs(t, out.UnmarshalBinary(data), errs.ErrChecksumMismatch)
	require.True(t, out.IsEmpty())

	require.ErrorIs(t, out.UnmarshalBinary(data[:10]), errs.ErrInvalidHeaderSize)
}

func TestBinary_LayoutFlag(t *testing.T) {
	b, err := New[uint64, alloc.Standard](3, 1, WithLayout(format.LayoutSplit))
	require.NoError(t, err)
	defer b.Release()

	require.Equal(t, format.LayoutSplit, b.Header().Flag.Layout())

	data, err := b.MarshalBinary()
	require.NoError(t, err)

	var out Block[uint64, alloc.Standard]
	require.NoError(t, out.UnmarshalBinary(data))
	defer out.Release()

	require.Equal(t, format.LayoutSplit, out.Config().Layout())
}

// compressedFrame frames payload as a compressed float64 block of the given
// shape without checking that the shape matches.
func compressedFrame(t *testing.T, ct format.CompressionType, dim0, rows, cols int, payload []byte) []byte {
	t.Helper()

	h := frame.NewHeader(format.KindFloat64, ct, dim0, rows, cols)
	h.Flag.SetCompressed(true)

	data, err := frame.Encode(h, payload)
	require.NoError(t, err)

	return data
}

func TestBinary_OversizedCompressedFrame(t *testing.T) {
	payload, err := compress.NewZlibCompressor().Compress(make([]byte, 64))
	require.NoError(t, err)

	data := compressedFrame(t, format.CompressionZlib, 1<<20, 1<<20, 1<<20, payload)

	t.Run("default limit", func(t *testing.T) {
		var out Block[float64, alloc.Standard]
		require.ErrorIs(t, out.UnmarshalBinary(data), errs.ErrInvalidFormat)
		require.True(t, out.IsEmpty())
	})

	t.Run("beyond codec expansion", func(t *testing.T) {
		out, err := Default[float64, alloc.Standard](WithMaxRawSize(1 << 50))
		require.NoError(t, err)
		defer out.Release()

		require.ErrorIs(t, out.UnmarshalBinary(data), errs.ErrInvalidFormat)
		require.Equal(t, 1, out.Rows(), "failed decode must leave the block unchanged")
	})

	t.Run("aligned policy", func(t *testing.T) {
		var out Block[float64, alloc.Aligned64]
		require.ErrorIs(t, out.UnmarshalBinary(data), errs.ErrInvalidFormat)
	})
}

func TestBinary_CompressedFrameSizeBound(t *testing.T) {
	raw := bytes.Repeat([]byte{0x3F}, 64)

	for _, ct := range []format.CompressionType{format.CompressionNone, format.CompressionS2, format.CompressionZstd} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := compress.GetCodec(ct)
			require.NoError(t, err)

			payload, err := codec.Compress(raw)
			require.NoError(t, err)

			// 64 bytes of payload claimed as a 64x64 float64 block
			data := compressedFrame(t, ct, 64, 64, 64, payload)

			var out Block[float64, alloc.Standard]
			require.ErrorIs(t, out.UnmarshalBinary(data), errs.ErrInvalidFormat)

			// the honest shape is accepted
			data = compressedFrame(t, ct, 8, 1, 8, payload)
			require.NoError(t, out.UnmarshalBinary(data))
			defer out.Release()
			require.NoError(t, out.Uncompress())
			require.Equal(t, 8, out.Dim0())
		})
	}
}

func TestBinary_MaxRawSize(t *testing.T) {
	b, err := New[float64, alloc.Standard](16, 16)
	require.NoError(t, err)
	defer b.Release()

	data, err := b.MarshalBinary()
	require.NoError(t, err)

	small, err := Default[float64, alloc.Standard](WithMaxRawSize(1024))
	require.NoError(t, err)
	defer small.Release()
	require.ErrorIs(t, small.UnmarshalBinary(data), errs.ErrInvalidFormat)

	big, err := Default[float64, alloc.Standard](WithMaxRawSize(16 * 16 * 8))
	require.NoError(t, err)
	defer big.Release()
	require.NoError(t, big.UnmarshalBinary(data))

	_, err = NewConfig(WithMaxRawSize(0))
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestDecodeFrame_PayloadLength(t *testing.T) {
	b, err := Parse[int32, alloc.Standard]("2,1\n1 2")
	require.NoError(t, err)
	defer b.Release()

	data, err := b.MarshalBinary()
	require.NoError(t, err)

	h, payload, err := frame.Decode(data)
	require.NoError(t, err)

	var out Block[int32, alloc.Standard]
	require.ErrorIs(t, out.DecodeFrame(h, payload[:4]), errs.ErrInvalidFormat)

	require.NoError(t, out.DecodeFrame(h, payload))
	defer out.Release()
	require.Equal(t, "1 2", out.String())
}
