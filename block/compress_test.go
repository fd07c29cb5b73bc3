package block

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/planar/alloc"
	"github.com/arloliu/planar/compress"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

func smoothBlock(t *testing.T, opts ...Option) *Block[float64, alloc.Aligned32] {
	t.Helper()

	b, err := New[float64, alloc.Aligned32](37, 11, opts...)
	require.NoError(t, err)

	for j := range b.Rows() {
		for i := range b.Dim0() {
			b.Set(i, j, 20+math.Sin(float64(i+j*b.Dim0())/40))
		}
	}

	return b
}

func TestCompress_RoundTrip(t *testing.T) {
	for _, ct := range format.CompressionTypes {
		t.Run(ct.String(), func(t *testing.T) {
			b := smoothBlock(t, WithCompression(ct))
			defer b.Release()

			orig, err := b.Clone()
			require.NoError(t, err)
			defer orig.Release()

			require.NoError(t, b.Compress())
			require.True(t, b.IsCompressed())
			require.Equal(t, Compressed, b.State())
			require.Equal(t, ct, b.CompressionType())
			require.Equal(t, b.Size(), len(b.Bytes()))
			require.Equal(t, int64(b.RawSize()), b.Stats().OriginalSize)
			require.Equal(t, int64(b.Size()), b.Stats().CompressedSize)
			if ct == format.CompressionNone {
				require.Equal(t, b.RawSize(), b.Size())
			}

			require.NoError(t, b.Uncompress())
			require.False(t, b.IsCompressed())
			require.Equal(t, b.RawSize(), b.Size())
			require.Equal(t, 8*b.Cols()*b.Rows(), b.Size())

			eq, err := b.Equal(orig)
			require.NoError(t, err)
			require.True(t, eq)
		})
	}
}

func TestCompress_ShrinksSmoothData(t *testing.T) {
	b, err := New[int32, alloc.Standard](256, 16)
	require.NoError(t, err)
	defer b.Release()
	require.NoError(t, b.Fill(7))

	require.NoError(t, b.Compress())
	require.Less(t, b.Size(), b.RawSize())
	require.Less(t, b.Stats().CompressionRatio(), 1.0)
}

func TestCompress_StateErrors(t *testing.T) {
	b := smoothBlock(t)
	defer b.Release()

	require.ErrorIs(t, b.Uncompress(), errs.ErrNotCompressed)

	require.NoError(t, b.Compress())
	size := b.Size()
	require.ErrorIs(t, b.Compress(), errs.ErrCompressed)
	require.Equal(t, size, b.Size(), "failed compress must not change the block")

	_, err := b.WriteTo(&bytes.Buffer{})
	require.ErrorIs(t, err, errs.ErrCompressed)
	require.ErrorIs(t, b.SortColumns(0), errs.ErrCompressed)
}

func TestCompress_NoOpIsHonest(t *testing.T) {
	var logs bytes.Buffer
	b := smoothBlock(t, WithCompression(format.CompressionNone), WithLogger(log.NewLogfmtLogger(&logs)))
	defer b.Release()

	raw := append([]byte(nil), b.Bytes()...)

	require.NoError(t, b.Compress())
	require.True(t, b.IsCompressed())
	require.Equal(t, raw, b.Bytes())
	require.Contains(t, logs.String(), "identity codec")

	require.NoError(t, b.Uncompress())
	require.Equal(t, raw, b.Bytes())
	require.ErrorIs(t, b.Uncompress(), errs.ErrNotCompressed)
}

func TestUncompress_CorruptKeepsState(t *testing.T) {
	b := smoothBlock(t)
	defer b.Release()

	require.NoError(t, b.Compress())
	b.Bytes()[0] ^= 0xFF

	err := b.Uncompress()
	require.ErrorIs(t, err, errs.ErrCorruptData)
	require.True(t, b.IsCompressed())
}

func TestUncompress_UsesProducingCodec(t *testing.T) {
	b := smoothBlock(t, WithCodec(compress.NewS2Compressor()))
	defer b.Release()

	require.NoError(t, b.Compress())
	require.Equal(t, format.CompressionS2, b.CompressionType())

	// Swap the configured codec; the block must still decode with S2.
	b.cfg.codec = compress.NewLZ4Compressor()
	require.NoError(t, b.Uncompress())
	require.Equal(t, format.CompressionLZ4, b.CompressionType())
}

func TestEqual(t *testing.T) {
	var logs bytes.Buffer
	a := smoothBlock(t, WithLogger(log.NewLogfmtLogger(&logs)))
	defer a.Release()

	b, err := a.Clone()
	require.NoError(t, err)
	defer b.Release()

	eq, err := a.Equal(b)
	require.NoError(t, err)
	require.True(t, eq)

	b.Set(0, 1, -1)
	eq, err = a.Equal(b)
	require.NoError(t, err)
	require.False(t, eq)
	require.Contains(t, logs.String(), "block contents differ")
	require.Contains(t, logs.String(), "offset=")

	require.NoError(t, a.Compress())
	_, err = a.Equal(b)
	require.ErrorIs(t, err, errs.ErrStateMismatch)

	other, err := New[float64, alloc.Aligned32](3, 3)
	require.NoError(t, err)
	defer other.Release()

	require.NoError(t, a.Uncompress())
	eq, err = a.Equal(other)
	require.NoError(t, err)
	require.False(t, eq)
	require.Contains(t, logs.String(), "block dimensions differ")
}

func TestEqual_Nil(t *testing.T) {
	a := smoothBlock(t)
	defer a.Release()

	eq, err := a.Equal(nil)
	require.ErrorIs(t, err, errs.ErrEmptyBlock)
	require.False(t, eq)
}
