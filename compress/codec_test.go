package compress

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
)

// copyOnlyCodec implements Codec without SizedDecompressor to exercise the
// DecompressInto fallback.
type copyOnlyCodec struct {
	inner Codec
}

func (c copyOnlyCodec) Type() format.CompressionType          { return c.inner.Type() }
func (c copyOnlyCodec) Compress(data []byte) ([]byte, error)   { return c.inner.Compress(data) }
func (c copyOnlyCodec) Decompress(data []byte) ([]byte, error) { return c.inner.Decompress(data) }

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"noop": NewNoOpCompressor(),
		"zstd": NewZstdCompressor(),
		"s2":   NewS2Compressor(),
		"lz4":  NewLZ4Compressor(),
		"zlib": NewZlibCompressor(),
	}
}

// float64Payload renders a slowly varying series the way a block stores it.
func float64Payload(n int) []byte {
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		v := 20.0 + math.Sin(float64(i)/50.0)*3.0
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}

	return buf
}

func noisyPayload(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte((i*31 + i*i*7 + i*i*i*3) % 256)
	}

	return data
}

func TestCodec_Type(t *testing.T) {
	expected := map[string]format.CompressionType{
		"noop": format.CompressionNone,
		"zstd": format.CompressionZstd,
		"s2":   format.CompressionS2,
		"lz4":  format.CompressionLZ4,
		"zlib": format.CompressionZlib,
	}

	for name, codec := range getAllCodecs() {
		require.Equal(t, expected[name], codec.Type(), name)
	}
}

func TestCompressionStats_Calculations(t *testing.T) {
	tests := []struct {
		name            string
		stats           CompressionStats
		expectedRatio   float64
		expectedSavings float64
	}{
		{
			name:            "good compression",
			stats:           CompressionStats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 300},
			expectedRatio:   0.3,
			expectedSavings: 70.0,
		},
		{
			name:            "no compression benefit",
			stats:           CompressionStats{Algorithm: format.CompressionNone, OriginalSize: 500, CompressedSize: 500},
			expectedRatio:   1.0,
			expectedSavings: 0.0,
		},
		{
			name:            "compression overhead",
			stats:           CompressionStats{Algorithm: format.CompressionS2, OriginalSize: 100, CompressedSize: 120},
			expectedRatio:   1.2,
			expectedSavings: -20.0,
		},
		{
			name:            "zero original size",
			stats:           CompressionStats{Algorithm: format.CompressionLZ4},
			expectedRatio:   0.0,
			expectedSavings: 100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expectedRatio, tt.stats.CompressionRatio(), 1e-9)
			require.InDelta(t, tt.expectedSavings, tt.stats.SpaceSavings(), 1e-9)
		})
	}
}

func TestNewCompressionStats(t *testing.T) {
	s := NewCompressionStats(format.CompressionZlib, 800, 200, 1500)
	require.Equal(t, format.CompressionZlib, s.Algorithm)
	require.Equal(t, int64(800), s.OriginalSize)
	require.Equal(t, int64(200), s.CompressedSize)
	require.Equal(t, int64(1500), s.CompressionTimeNs)
	require.InDelta(t, 0.25, s.CompressionRatio(), 1e-9)
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range format.CompressionTypes {
		codec, err := CreateCodec(ct, "block")
		require.NoError(t, err)
		require.Equal(t, ct, codec.Type())

		builtin, err := GetCodec(ct)
		require.NoError(t, err)
		require.Equal(t, ct, builtin.Type())
	}

	_, err := CreateCodec(format.CompressionType(0x7F), "block")
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
	require.Contains(t, err.Error(), "block")

	_, err = GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"single byte": {0x42},
		"zeros":       make([]byte, 4096),
		"float64":     float64Payload(1000),
		"noisy":       noisyPayload(3000),
	}

	for name, codec := range getAllCodecs() {
		for pname, data := range payloads {
			t.Run(name+"/"+pname, func(t *testing.T) {
				original := append([]byte(nil), data...)

				compressed, err := codec.Compress(data)
				require.NoError(t, err)
				require.NotEmpty(t, compressed)
				require.Equal(t, original, data, "input must not be modified")

				out, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, out)

				dst := make([]byte, len(data))
				require.NoError(t, DecompressInto(codec, dst, compressed))
				require.Equal(t, data, dst)
			})
		}
	}
}

func TestAllCodecs_NoAliasing(t *testing.T) {
	data := float64Payload(64)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			snapshot := append([]byte(nil), compressed...)
			for i := range data {
				data[i] = 0xEE
			}
			require.Equal(t, snapshot, compressed)

			data = float64Payload(64)
		})
	}
}

func TestAllCodecs_EmptyInput(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			out, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, out)

			require.NoError(t, DecompressInto(codec, nil, nil))
		})
	}
}

func TestDecompressInto_WrongSize(t *testing.T) {
	data := float64Payload(256)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			small := make([]byte, len(data)-8)
			err = DecompressInto(codec, small, compressed)
			require.ErrorIs(t, err, errs.ErrBufferTooSmall)

			large := make([]byte, len(data)+8)
			require.ErrorIs(t, DecompressInto(codec, large, compressed), errs.ErrSizeMismatch)
		})
	}
}

func TestDecompressInto_Fallback(t *testing.T) {
	data := float64Payload(128)
	codec := copyOnlyCodec{inner: NewZlibCompressor()}

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	dst := make([]byte, len(data))
	require.NoError(t, DecompressInto(codec, dst, compressed))
	require.Equal(t, data, dst)

	require.ErrorIs(t, DecompressInto(codec, make([]byte, 8), compressed), errs.ErrBufferTooSmall)
	require.ErrorIs(t, DecompressInto(codec, make([]byte, len(data)*2), compressed), errs.ErrSizeMismatch)
}

func TestCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xFA, 0x00, 0x01, 0x02, 0x03}

	tests := []struct {
		name  string
		codec Codec
	}{
		{"zstd", NewZstdCompressor()},
		{"s2", NewS2Compressor()},
		{"zlib", NewZlibCompressor()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decompress(garbage)
			require.ErrorIs(t, err, errs.ErrCorruptData)

			err = DecompressInto(tt.codec, make([]byte, 64), garbage)
			require.Error(t, err)
		})
	}

	t.Run("lz4", func(t *testing.T) {
		err := DecompressInto(NewLZ4Compressor(), make([]byte, 4), garbage)
		require.Error(t, err)
	})
}

func TestZlib_CorruptChecksum(t *testing.T) {
	data := float64Payload(200)
	codec := NewZlibCompressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	compressed[len(compressed)-1] ^= 0xFF

	_, err = codec.Decompress(compressed)
	require.ErrorIs(t, err, errs.ErrCorruptData)

	err = DecompressInto(codec, make([]byte, len(data)), compressed)
	require.ErrorIs(t, err, errs.ErrCorruptData)
}

func TestZlibBound(t *testing.T) {
	codec := NewZlibCompressor()

	for _, n := range []int{1, 100, 4096, 70000} {
		compressed, err := codec.Compress(noisyPayload(n))
		require.NoError(t, err)
		require.LessOrEqual(t, len(compressed), ZlibBound(n), "n=%d", n)
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, 16)

			for g := 0; g < 16; g++ {
				wg.Add(1)
				go func(seed int) {
					defer wg.Done()

					data := float64Payload(200 + seed*10)
					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}

					dst := make([]byte, len(data))
					if err := DecompressInto(codec, dst, compressed); err != nil {
						errCh <- err
						return
					}

					for i := range data {
						if dst[i] != data[i] {
							errCh <- fmt.Errorf("goroutine %d: mismatch at %d", seed, i)
							return
						}
					}
				}(g)
			}

			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestCodecs_ProgressiveDataSizes(t *testing.T) {
	sizes := []int{8, 64, 512, 4096, 65536}

	for name, codec := range getAllCodecs() {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%d", name, size), func(t *testing.T) {
				data := float64Payload(size / 8)

				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				dst := make([]byte, len(data))
				require.NoError(t, DecompressInto(codec, dst, compressed))
				require.Equal(t, data, dst)
			})
		}
	}
}

func TestZlib_TruncatedStream(t *testing.T) {
	data := float64Payload(512)
	codec := NewZlibCompressor()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	truncated := compressed[:len(compressed)/2]

	_, err = codec.Decompress(truncated)
	require.ErrorIs(t, err, errs.ErrCorruptData)

	err = DecompressInto(codec, make([]byte, len(data)), truncated)
	require.ErrorIs(t, err, errs.ErrCorruptData)
	require.NotErrorIs(t, err, errs.ErrSizeMismatch)
}

func TestDecompressTo_SpareCapacityUntouched(t *testing.T) {
	data := float64Payload(64)

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			backing := make([]byte, len(data)*2)
			for i := range backing {
				backing[i] = 0xAA
			}

			// dst is short by 8 bytes; the spare capacity behind it must survive
			dst := backing[:len(data)-8]
			require.ErrorIs(t, DecompressInto(codec, dst, compressed), errs.ErrBufferTooSmall)

			for i := len(dst); i < len(backing); i++ {
				require.Equal(t, byte(0xAA), backing[i], "byte %d written past len(dst)", i)
			}
		})
	}
}

func TestMaxDecodedLen(t *testing.T) {
	data := float64Payload(1024)

	tests := []struct {
		name  string
		codec Codec
		exact bool
	}{
		{"noop", NewNoOpCompressor(), true},
		{"s2", NewS2Compressor(), true},
		{"zstd", NewZstdCompressor(), true},
		{"zlib", NewZlibCompressor(), false},
		{"lz4", NewLZ4Compressor(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := tt.codec.Compress(data)
			require.NoError(t, err)

			n, ok, err := MaxDecodedLen(tt.codec, compressed)
			require.NoError(t, err)
			require.True(t, ok)

			if tt.exact {
				require.Equal(t, len(data), n)
			} else {
				require.GreaterOrEqual(t, n, len(data))
			}
		})
	}

	t.Run("no bound", func(t *testing.T) {
		_, ok, err := MaxDecodedLen(copyOnlyCodec{inner: NewZlibCompressor()}, []byte{1, 2, 3})
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("s2 garbage", func(t *testing.T) {
		_, _, err := MaxDecodedLen(NewS2Compressor(), []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
		require.ErrorIs(t, err, errs.ErrCorruptData)
	})

	t.Run("saturates", func(t *testing.T) {
		require.Equal(t, math.MaxInt, expansionBound(math.MaxInt/2, 1032, 258))
		require.Equal(t, 10*1032+258, expansionBound(10, 1032, 258))
	})
}
