package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type blockConfig struct {
	codec  string
	level  int
	calls  []string
	strict bool
}

var errNegativeLevel = errors.New("level cannot be negative")

func withCodec(name string) Option[*blockConfig] {
	return NoError(func(c *blockConfig) {
		c.codec = name
		c.calls = append(c.calls, "codec")
	})
}

func withLevel(level int) Option[*blockConfig] {
	return New(func(c *blockConfig) error {
		if level < 0 {
			return errNegativeLevel
		}
		c.level = level
		c.calls = append(c.calls, "level")

		return nil
	})
}

func TestApply_Order(t *testing.T) {
	cfg := &blockConfig{}

	err := Apply(cfg, withCodec("zlib"), withLevel(3), withCodec("zstd"))
	require.NoError(t, err)
	require.Equal(t, "zstd", cfg.codec)
	require.Equal(t, 3, cfg.level)
	require.Equal(t, []string{"codec", "level", "codec"}, cfg.calls)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &blockConfig{}

	err := Apply(cfg, withLevel(-1), withCodec("lz4"))
	require.ErrorIs(t, err, errNegativeLevel)
	require.Empty(t, cfg.codec)
	require.Empty(t, cfg.calls)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &blockConfig{strict: true}

	require.NoError(t, Apply(cfg))
	require.True(t, cfg.strict)
}

func TestApply_SkipsNil(t *testing.T) {
	cfg := &blockConfig{}

	require.NoError(t, Apply(cfg, nil, withLevel(7)))
	require.Equal(t, 7, cfg.level)
}

func TestApply_KeepsEarlierOptionsOnError(t *testing.T) {
	cfg := &blockConfig{}

	err := Apply(cfg, withCodec("s2"), withLevel(-4), withCodec("lz4"))
	require.ErrorIs(t, err, errNegativeLevel)
	require.Equal(t, "s2", cfg.codec)
	require.Equal(t, []string{"codec"}, cfg.calls)
}
