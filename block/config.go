package block

import (
	"fmt"

	"github.com/go-kit/log"

	"github.com/arloliu/planar/compress"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/internal/options"
)

// DefaultMaxRawSize is the largest raw size, in bytes, a block accepts from
// a decoded frame unless WithMaxRawSize says otherwise.
const DefaultMaxRawSize = 1 << 30

// Config holds the runtime settings of a block.
type Config struct {
	codec      compress.Codec
	logger     log.Logger
	layout     format.Layout
	maxRawSize int
}

// Option configures a block at construction time.
type Option = options.Option[*Config]

// DefaultConfig returns the configuration used when no options are given:
// the zlib codec, a no-op logger and the dense layout.
func DefaultConfig() Config {
	return Config{
		codec:      compress.NewZlibCompressor(),
		logger:     log.NewNopLogger(),
		layout:     format.LayoutDense,
		maxRawSize: DefaultMaxRawSize,
	}
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Codec returns the codec used by Compress.
func (c Config) Codec() compress.Codec {
	return c.codec
}

// Logger returns the diagnostics logger.
func (c Config) Logger() log.Logger {
	return c.logger
}

// Layout reports whether the block holds plain values or bit planes.
func (c Config) Layout() format.Layout {
	return c.layout
}

// MaxRawSize returns the largest raw size accepted from a frame.
func (c Config) MaxRawSize() int {
	return c.maxRawSize
}

// normalized fills the fields of a zero Config with defaults.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.codec == nil {
		c.codec = def.codec
	}
	if c.logger == nil {
		c.logger = def.logger
	}
	if c.maxRawSize == 0 {
		c.maxRawSize = def.maxRawSize
	}

	return c
}

// WithCompression selects one of the built-in codecs.
//
// Returns errs.ErrUnsupportedCompression for an unknown type.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *Config) error {
		codec, err := compress.CreateCodec(ct, "block")
		if err != nil {
			return err
		}
		c.codec = codec

		return nil
	})
}

// WithCodec installs a custom codec.
func WithCodec(codec compress.Codec) Option {
	return options.New(func(c *Config) error {
		if codec == nil {
			return fmt.Errorf("%w: nil codec", errs.ErrInvalidArgument)
		}
		c.codec = codec

		return nil
	})
}

// WithLogger sets the logger for block diagnostics. A nil logger disables logging.
func WithLogger(logger log.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = log.NewNopLogger()
		}
		c.logger = logger
	})
}

// WithLayout marks the block as holding plain values or bit planes.
func WithLayout(layout format.Layout) Option {
	return options.NoError(func(c *Config) {
		c.layout = layout
	})
}

// WithMaxRawSize caps the raw size, in bytes, that UnmarshalBinary and
// DecodeFrame accept. Frames declaring more fail with errs.ErrInvalidFormat
// before anything is allocated for them.
//
// Returns errs.ErrInvalidArgument if n is not positive.
func WithMaxRawSize(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max raw size %d", errs.ErrInvalidArgument, n)
		}
		c.maxRawSize = n

		return nil
	})
}

// WithConfig copies every setting from cfg.
func WithConfig(cfg Config) Option {
	return options.NoError(func(c *Config) {
		*c = cfg.normalized()
	})
}
