package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/planar"
	"github.com/arloliu/planar/bitsplit"
	"github.com/arloliu/planar/block"
	"github.com/arloliu/planar/compress"
	"github.com/arloliu/planar/format"
)

type ratioOptions struct {
	codec   string
	float32 bool
	planes  bool
	sortRow int
}

func newRatioCmd(a *app) *cobra.Command {
	o := &ratioOptions{}

	cmd := &cobra.Command{
		Use:   "ratio <text>",
		Short: "Compare codecs on a text matrix",
		Long: `The ratio command compresses a block with every codec, once as
plain elements and once split into sign, exponent and mantissa planes, and
prints the resulting sizes. With --planes the sign, exponent and mantissa
planes are also compressed on their own.

Example:
  blockstat ratio matrix.txt
  blockstat ratio matrix.txt --planes
  blockstat ratio matrix.txt --codec zstd --sort-row 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cts, err := codecList(o.codec)
			if err != nil {
				return err
			}

			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var rows [][]string
			if o.float32 {
				rows, err = ratioRows(bitsplit.Float32, string(text), cts, o, a.logger)
			} else {
				rows, err = ratioRows(bitsplit.Float64, string(text), cts, o, a.logger)
			}
			if err != nil {
				return err
			}

			printTable(cmd.OutOrStdout(), []string{"Codec", "Layout", "Raw", "Compressed", "Ratio", "Savings"}, rows)

			return nil
		},
	}

	cmd.Flags().StringVar(&o.codec, "codec", "", "Only measure this codec (none, zstd, s2, lz4, zlib)")
	cmd.Flags().BoolVar(&o.float32, "float32", false, "Parse the input as float32")
	cmd.Flags().BoolVar(&o.planes, "planes", false, "Also report each bit plane compressed separately")
	cmd.Flags().IntVar(&o.sortRow, "sort-row", -1, "Sort columns by this row before compressing")

	return cmd
}

func ratioRows[F bitsplit.Float, U bitsplit.Bits](l bitsplit.Layout[F, U], text string, cts []format.CompressionType, o *ratioOptions, logger log.Logger) ([][]string, error) {
	src, err := block.Parse[F, planar.DefaultPolicy](text, block.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	defer src.Release()

	if o.sortRow >= 0 {
		if err := src.SortColumns(o.sortRow); err != nil {
			return nil, err
		}
	}

	rows := make([][]string, 0, 5*len(cts))
	for _, ct := range cts {
		m, err := measure(l, src, ct, o.planes, logger)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ct, err)
		}

		level.Debug(logger).Log("msg", "measured codec", "codec", ct,
			"dense_bytes", m.dense.CompressedSize, "split_bytes", m.split.CompressedSize)

		rows = append(rows,
			statsRow(format.LayoutDense.String(), m.dense),
			statsRow(format.LayoutSplit.String(), m.split))
		for p, st := range m.planes {
			rows = append(rows, statsRow(format.LayoutSplit.String()+"/"+bitsplit.Plane(p).String(), st))
		}
	}

	return rows, nil
}

type measurement struct {
	dense  compress.CompressionStats
	split  compress.CompressionStats
	planes []compress.CompressionStats
}

// measure compresses a copy of src with ct in both layouts, and each bit
// plane on its own when planes is set.
func measure[F bitsplit.Float, U bitsplit.Bits](l bitsplit.Layout[F, U], src *block.Block[F, planar.DefaultPolicy], ct format.CompressionType, planes bool, logger log.Logger) (measurement, error) {
	var m measurement

	b, err := block.New[F, planar.DefaultPolicy](src.Dim0(), src.Rows(), block.WithCompression(ct), block.WithLogger(logger))
	if err != nil {
		return m, err
	}
	defer b.Release()

	for j := range src.Rows() {
		copy(b.Row(j), src.Row(j))
	}

	s, err := bitsplit.Split(l, b)
	if err != nil {
		return m, err
	}
	defer s.Release()

	if planes {
		for _, p := range []bitsplit.Plane{bitsplit.Sign, bitsplit.Exponent, bitsplit.Mantissa} {
			st, err := planeStats(s, p)
			if err != nil {
				return m, err
			}
			m.planes = append(m.planes, st)
		}
	}

	if err := b.Compress(); err != nil {
		return m, err
	}
	if err := s.Compress(); err != nil {
		return m, err
	}

	m.dense, m.split = b.Stats(), s.Stats()

	return m, nil
}

func planeStats[U bitsplit.Bits](s *block.Block[U, planar.DefaultPolicy], p bitsplit.Plane) (compress.CompressionStats, error) {
	pb, err := bitsplit.ExtractPlane(s, p)
	if err != nil {
		return compress.CompressionStats{}, err
	}
	defer pb.Release()

	if err := pb.Compress(); err != nil {
		return compress.CompressionStats{}, fmt.Errorf("%s plane: %w", p, err)
	}

	return pb.Stats(), nil
}

func statsRow(layout string, st compress.CompressionStats) []string {
	return []string{
		st.Algorithm.String(),
		layout,
		humanize.Bytes(uint64(st.OriginalSize)),
		humanize.Bytes(uint64(st.CompressedSize)),
		fmt.Sprintf("%.3f", st.CompressionRatio()),
		fmt.Sprintf("%.1f%%", st.SpaceSavings()),
	}
}
