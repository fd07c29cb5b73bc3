package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/planar"
	"github.com/arloliu/planar/block"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/format"
	"github.com/arloliu/planar/frame"
)

type packOptions struct {
	output  string
	codec   string
	float32 bool
	dense   bool
	sortRow int
}

func newPackCmd(a *app) *cobra.Command {
	o := &packOptions{}

	cmd := &cobra.Command{
		Use:   "pack <text>",
		Short: "Compress a text matrix into a frame file",
		Long: `The pack command parses a text matrix, splits it into bit planes
unless --dense is given, compresses it and writes a frame file.

Example:
  blockstat pack matrix.txt -o matrix.planar
  blockstat pack matrix.txt -o matrix.planar --codec zstd --sort-row 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.blockOptions(o.codec)
			if err != nil {
				return err
			}

			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			n, err := writeFrameFile(o.output, func(w io.Writer) (int64, error) {
				if o.float32 {
					return packText(w, string(text), o, opts, planar.WritePacked32)
				}

				return packText(w, string(text), o, opts, planar.WritePacked64)
			})
			if err != nil {
				return err
			}

			level.Info(a.logger).Log("msg", "frame written", "path", o.output, "bytes", n)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", o.output, humanize.Bytes(uint64(n)))

			return nil
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Frame file to write")
	cmd.Flags().StringVar(&o.codec, "codec", "zlib", "Compression codec (none, zstd, s2, lz4, zlib)")
	cmd.Flags().BoolVar(&o.float32, "float32", false, "Parse the input as float32")
	cmd.Flags().BoolVar(&o.dense, "dense", false, "Store plain elements instead of bit planes")
	cmd.Flags().IntVar(&o.sortRow, "sort-row", -1, "Sort columns by this row before packing")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

// writeFrameFile creates path and fills it with write, removing the file
// again when write fails.
func writeFrameFile(path string, write func(io.Writer) (int64, error)) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	n, err := write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}

	return n, nil
}

func packText[F float32 | float64](w io.Writer, text string, o *packOptions, opts []block.Option, writePacked func(io.Writer, *block.Block[F, planar.DefaultPolicy]) (int64, error)) (int64, error) {
	b, err := block.Parse[F, planar.DefaultPolicy](text, opts...)
	if err != nil {
		return 0, err
	}
	defer b.Release()

	if o.sortRow >= 0 {
		if err := b.SortColumns(o.sortRow); err != nil {
			return 0, err
		}
	}

	if !o.dense {
		return writePacked(w, b)
	}

	if err := b.Compress(); err != nil {
		return 0, err
	}

	return b.WriteFrame(w)
}

func newUnpackCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "unpack <frame>",
		Short: "Decode a float frame file back to text",
		Long: `The unpack command reads a frame written by pack and prints the
matrix in text form, to stdout or to the --output file.

Example:
  blockstat unpack matrix.planar
  blockstat unpack matrix.planar -o matrix.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			h, payload, err := frame.Read(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			b, err := unpackFrame(h, payload, block.WithLogger(a.logger))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			defer b.Release()

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if _, err := b.WriteTo(w); err != nil {
				return err
			}
			_, err = io.WriteString(w, "\n")

			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Text file to write instead of stdout")

	return cmd
}

// textBlock is a decoded block that can print itself.
type textBlock interface {
	io.WriterTo
	Release()
}

func unpackFrame(h frame.Header, payload []byte, opts ...block.Option) (textBlock, error) {
	switch {
	case h.Flag.ElementKind == format.KindFloat64,
		h.Flag.IsSplit() && h.Flag.ElementKind == format.KindUint64:
		return planar.FromFrame64(h, payload, opts...)
	case h.Flag.ElementKind == format.KindFloat32,
		h.Flag.IsSplit() && h.Flag.ElementKind == format.KindUint32:
		return planar.FromFrame32(h, payload, opts...)
	default:
		return nil, fmt.Errorf("%w: cannot print %s frames", errs.ErrElementKindMismatch, h.Flag.ElementKind)
	}
}
