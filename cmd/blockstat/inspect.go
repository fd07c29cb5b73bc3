package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arloliu/planar/alloc"
	"github.com/arloliu/planar/errs"
	"github.com/arloliu/planar/frame"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <frame>",
		Short: "Show the header of a frame file",
		Long: `The inspect command prints the frame header, verifies the payload
checksum and shows the SIMD boundary the host would align blocks to.

Example:
  blockstat inspect data.planar`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			// checksum and byte order failures still yield the header
			h, _, err := frame.Read(f)
			status := "ok"
			switch {
			case errors.Is(err, errs.ErrChecksumMismatch), errors.Is(err, errs.ErrEndianMismatch):
				status = err.Error()
			case err != nil:
				return fmt.Errorf("%s: %w", args[0], err)
			}

			printPairs(cmd.OutOrStdout(), [][2]string{
				{"magic", fmt.Sprintf("0x%04X", h.Flag.MagicNumber())},
				{"element", h.Flag.ElementKind.String()},
				{"layout", h.Flag.Layout().String()},
				{"byte order", byteOrder(h.Flag.IsBigEndian())},
				{"compression", h.Flag.CompressionType.String()},
				{"compressed", fmt.Sprintf("%t", h.Flag.IsCompressed())},
				{"shape", fmt.Sprintf("%d x %d (%d allocated columns)", h.Dim0, h.Rows, h.Cols)},
				{"raw size", humanize.Bytes(uint64(h.RawSize()))},
				{"payload", humanize.Bytes(h.PayloadSize)},
				{"checksum", fmt.Sprintf("0x%016X %s", h.Checksum, status)},
				{"host boundary", fmt.Sprintf("%d bytes", alloc.NativeBoundary())},
			})

			return nil
		},
	}
}

func byteOrder(big bool) string {
	if big {
		return "big"
	}

	return "little"
}
