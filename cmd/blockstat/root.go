package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/arloliu/planar/block"
	"github.com/arloliu/planar/format"
)

// app holds the state shared by all subcommands.
type app struct {
	verbose bool
	logger  log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: log.NewNopLogger()}

	cmd := &cobra.Command{
		Use:   "blockstat",
		Short: "Inspect and compress planar numeric blocks",
		Long: `blockstat converts text matrices into planar frames and back, and
measures how each compression codec performs on a block, with and without
the sign/exponent/mantissa bit-plane split.

Text input starts with a "<cols>,<rows>" header followed by one line per row.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newInspectCmd(a),
		newRatioCmd(a),
		newPackCmd(a),
		newUnpackCmd(a),
	)

	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}

	return level.NewFilter(logger, level.AllowInfo())
}

// blockOptions returns the block options for codec name.
func (a *app) blockOptions(codec string) ([]block.Option, error) {
	ct, ok := format.ParseCompressionType(codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", codec)
	}

	return []block.Option{block.WithCompression(ct), block.WithLogger(a.logger)}, nil
}

// codecList resolves the --codec flag; an empty name selects every codec.
func codecList(name string) ([]format.CompressionType, error) {
	if name == "" {
		return format.CompressionTypes, nil
	}

	ct, ok := format.ParseCompressionType(name)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", name)
	}

	return []format.CompressionType{ct}, nil
}
