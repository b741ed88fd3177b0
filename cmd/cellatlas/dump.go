package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var flagDumpTimeout time.Duration

var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Write the atlas for the configured font as a PNG",
	Long: `Rasterizes the atlas for the configured font at its measured cell size
and writes it as a PNG: 256 columns (code points 0-255) by 17 rows (the
default style, then palette colors 0-15).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().DurationVar(&flagDumpTimeout, "timeout", 30*time.Second, "Give up on the build after this long")
}

func runDump(_ *cobra.Command, args []string) error {
	out := "atlas.png"
	if len(args) > 0 {
		out = args[0]
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	defer reg.Close()

	fd := reg.Config.DeviceFont()
	m, err := reg.Fonts.Measure(fd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), flagDumpTimeout)
	defer cancel()
	start := time.Now()
	atlas, err := reg.Builder.Build(ctx, fd, m)
	if err != nil {
		return err
	}

	if err := writePNG(out, func(f *os.File) error { return png.Encode(f, atlas.Image()) }); err != nil {
		return err
	}
	fmt.Printf("%s: %s cells %s, %v, built in %v\n", out, fd, m, atlas.Bounds().Size(), time.Since(start).Round(time.Millisecond))
	return nil
}
