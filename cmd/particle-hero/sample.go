package main

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/particle-hero/field"
	"github.com/lixenwraith/particle-hero/shape"
)

type sampleOptions struct {
	width, height int
	preview       int
	seed          int64
}

func newSampleCmd(root *rootOptions) *cobra.Command {
	so := &sampleOptions{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample the morph shape for a viewport and print statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			logger, closeLog, err := consoleLogger(cmd, cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			seed := so.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			sampler := shape.NewGlyphSampler(cfg.Shape,
				shape.WithRand(rand.New(rand.NewSource(seed))),
				shape.WithLogger(logger.Named("shape")))

			f := field.New(cfg.Field, sampler, field.WithLogger(logger.Named("field")))
			f.Build(so.width, so.height)
			f.MorphIn()

			logger.Debug("sampled", zap.Int64("seed", seed))
			return writeSample(cmd.OutOrStdout(), f, sampler.Stride(so.width, so.height), so)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&so.width, "width", 800, "viewport width in logical px")
	fl.IntVar(&so.height, "height", 400, "viewport height in logical px")
	fl.IntVar(&so.preview, "preview", 80, "preview width in characters, 0 disables")
	fl.Int64Var(&so.seed, "seed", 0, "shuffle seed, 0 uses the clock")
	return cmd
}

func writeSample(w io.Writer, f *field.Field, stride int, so *sampleOptions) error {
	cols, rows := f.Lattice()
	coords := f.Coords()

	var b strings.Builder
	fmt.Fprintf(&b, "viewport   %dx%d\n", so.width, so.height)
	fmt.Fprintf(&b, "stride     %d\n", stride)
	fmt.Fprintf(&b, "coords     %d\n", len(coords))
	fmt.Fprintf(&b, "lattice    %dx%d (%d particles)\n", cols, rows, f.Len())
	fmt.Fprintf(&b, "active     %d\n", f.ActiveCount())
	fmt.Fprintf(&b, "state      %s\n", f.State())

	if so.preview > 0 && so.width > 0 && so.height > 0 && len(coords) > 0 {
		b.WriteByte('\n')
		b.WriteString(preview(coords, so.width, so.height, so.preview))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// preview plots coordinates onto a character grid, halving rows for cell aspect
func preview(coords []shape.Point, width, height, cols int) string {
	rows := max(1, cols*height/width/2)
	grid := make([][]byte, rows)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(".", cols))
	}
	for _, p := range coords {
		c := p.X * cols / width
		r := p.Y * rows / height
		if c >= 0 && c < cols && r >= 0 && r < rows {
			grid[r][c] = '#'
		}
	}
	var b strings.Builder
	for _, line := range grid {
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String()
}
