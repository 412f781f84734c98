package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bcf-backend/internal/chart"
)

func newRenderCmd(g *globalFlags) *cobra.Command {
	var (
		outPath string
		width   int
		height  int
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the sequence-current chart to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.service(cmd)
			if err != nil {
				return err
			}
			data, src := svc.ChartData(cmd.Context())

			opts := chart.DefaultOptions()
			if width > 0 {
				opts.Width = width
			}
			if height > 0 {
				opts.Height = height
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			if err := chart.RenderPNG(f, data, opts); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (source: %s)\n", outPath, src)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&outPath, "out", "chart.png", "Output PNG path")
	f.IntVar(&width, "width", 0, "Image width in pixels")
	f.IntVar(&height, "height", 0, "Image height in pixels")
	return cmd
}
