package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
)

func newSnapCmd(root *rootOptions) *cobra.Command {
	var at, size string
	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Snap a raw drop position to the placement grid",
		Example: `  polartrain snap --at 83,178
  polartrain snap --at 83,178 --size 30,60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			snapper, err := l1geom.NewSnapper(cfg.GetGridSize())
			if err != nil {
				return err
			}

			p, err := parsePair(at)
			if err != nil {
				return fmt.Errorf("--at: %w", err)
			}
			sz := cfg.GetElementSize()
			if size != "" {
				wh, err := parsePair(size)
				if err != nil {
					return fmt.Errorf("--size: %w", err)
				}
				sz = l1geom.Size{Width: wh[0], Height: wh[1]}
			}

			box := l1geom.BoxAt(l1geom.Position{X: p[0], Y: p[1]}, sz)
			center, snapped := snapper.SnapBox(box, cfg.GetSceneBounds())
			beam := cfg.GetBeamRegion()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "center:   (%g,%g)\n", center.X, center.Y)
			fmt.Fprintf(w, "top-left: (%g,%g)\n", snapped.Left, snapped.Top)
			fmt.Fprintf(w, "box:      %v\n", snapped)
			fmt.Fprintf(w, "on beam:  %t\n", snapped.Intersects(beam))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Raw top-left drop position X,Y")
	cmd.Flags().StringVar(&size, "size", "", "Element size W,H (default from config)")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}
