package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/banshee-data/polarization.train/internal/optics/sweep"
	"github.com/banshee-data/polarization.train/internal/security"
)

type sweepOptions struct {
	input    string
	elements []string
	rotate   string
	from     float64
	to       float64
	step     float64
	htmlPath string
	pngPath  string
}

func newSweepCmd(root *rootOptions) *cobra.Command {
	opts := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Rotate one element through a range of angles",
		Long: `sweep places elements like eval, then rotates the element named by --rotate
from --from to --to degrees and writes the output Stokes parameters as CSV.
Optional --html and --png write a chart of the same data.`,
		Example: `  polartrain sweep -e pol@85,180 --rotate e1 --step 5
  polartrain sweep -e pol@35,180 -e qwp@85,180 --input h --rotate e2 --html qwp.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := buildScene(root, opts.input, opts.elements)
			if err != nil {
				return err
			}
			angles, err := sweep.Angles(opts.from, opts.to, opts.step)
			if err != nil {
				return err
			}
			samples, err := sweep.Rotate(scene.Input(), scene.Last().Train, opts.rotate, angles)
			if err != nil {
				return err
			}

			if err := sweep.WriteCSV(cmd.OutOrStdout(), samples); err != nil {
				return err
			}

			title := fmt.Sprintf("%s rotation sweep", opts.rotate)
			if opts.htmlPath != "" {
				if err := writeHTML(opts.htmlPath, title, samples); err != nil {
					return err
				}
			}
			if opts.pngPath != "" {
				if err := security.ValidateOutputPath(opts.pngPath, ".png", ".svg", ".pdf"); err != nil {
					return fmt.Errorf("--png: %w", err)
				}
				if err := sweep.SavePlot(filepath.Clean(opts.pngPath), title, samples); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Input state name (overrides config)")
	cmd.Flags().StringArrayVarP(&opts.elements, "element", "e", nil, "Element spec KIND[:ANGLE]@X,Y (repeatable)")
	cmd.Flags().StringVar(&opts.rotate, "rotate", "", "ID of the element to rotate (e1, e2, ...)")
	cmd.Flags().Float64Var(&opts.from, "from", 0, "First angle in degrees")
	cmd.Flags().Float64Var(&opts.to, "to", 180, "Last angle in degrees")
	cmd.Flags().Float64Var(&opts.step, "step", 15, "Angle step in degrees")
	cmd.Flags().StringVar(&opts.htmlPath, "html", "", "Write an HTML chart to this path")
	cmd.Flags().StringVar(&opts.pngPath, "png", "", "Write a PNG plot to this path")
	_ = cmd.MarkFlagRequired("rotate")
	return cmd
}

func writeHTML(path, title string, samples []sweep.Sample) error {
	if err := security.ValidateOutputPath(path, ".html", ".htm"); err != nil {
		return fmt.Errorf("--html: %w", err)
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create html output: %w", err)
	}
	if err := sweep.RenderHTML(f, title, samples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
