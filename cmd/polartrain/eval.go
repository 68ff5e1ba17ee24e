package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
	"github.com/banshee-data/polarization.train/internal/optics/l3elements"
	"github.com/banshee-data/polarization.train/internal/optics/l6editor"
	"github.com/banshee-data/polarization.train/internal/units"
)

type evalOptions struct {
	input    string
	elements []string
	trace    bool
	jsonOut  bool
}

func newEvalCmd(root *rootOptions) *cobra.Command {
	opts := &evalOptions{}
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Place elements and print the output polarization",
		Long: `Each --element is KIND[:ANGLE]@X,Y where X,Y is the raw top-left drop
position. KIND is hwp, qwp or pol; ANGLE defaults to 0 and accepts a deg or
rad suffix. Elements are added in flag order.`,
		Example: `  polartrain eval --element hwp:45@85,180
  polartrain eval --input horizontal --element pol:90deg@85,180 --trace`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.OutOrStdout(), root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Input state name (overrides config): "+strings.Join(l2jones.StateNames, ", "))
	cmd.Flags().StringArrayVarP(&opts.elements, "element", "e", nil, "Element spec KIND[:ANGLE]@X,Y (repeatable)")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Print the state after every element")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the result as JSON")
	return cmd
}

func runEval(w io.Writer, root *rootOptions, opts *evalOptions) error {
	scene, err := buildScene(root, opts.input, opts.elements)
	if err != nil {
		return err
	}

	r := scene.Last()
	if opts.jsonOut {
		return writeResultJSON(w, scene, r)
	}
	writeResultText(w, scene, r, opts.trace)
	return nil
}

// buildScene loads the config, applies an optional input override and adds
// each element spec in order. Element i gets the ID "e<i+1>".
func buildScene(root *rootOptions, input string, specs []string) (*l6editor.Scene, error) {
	cfg, err := root.loadConfig()
	if err != nil {
		return nil, err
	}

	var sceneOpts []l6editor.Option
	if input != "" {
		in, err := l2jones.ParseState(input)
		if err != nil {
			return nil, err
		}
		sceneOpts = append(sceneOpts, l6editor.WithInputState(in))
	}

	scene, err := l6editor.NewScene(cfg, sceneOpts...)
	if err != nil {
		return nil, err
	}

	for i, spec := range specs {
		kind, angle, pos, err := parseElementSpec(spec, cfg.GetAngleUnit())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i+1, err)
		}
		model, err := l3elements.NewModelWithID(fmt.Sprintf("e%d", i+1), kind, angle)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i+1, err)
		}
		if _, _, err := scene.Add(model, pos); err != nil {
			return nil, fmt.Errorf("element %d: %w", i+1, err)
		}
	}
	return scene, nil
}

// parseElementSpec parses KIND[:ANGLE]@X,Y.
func parseElementSpec(spec, angleUnit string) (l3elements.Kind, float64, l1geom.Position, error) {
	head, at, ok := strings.Cut(spec, "@")
	if !ok {
		return 0, 0, l1geom.Position{}, fmt.Errorf("spec %q: missing @X,Y", spec)
	}

	kindStr, angleStr, hasAngle := strings.Cut(head, ":")
	kind, err := l3elements.ParseKind(kindStr)
	if err != nil {
		return 0, 0, l1geom.Position{}, err
	}

	angle := 0.0
	if hasAngle {
		angle, err = units.ParseAngle(angleStr, angleUnit)
		if err != nil {
			return 0, 0, l1geom.Position{}, err
		}
	}

	pos, err := parsePair(at)
	if err != nil {
		return 0, 0, l1geom.Position{}, fmt.Errorf("spec %q: %w", spec, err)
	}
	return kind, angle, l1geom.Position{X: pos[0], Y: pos[1]}, nil
}

// parsePair parses "A,B" into two floats.
func parsePair(s string) ([2]float64, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return [2]float64{}, fmt.Errorf("expected A,B, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("invalid number %q: %w", a, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return [2]float64{}, fmt.Errorf("invalid number %q: %w", b, err)
	}
	return [2]float64{x, y}, nil
}

func writeResultText(w io.Writer, scene *l6editor.Scene, r l6editor.Result, trace bool) {
	fmt.Fprintf(w, "elements: %d placed, %d on beam %v\n", len(scene.Elements()), len(r.Train), scene.BeamRegion())
	for i, p := range r.Train {
		fmt.Fprintf(w, "  %d. %-4s %v at (%g,%g)\n", i+1, p.ID(), p.Model, p.Center.X, p.Center.Y)
		if trace {
			fmt.Fprintf(w, "     -> %s\n", formatState(r.Trace[i].Output))
		}
	}
	fmt.Fprintf(w, "input:  %s\n", formatState(r.Input))
	fmt.Fprintf(w, "output: %s\n", formatState(r.Output))
	st := r.Stokes
	fmt.Fprintf(w, "stokes: S0=%.4f S1=%.4f S2=%.4f S3=%.4f\n", st.S0, st.S1, st.S2, st.S3)
	x, y, z := st.Poincare()
	fmt.Fprintf(w, "poincare: (%.4f, %.4f, %.4f)\n", x, y, z)
}

func formatState(s l2jones.State) string {
	return fmt.Sprintf("(%s, %s)", formatComplex(s.X), formatComplex(s.Y))
}

func formatComplex(c complex128) string {
	re, im := clean(real(c)), clean(imag(c))
	return fmt.Sprintf("%.4f%+.4fi", re, im)
}

// clean maps values that would print as -0.0000 to zero.
func clean(v float64) float64 {
	if v > -5e-5 && v < 5e-5 {
		return 0
	}
	return v
}

type jsonElement struct {
	ID    string  `json:"id"`
	Kind  string  `json:"kind"`
	Angle float64 `json:"angle_deg"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type jsonResult struct {
	Placed   int           `json:"placed"`
	Train    []jsonElement `json:"train"`
	Output   [2][2]float64 `json:"output"` // [[re, im] of X, [re, im] of Y]
	Stokes   [4]float64    `json:"stokes"`
	Poincare [3]float64    `json:"poincare"`
}

func writeResultJSON(w io.Writer, scene *l6editor.Scene, r l6editor.Result) error {
	out := jsonResult{
		Placed: len(scene.Elements()),
		Train:  make([]jsonElement, 0, len(r.Train)),
		Output: [2][2]float64{
			{real(r.Output.X), imag(r.Output.X)},
			{real(r.Output.Y), imag(r.Output.Y)},
		},
		Stokes: [4]float64{r.Stokes.S0, r.Stokes.S1, r.Stokes.S2, r.Stokes.S3},
	}
	for _, p := range r.Train {
		out.Train = append(out.Train, jsonElement{
			ID:    p.ID(),
			Kind:  p.Model.Kind().String(),
			Angle: p.Model.Angle(),
			X:     p.Center.X,
			Y:     p.Center.Y,
		})
	}
	x, y, z := r.Stokes.Poincare()
	out.Poincare = [3]float64{x, y, z}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
