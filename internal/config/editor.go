package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/polarization.train/internal/optics/l1geom"
	"github.com/banshee-data/polarization.train/internal/optics/l2jones"
	"github.com/banshee-data/polarization.train/internal/units"
)

// DefaultConfigPath is the path to the canonical editor defaults file.
const DefaultConfigPath = "config/editor.defaults.json"

// EditorConfig holds the geometry and optics settings of the editor.
// Fields are pointers so a partial file leaves the rest at their defaults;
// the Get* methods resolve the effective value.
type EditorConfig struct {
	// Placement lattice
	GridSize *float64 `json:"grid_size,omitempty"`

	// Container rectangle, origin at (0,0)
	SceneWidth  *float64 `json:"scene_width,omitempty"`
	SceneHeight *float64 `json:"scene_height,omitempty"`

	// Beam band
	BeamLeft   *float64 `json:"beam_left,omitempty"`
	BeamTop    *float64 `json:"beam_top,omitempty"`
	BeamRight  *float64 `json:"beam_right,omitempty"`
	BeamBottom *float64 `json:"beam_bottom,omitempty"`

	// Element icons: native size times scale gives the bounding box
	ElementWidth  *float64 `json:"element_width,omitempty"`
	ElementHeight *float64 `json:"element_height,omitempty"`
	ElementScale  *float64 `json:"element_scale,omitempty"`

	// Optics
	InputState *string `json:"input_state,omitempty"` // named state, e.g. "vertical"
	AngleUnit  *string `json:"angle_unit,omitempty"`  // "deg" or "rad"
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// EmptyEditorConfig returns an EditorConfig with all fields unset.
func EmptyEditorConfig() *EditorConfig {
	return &EditorConfig{}
}

// DefaultEditorConfig returns an EditorConfig with every field set to the
// built-in default. It matches config/editor.defaults.json.
func DefaultEditorConfig() *EditorConfig {
	return &EditorConfig{
		GridSize:      ptrFloat64(l1geom.DefaultGridSize),
		SceneWidth:    ptrFloat64(500),
		SceneHeight:   ptrFloat64(500),
		BeamLeft:      ptrFloat64(0),
		BeamTop:       ptrFloat64(200),
		BeamRight:     ptrFloat64(600),
		BeamBottom:    ptrFloat64(220),
		ElementWidth:  ptrFloat64(50),
		ElementHeight: ptrFloat64(100),
		ElementScale:  ptrFloat64(0.6),
		InputState:    ptrString("vertical"),
		AngleUnit:     ptrString(units.Degrees),
	}
}

// LoadEditorConfig loads an EditorConfig from a JSON file.
// The file must have a .json extension and be at most 1MB. Fields omitted
// from the file keep their defaults.
func LoadEditorConfig(path string) (*EditorConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyEditorConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *EditorConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/optics/l6editor/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadEditorConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the effective values describe a usable editor.
// Degenerate geometry is rejected here rather than during recomputation.
func (c *EditorConfig) Validate() error {
	snapper, err := l1geom.NewSnapper(c.GetGridSize())
	if err != nil {
		return fmt.Errorf("grid_size: %w", err)
	}
	if err := c.GetSceneBounds().Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if err := snapper.CheckLattice(c.GetSceneBounds()); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if err := c.GetBeamRegion().Validate(); err != nil {
		return fmt.Errorf("beam: %w", err)
	}
	if s := c.GetElementSize(); !(s.Width > 0 && s.Height > 0) {
		return fmt.Errorf("element size must be positive, got %gx%g", s.Width, s.Height)
	}
	if _, err := l2jones.ParseState(c.GetInputStateName()); err != nil {
		return fmt.Errorf("input_state: %w", err)
	}
	if u := c.GetAngleUnit(); !units.IsValidAngleUnit(u) {
		return fmt.Errorf("angle_unit must be one of %s, got %q", units.GetValidAngleUnitsString(), u)
	}
	return nil
}

// GetGridSize returns the lattice spacing or the default.
func (c *EditorConfig) GetGridSize() float64 {
	if c.GridSize == nil {
		return l1geom.DefaultGridSize
	}
	return *c.GridSize
}

// GetSceneBounds returns the container rectangle.
func (c *EditorConfig) GetSceneBounds() l1geom.BoundingBox {
	w, h := 500.0, 500.0
	if c.SceneWidth != nil {
		w = *c.SceneWidth
	}
	if c.SceneHeight != nil {
		h = *c.SceneHeight
	}
	return l1geom.BoundingBox{Right: w, Bottom: h}
}

// GetBeamRegion returns the beam band.
func (c *EditorConfig) GetBeamRegion() l1geom.BoundingBox {
	b := l1geom.BoundingBox{Left: 0, Top: 200, Right: 600, Bottom: 220}
	if c.BeamLeft != nil {
		b.Left = *c.BeamLeft
	}
	if c.BeamTop != nil {
		b.Top = *c.BeamTop
	}
	if c.BeamRight != nil {
		b.Right = *c.BeamRight
	}
	if c.BeamBottom != nil {
		b.Bottom = *c.BeamBottom
	}
	return b
}

// GetElementScale returns the icon scale factor or the default.
func (c *EditorConfig) GetElementScale() float64 {
	if c.ElementScale == nil {
		return 0.6
	}
	return *c.ElementScale
}

// GetElementSize returns the scaled bounding-box size of an element icon.
func (c *EditorConfig) GetElementSize() l1geom.Size {
	s := l1geom.Size{Width: 50, Height: 100}
	if c.ElementWidth != nil {
		s.Width = *c.ElementWidth
	}
	if c.ElementHeight != nil {
		s.Height = *c.ElementHeight
	}
	return s.Scale(c.GetElementScale())
}

// GetInputStateName returns the configured input state name or "vertical".
func (c *EditorConfig) GetInputStateName() string {
	if c.InputState == nil || *c.InputState == "" {
		return "vertical"
	}
	return *c.InputState
}

// GetInputState resolves the configured input state. Unknown names fall
// back to linear vertical; Validate reports them.
func (c *EditorConfig) GetInputState() l2jones.State {
	s, err := l2jones.ParseState(c.GetInputStateName())
	if err != nil {
		return l2jones.LinearVertical()
	}
	return s
}

// GetAngleUnit returns the unit used for element angles on input.
func (c *EditorConfig) GetAngleUnit() string {
	if c.AngleUnit == nil || *c.AngleUnit == "" {
		return units.Degrees
	}
	return *c.AngleUnit
}
