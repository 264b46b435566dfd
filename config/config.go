package config

import (
	"fmt"
	"github.com/pelletier/go-toml/v2"
	poseoverlay "github.com/swdee/go-poseoverlay"
	"github.com/swdee/go-poseoverlay/render"
	"github.com/swdee/go-poseoverlay/topology"
	"github.com/swdee/go-poseoverlay/transform"
	"os"
	"path/filepath"
)

// Geometry is the [geometry] table of the configuration file
type Geometry struct {
	InputWidth    int     `toml:"input_width"`
	InputHeight   int     `toml:"input_height"`
	DisplayWidth  float64 `toml:"display_width"`
	DisplayHeight float64 `toml:"display_height"`
	OffsetX       int     `toml:"offset_x"`
	OffsetY       int     `toml:"offset_y"`
	Mirror        bool    `toml:"mirror"`
}

// Config defines the overlay settings read from a TOML file
type Config struct {
	// Topology is the skeleton topology file, relative paths are resolved
	// against the config file.  Empty uses the COCO 17 keypoint skeleton.
	Topology string `toml:"topology"`
	// Threshold is the minimum joint confidence to render
	Threshold float32 `toml:"threshold"`
	// JointColor and BoneColor are color names or hex values
	JointColor string  `toml:"joint_color"`
	BoneColor  string  `toml:"bone_color"`
	JointSize  float64 `toml:"joint_size"`
	BoneWidth  float64 `toml:"bone_width"`
	// Palette colors joints and bones by body region using the COCO palette
	Palette bool `toml:"palette"`
	// JointCount is the number of joints the detector produces, zero skips
	// the topology check
	JointCount int      `toml:"joint_count"`
	Geometry   Geometry `toml:"geometry"`

	// dir is the directory of the loaded file
	dir string
}

// Default returns the configuration used for keys missing from a file
func Default() Config {
	return Config{
		Threshold:  poseoverlay.DefaultConfidenceThreshold,
		JointColor: "#00ff00",
		BoneColor:  "#00ff00",
		JointSize:  10,
		BoneWidth:  4,
	}
}

// Load reads the configuration from a TOML file
func Load(file string) (Config, error) {

	data, err := os.ReadFile(file)

	if err != nil {
		return Config{}, fmt.Errorf("error opening file: %w", err)
	}

	cfg, err := Parse(data)

	if err != nil {
		return Config{}, fmt.Errorf("error reading %s: %w", file, err)
	}

	cfg.dir = filepath.Dir(file)

	return cfg, nil
}

// Parse decodes a TOML document on top of the Default configuration
func Parse(data []byte) (Config, error) {

	cfg := Default()

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", poseoverlay.ErrConfigInvalid, err)
	}

	return cfg, nil
}

// LoadTopology returns the configured skeleton topology
func (c Config) LoadTopology() (*topology.Topology, error) {

	if c.Topology == "" {
		return topology.COCO17(), nil
	}

	file := c.Topology

	if !filepath.IsAbs(file) && c.dir != "" {
		file = filepath.Join(c.dir, file)
	}

	return topology.LoadFile(file)
}

// Options resolves the colors and geometry into renderer options
func (c Config) Options() (poseoverlay.Options, error) {

	jointClr, err := render.ParseColor(c.JointColor)

	if err != nil {
		return poseoverlay.Options{}, fmt.Errorf("%w: joint_color: %w",
			poseoverlay.ErrConfigInvalid, err)
	}

	boneClr, err := render.ParseColor(c.BoneColor)

	if err != nil {
		return poseoverlay.Options{}, fmt.Errorf("%w: bone_color: %w",
			poseoverlay.ErrConfigInvalid, err)
	}

	opts := poseoverlay.Options{
		Geometry: transform.Geometry{
			InputWidth:    c.Geometry.InputWidth,
			InputHeight:   c.Geometry.InputHeight,
			DisplayWidth:  c.Geometry.DisplayWidth,
			DisplayHeight: c.Geometry.DisplayHeight,
			OffsetX:       c.Geometry.OffsetX,
			OffsetY:       c.Geometry.OffsetY,
			Mirror:        c.Geometry.Mirror,
		},
		JointColor: jointClr,
		BoneColor:  boneClr,
		JointSize:  c.JointSize,
		BoneWidth:  c.BoneWidth,
		JointCount: c.JointCount,
	}

	if c.Palette {
		opts.JointPalette = render.KeyPointColors()
		opts.BonePalette = render.LimbColors()
	}

	return opts, nil
}

// WithImageSize returns the config with any unset input or display
// dimensions taken from an image of the given size
func (c Config) WithImageSize(width, height int) Config {

	if c.Geometry.InputWidth == 0 {
		c.Geometry.InputWidth = width
	}
	if c.Geometry.InputHeight == 0 {
		c.Geometry.InputHeight = height
	}
	if c.Geometry.DisplayWidth == 0 {
		c.Geometry.DisplayWidth = float64(width)
	}
	if c.Geometry.DisplayHeight == 0 {
		c.Geometry.DisplayHeight = float64(height)
	}

	return c
}
