// Package config loads Dimenshift settings from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/dimenshift/pkg/math4d"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Window  Window  `yaml:"window"`
	Camera  Camera  `yaml:"camera"`
	Screen  Screen  `yaml:"screen"`
	Physics Physics `yaml:"physics"`
	Scene   Scene   `yaml:"scene"`
	Log     Log     `yaml:"log"`
}

// Window controls the output surface and frame pacing.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Background string `yaml:"background"` // "R,G,B"
}

// Camera holds the starting viewpoint and the automatic flight path.
type Camera struct {
	Position    Vec4    `yaml:"position"`
	FocalLength float32 `yaml:"focal_length"`
	Orbit       bool    `yaml:"orbit"`

	OrbitRadius float32 `yaml:"orbit_radius"`
	OrbitSpeed  float32 `yaml:"orbit_speed"`
	OrbitHeight float32 `yaml:"orbit_height"`
	WCenter     float32 `yaml:"w_center"`
	WAmplitude  float32 `yaml:"w_amplitude"`
	WSpeed      float32 `yaml:"w_speed"`

	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`

	MoveSpeed float32 `yaml:"move_speed"` // units per second in manual flight
	TurnSpeed float32 `yaml:"turn_speed"` // radians per second in manual flight
}

// Screen parameterizes the 3-flat to pixel projection.
type Screen struct {
	ViewerDistance float32 `yaml:"viewer_distance"`
	PixelScale     float32 `yaml:"pixel_scale"`
	Near           float32 `yaml:"near"`
	// ReferenceHeight is the viewport height PixelScale was tuned for.
	// Zero disables rescaling.
	ReferenceHeight int `yaml:"reference_height"`
}

// ScaleFor returns PixelScale adjusted for a viewport height in pixels.
func (s Screen) ScaleFor(height int) float32 {
	if s.ReferenceHeight <= 0 || height <= 0 {
		return s.PixelScale
	}
	return s.PixelScale * float32(height) / float32(s.ReferenceHeight)
}

// Physics configures the simulated world.
type Physics struct {
	Gravity       Vec4    `yaml:"gravity"`
	FloorHeight   float32 `yaml:"floor_height"`
	FloorFriction float32 `yaml:"floor_friction"`
	// ClampDrag stops drag*dt > 1 from reversing velocity.
	ClampDrag bool `yaml:"clamp_drag"`
}

// Scene selects what is shown.
type Scene struct {
	Shapes       []string `yaml:"shapes"`
	MeshFiles    []string `yaml:"mesh_files,omitempty"`
	CycleSeconds float32  `yaml:"cycle_seconds"`
	SpinAlpha    float32  `yaml:"spin_alpha"`
	SpinBeta     float32  `yaml:"spin_beta"`
	Axes         bool     `yaml:"axes"`
	Grid         Grid     `yaml:"grid"`
	Bouncer      Bouncer  `yaml:"bouncer"`
}

// Grid is the reference floor grid.
type Grid struct {
	Enabled  bool    `yaml:"enabled"`
	HalfSize int     `yaml:"half_size"`
	Step     float32 `yaml:"step"`
	Y        float32 `yaml:"y"`
}

// Bouncer is the physics demo body.
type Bouncer struct {
	Enabled    bool    `yaml:"enabled"`
	Shape      string  `yaml:"shape"`
	Position   Vec4    `yaml:"position"`
	Scale      float32 `yaml:"scale"`
	Mass       float32 `yaml:"mass"`
	Drag       float32 `yaml:"drag"`
	Bounciness float32 `yaml:"bounciness"`
	Impulse    Vec4    `yaml:"impulse"` // applied on the kick key
}

// Log configures the zap logger.
type Log struct {
	Level    string   `yaml:"level"`
	Encoding string   `yaml:"encoding"` // json or console
	Outputs  []string `yaml:"outputs"`
}

// Vec4 is a 4D vector written in YAML as a four-element sequence.
type Vec4 [4]float32

// V returns the vector as a math4d.Vec4.
func (v Vec4) V() math4d.Vec4 {
	return math4d.V4(v[0], v[1], v[2], v[3])
}

// UnmarshalYAML requires exactly four numbers.
func (v *Vec4) UnmarshalYAML(node *yaml.Node) error {
	var xs []float32
	if err := node.Decode(&xs); err != nil {
		return err
	}
	if len(xs) != 4 {
		return fmt.Errorf("line %d: vector needs 4 components, got %d", node.Line, len(xs))
	}
	copy(v[:], xs)
	return nil
}

// MarshalYAML writes the vector as a flow sequence.
func (v Vec4) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, x := range v {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: strconv.FormatFloat(float64(x), 'g', -1, 32),
		})
	}
	return node, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Title:      "Dimenshift",
			Width:      1280,
			Height:     720,
			FPS:        60,
			Background: "30,30,40",
		},
		Camera: Camera{
			Position:        Vec4{0, 0, 0, -3.5},
			FocalLength:     2,
			Orbit:           true,
			OrbitRadius:     6,
			OrbitSpeed:      0.5,
			OrbitHeight:     2,
			WCenter:         -4,
			WAmplitude:      2,
			WSpeed:          0.3,
			SpringFrequency: 4,
			SpringDamping:   1,
			MoveSpeed:       3,
			TurnSpeed:       1.5,
		},
		Screen: Screen{
			ViewerDistance:  4,
			PixelScale:      600,
			Near:            0.1,
			ReferenceHeight: 720,
		},
		Physics: Physics{
			Gravity:       Vec4{0, -9.8, 0, 0},
			FloorHeight:   -1,
			FloorFriction: 0.9,
		},
		Scene: Scene{
			Shapes:       []string{"tesseract", "pentatope", "16-cell"},
			CycleSeconds: 5,
			SpinAlpha:    1,
			SpinBeta:     0.3,
			Grid: Grid{
				Enabled:  true,
				HalfSize: 10,
				Step:     0.5,
				Y:        -2,
			},
			Bouncer: Bouncer{
				Enabled:    true,
				Shape:      "pentatope",
				Position:   Vec4{2, 4, 0, 1},
				Scale:      0.5,
				Mass:       1,
				Drag:       0.05,
				Bounciness: 0.7,
				Impulse:    Vec4{0, 8, 0, 2},
			},
		},
		Log: Log{
			Level:    "info",
			Encoding: "console",
			Outputs:  []string{"stderr"},
		},
	}
}

// Load reads and validates the YAML file at path on top of Default.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML from r over the defaults and validates the result.
// Unknown keys are rejected. An empty document yields the defaults.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as YAML.
func (c Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Validate reports every out-of-range setting in one error wrapping ErrInvalid.
func (c Config) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Window.FPS > 0 && c.Window.FPS <= 240, "window.fps %d must be in 1..240", c.Window.FPS)
	if _, err := ParseRGB(c.Window.Background); err != nil {
		problems = append(problems, err.Error())
	}

	check(c.Camera.FocalLength > 0, "camera.focal_length %v must be positive", c.Camera.FocalLength)
	check(c.Camera.OrbitRadius >= 0, "camera.orbit_radius %v must not be negative", c.Camera.OrbitRadius)
	check(c.Camera.SpringFrequency > 0, "camera.spring_frequency %v must be positive", c.Camera.SpringFrequency)
	check(c.Camera.SpringDamping >= 0, "camera.spring_damping %v must not be negative", c.Camera.SpringDamping)

	check(c.Screen.ViewerDistance > c.Screen.Near, "screen.viewer_distance %v must exceed screen.near %v", c.Screen.ViewerDistance, c.Screen.Near)
	check(c.Screen.PixelScale > 0, "screen.pixel_scale %v must be positive", c.Screen.PixelScale)
	check(c.Screen.Near >= 0, "screen.near %v must not be negative", c.Screen.Near)

	check(c.Physics.FloorFriction >= 0 && c.Physics.FloorFriction <= 1, "physics.floor_friction %v must be in [0, 1]", c.Physics.FloorFriction)

	check(len(c.Scene.Shapes)+len(c.Scene.MeshFiles) > 0, "scene needs at least one shape or mesh file")
	check(c.Scene.CycleSeconds > 0, "scene.cycle_seconds %v must be positive", c.Scene.CycleSeconds)
	if c.Scene.Grid.Enabled {
		check(c.Scene.Grid.HalfSize > 0 && c.Scene.Grid.Step > 0, "scene.grid needs positive half_size and step")
	}
	if b := c.Scene.Bouncer; b.Enabled {
		check(b.Mass > 0, "scene.bouncer.mass %v must be positive", b.Mass)
		check(b.Scale > 0, "scene.bouncer.scale %v must be positive", b.Scale)
		check(b.Bounciness >= 0, "scene.bouncer.bounciness %v must not be negative", b.Bounciness)
		check(b.Drag >= 0, "scene.bouncer.drag %v must not be negative", b.Drag)
	}

	check(c.Log.Encoding == "json" || c.Log.Encoding == "console", "log.encoding %q must be json or console", c.Log.Encoding)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// ParseRGB parses an "R,G,B" triple of 0-255 integers into an opaque color.
func ParseRGB(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("color %q must be R,G,B", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: component %d: %w", s, i, err)
		}
		rgb[i] = uint8(n)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}
