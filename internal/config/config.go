// Package config handles cubeburst configuration loading and management.
package config

import "math"

// Vec3 is a YAML-friendly 3-vector, written as [x, y, z].
type Vec3 [3]float64

// Config holds all settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Camera   CameraConfig   `yaml:"camera"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Scene    SceneConfig    `yaml:"scene"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Source is the file the config was loaded from, if any.
	Source string `yaml:"-"`
}

// ViewportConfig is the canvas size in device-independent units.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CameraConfig describes the fixed camera.
type CameraConfig struct {
	Projection string  `yaml:"projection"` // ortho | perspective
	Eye        Vec3    `yaml:"eye"`
	Target     Vec3    `yaml:"target"`
	Up         Vec3    `yaml:"up"`
	Left       float64 `yaml:"left"`
	Right      float64 `yaml:"right"`
	Bottom     float64 `yaml:"bottom"`
	Top        float64 `yaml:"top"`
	FOV        float64 `yaml:"fov"` // radians
	Aspect     float64 `yaml:"aspect"`
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
	Fit        string  `yaml:"fit"` // width | height
	FitFactor  float64 `yaml:"fit_factor"`
}

// PipelineConfig holds the transform conventions.
type PipelineConfig struct {
	RotationOrder string  `yaml:"rotation_order"` // xyz | yxz
	Translation   string  `yaml:"translation"`    // subtract | add
	HalfExtent    float64 `yaml:"half_extent"`
}

// SceneConfig holds the scene population and animation.
type SceneConfig struct {
	Variant   string          `yaml:"variant"` // stream | single
	Seed      uint64          `yaml:"seed"`    // 0 = random
	Flag      FlagConfig      `yaml:"flag"`
	FlagCube  CubeConfig      `yaml:"flag_cube"`
	Stream    StreamConfig    `yaml:"stream"`
	Explosion ExplosionConfig `yaml:"explosion"`
}

// FlagConfig holds the flag overlay settings.
type FlagConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Path          string  `yaml:"path"` // empty = built-in flag
	WidthFraction float64 `yaml:"width_fraction"`
}

// CubeConfig is the initial state of one cube.
type CubeConfig struct {
	Rotation        Vec3    `yaml:"rotation"`
	AngularVelocity Vec3    `yaml:"angular_velocity"`
	Position        Vec3    `yaml:"position"`
	Velocity        Vec3    `yaml:"velocity"`
	Scale           float64 `yaml:"scale"`
	Explosion       float64 `yaml:"explosion"`
	Color           string  `yaml:"color"`
}

// StreamConfig holds the streaming layout and spawn ranges.
type StreamConfig struct {
	Start             float64 `yaml:"start"`
	End               float64 `yaml:"end"`
	Step              float64 `yaml:"step"`
	Exit              float64 `yaml:"exit"`
	Spawn             float64 `yaml:"spawn"`
	YMin              float64 `yaml:"y_min"`
	YMax              float64 `yaml:"y_max"`
	ZMin              float64 `yaml:"z_min"`
	ZMax              float64 `yaml:"z_max"`
	SpeedMin          float64 `yaml:"speed_min"`
	SpeedMax          float64 `yaml:"speed_max"`
	RotationMagnitude float64 `yaml:"rotation_magnitude"`
	AngularSpeed      float64 `yaml:"angular_speed"`
	Color             string  `yaml:"color"`
	AltColor          string  `yaml:"alt_color"`
	AltChance         float64 `yaml:"alt_chance"`
}

// ExplosionConfig holds the flag carrier's explosion driver settings.
type ExplosionConfig struct {
	Mode      string  `yaml:"mode"` // fixed | oscillate | spring
	Max       float64 `yaml:"max"`
	Period    float64 `yaml:"period"`
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// RenderConfig holds stroke and output settings.
type RenderConfig struct {
	StrokeWidth  float64    `yaml:"stroke_width"`
	ShadowOffset [2]float64 `yaml:"shadow_offset"`
	Background   string     `yaml:"background"`
	FPS          int        `yaml:"fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config reproducing the streaming sketch.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  1920,
			Height: 1080,
		},
		Camera: CameraConfig{
			Projection: "ortho",
			Eye:        Vec3{0, 15, -30},
			Target:     Vec3{0, 0, 0},
			Up:         Vec3{0, 1, 0},
			Left:       -60,
			Right:      60,
			Bottom:     -60,
			Top:        60,
			FOV:        0.6 * math.Pi,
			Aspect:     1,
			Near:       0.001,
			Far:        300,
			Fit:        "width",
			FitFactor:  2,
		},
		Pipeline: PipelineConfig{
			RotationOrder: "xyz",
			Translation:   "subtract",
			HalfExtent:    1,
		},
		Scene: SceneConfig{
			Variant: "stream",
			Flag: FlagConfig{
				Enabled:       true,
				WidthFraction: 0.4,
			},
			FlagCube: CubeConfig{
				Rotation:        Vec3{0, math.Pi / 8, 0},
				AngularVelocity: Vec3{0, 0.15, 0},
				Scale:           1.5,
				Explosion:       0.5,
				Color:           "#ffffff",
			},
			Stream: StreamConfig{
				Start:             -20,
				End:               20,
				Step:              6,
				Exit:              20,
				Spawn:             -20,
				YMin:              -15,
				YMax:              0,
				ZMin:              15,
				ZMax:              15,
				SpeedMin:          0.4,
				SpeedMax:          1,
				RotationMagnitude: 1,
				AngularSpeed:      0.3,
				Color:             "#ffffff",
				AltColor:          "#aa0000",
				AltChance:         0.5,
			},
			Explosion: ExplosionConfig{
				Mode:      "fixed",
				Max:       0.5,
				Period:    2,
				Frequency: 6,
				Damping:   0.4,
			},
		},
		Render: RenderConfig{
			StrokeWidth:  2,
			ShadowOffset: [2]float64{5, 5},
			Background:   "#000000",
			FPS:          30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
