package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/cubeburst/pkg/render"
	"github.com/taigrr/cubeburst/pkg/scene"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	spec, err := cfg.CameraSpec()
	if err != nil {
		t.Fatal(err)
	}
	if spec != render.DefaultCameraSpec() {
		t.Errorf("camera spec = %+v, want %+v", spec, render.DefaultCameraSpec())
	}

	sc, err := cfg.SceneConfig()
	if err != nil {
		t.Fatal(err)
	}
	want := scene.DefaultConfig()
	if sc.FlagCube != want.FlagCube {
		t.Errorf("flag cube = %+v, want %+v", sc.FlagCube, want.FlagCube)
	}
	if sc.Stream != want.Stream {
		t.Errorf("stream = %+v, want %+v", sc.Stream, want.Stream)
	}
	if sc.Explosion != want.Explosion {
		t.Errorf("explosion = %+v, want %+v", sc.Explosion, want.Explosion)
	}
	if sc.Flag == nil || sc.FlagFraction != 0.4 {
		t.Errorf("flag = %v fraction %v", sc.Flag, sc.FlagFraction)
	}
	if sc.ShadowOffset != want.ShadowOffset || sc.StrokeWidth != want.StrokeWidth {
		t.Errorf("render = %v/%v", sc.ShadowOffset, sc.StrokeWidth)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cubeburst.yaml")
	yamlContent := `
viewport:
  width: 640
  height: 480
camera:
  projection: perspective
  far: 1000
pipeline:
  rotation_order: yxz
  translation: add
scene:
  variant: single
  seed: 1234
  flag:
    enabled: false
  explosion:
    mode: oscillate
logging:
  level: warn
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(Overrides{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != configPath {
		t.Errorf("Source = %q, want %q", cfg.Source, configPath)
	}
	if cfg.Viewport.Width != 640 || cfg.Viewport.Height != 480 {
		t.Errorf("viewport = %+v", cfg.Viewport)
	}
	if cfg.Camera.Projection != "perspective" || cfg.Camera.Far != 1000 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	// unset keys keep their defaults
	if cfg.Camera.Eye != (Vec3{0, 15, -30}) {
		t.Errorf("eye = %v, want default", cfg.Camera.Eye)
	}
	if cfg.Scene.Seed != 1234 || cfg.Scene.Variant != "single" || cfg.Scene.Flag.Enabled {
		t.Errorf("scene = %+v", cfg.Scene)
	}
	if cfg.Scene.Stream.Exit != 20 {
		t.Errorf("stream exit = %v, want default 20", cfg.Scene.Stream.Exit)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}

	sc, err := cfg.SceneConfig()
	if err != nil {
		t.Fatal(err)
	}
	if sc.Flag != nil {
		t.Error("flag loaded although disabled")
	}
	if sc.Variant != scene.VariantSingle || sc.Explosion.Mode != scene.ExplosionOscillate {
		t.Errorf("scene config = %+v", sc)
	}
	if _, err := cfg.NewPipeline(); err != nil {
		t.Errorf("NewPipeline: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(configPath, []byte("viewport:\n  width: 640\n  height: 480\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Overrides{
		ConfigPath: configPath,
		Variant:    "single",
		Seed:       7,
		Width:      300,
		FPS:        12,
		Debug:      true,
		LogFile:    "/tmp/cb.log",
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Viewport.Width != 300 || cfg.Viewport.Height != 480 {
		t.Errorf("viewport = %+v, want width overridden and height from file", cfg.Viewport)
	}
	if cfg.Scene.Variant != "single" || cfg.Scene.Seed != 7 || cfg.Render.FPS != 12 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Scene, cfg.Render)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "/tmp/cb.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(Overrides{ConfigPath: filepath.Join(dir, "missing.yaml")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("viewport: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(Overrides{ConfigPath: bad}); err == nil {
		t.Error("malformed yaml should fail")
	}

	zero := filepath.Join(dir, "zero.yaml")
	if err := os.WriteFile(zero, []byte("viewport:\n  width: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(Overrides{ConfigPath: zero}); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero viewport error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative height", func(c *Config) { c.Viewport.Height = -1 }, "viewport"},
		{"projection", func(c *Config) { c.Camera.Projection = "fisheye" }, "fisheye"},
		{"fit axis", func(c *Config) { c.Camera.Fit = "diagonal" }, "diagonal"},
		{"rotation order", func(c *Config) { c.Pipeline.RotationOrder = "zyx" }, "zyx"},
		{"translation", func(c *Config) { c.Pipeline.Translation = "mirror" }, "mirror"},
		{"half extent", func(c *Config) { c.Pipeline.HalfExtent = 0 }, "half_extent"},
		{"fps", func(c *Config) { c.Render.FPS = 0 }, "fps"},
		{"variant", func(c *Config) { c.Scene.Variant = "swarm" }, "swarm"},
		{"explosion mode", func(c *Config) { c.Scene.Explosion.Mode = "implode" }, "implode"},
		{"flag explosion above max", func(c *Config) { c.Scene.FlagCube.Explosion = 0.8 }, "explosion 0.8 outside [0, 0.5]"},
		{"negative flag explosion", func(c *Config) { c.Scene.FlagCube.Explosion = -0.1 }, "scene.flag_cube"},
		{"oscillation period", func(c *Config) {
			c.Scene.Explosion.Mode = "oscillate"
			c.Scene.Explosion.Period = 0
		}, "period"},
		{"inverted bounds", func(c *Config) { c.Scene.Stream.YMin = 5 }, "inverted"},
		{"spawn after exit", func(c *Config) { c.Scene.Stream.Spawn = 30 }, "spawn"},
		{"alt chance", func(c *Config) { c.Scene.Stream.AltChance = 2 }, "alt_chance"},
		{"color", func(c *Config) { c.Scene.Stream.AltColor = "mauve" }, "alt_color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Scene.Seed = 99
	cfg.Camera.Projection = "perspective"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(Overrides{ConfigPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	loaded.Source = ""
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"viewport:", "rotation_order: xyz", "flag_cube:", "shadow_offset:"} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("encoded config missing %q", key)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	if ConfigDir() != filepath.Join(xdg, "cubeburst") {
		t.Skip("config dir does not follow XDG on this platform")
	}

	if got := findConfigFile(); got != "" {
		t.Fatalf("findConfigFile() = %q, want none", got)
	}

	userPath := filepath.Join(xdg, "cubeburst", "config.yaml")
	if err := Default().SaveTo(userPath); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFile(); got != userPath {
		t.Errorf("findConfigFile() = %q, want %q", got, userPath)
	}

	if err := os.WriteFile(FileName, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFile(); got != FileName {
		t.Errorf("findConfigFile() = %q, want the working directory file", got)
	}
}
