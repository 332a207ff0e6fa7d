package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/cubeburst/pkg/math3d"
	"github.com/taigrr/cubeburst/pkg/models"
	"github.com/taigrr/cubeburst/pkg/render"
	"github.com/taigrr/cubeburst/pkg/scene"
)

// ErrInvalid marks a configuration that cannot describe a scene.
var ErrInvalid = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks every value the scene setup depends on.
func (c *Config) Validate() error {
	var errs []error

	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, invalid("viewport %gx%g must be positive", c.Viewport.Width, c.Viewport.Height))
	}
	if _, err := render.ParseProjection(c.Camera.Projection); err != nil {
		errs = append(errs, invalid("camera: %v", err))
	}
	if _, err := render.ParseFitAxis(c.Camera.Fit); err != nil {
		errs = append(errs, invalid("camera: %v", err))
	}
	if _, err := render.ParseRotationOrder(c.Pipeline.RotationOrder); err != nil {
		errs = append(errs, invalid("pipeline: %v", err))
	}
	if _, err := render.ParseTranslation(c.Pipeline.Translation); err != nil {
		errs = append(errs, invalid("pipeline: %v", err))
	}
	if c.Pipeline.HalfExtent <= 0 {
		errs = append(errs, invalid("pipeline: half_extent %g must be positive", c.Pipeline.HalfExtent))
	}
	if c.Render.FPS <= 0 {
		errs = append(errs, invalid("render: fps %d must be positive", c.Render.FPS))
	}
	if _, err := scene.ParseVariant(c.Scene.Variant); err != nil {
		errs = append(errs, invalid("scene: %v", err))
	}
	if _, err := scene.ParseExplosionMode(c.Scene.Explosion.Mode); err != nil {
		errs = append(errs, invalid("scene.explosion: %v", err))
	}
	if x, hi := c.Scene.FlagCube.Explosion, c.Scene.Explosion.Max; x < 0 || x > hi {
		errs = append(errs, invalid("scene.flag_cube: explosion %g outside [0, %g]", x, hi))
	}
	if c.Scene.Explosion.Mode == "oscillate" && c.Scene.Explosion.Period <= 0 {
		errs = append(errs, invalid("scene.explosion: period %g must be positive", c.Scene.Explosion.Period))
	}

	s := c.Scene.Stream
	if s.YMin > s.YMax || s.ZMin > s.ZMax || s.SpeedMin > s.SpeedMax {
		errs = append(errs, invalid("scene.stream: inverted spawn bounds"))
	}
	if s.Spawn >= s.Exit {
		errs = append(errs, invalid("scene.stream: spawn %g must be before exit %g", s.Spawn, s.Exit))
	}
	if s.AltChance < 0 || s.AltChance > 1 {
		errs = append(errs, invalid("scene.stream: alt_chance %g outside [0, 1]", s.AltChance))
	}

	for name, col := range map[string]string{
		"scene.flag_cube.color":  c.Scene.FlagCube.Color,
		"scene.stream.color":     s.Color,
		"scene.stream.alt_color": s.AltColor,
		"render.background":      c.Render.Background,
	} {
		if _, err := render.ParseColor(col); err != nil {
			errs = append(errs, invalid("%s: %v", name, err))
		}
	}

	return errors.Join(errs...)
}

func vec3(v Vec3) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// ViewportSize returns the configured viewport.
func (c *Config) ViewportSize() render.Viewport {
	return render.Viewport{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// CameraSpec converts the camera section.
func (c *Config) CameraSpec() (render.CameraSpec, error) {
	proj, err := render.ParseProjection(c.Camera.Projection)
	if err != nil {
		return render.CameraSpec{}, err
	}
	fit, err := render.ParseFitAxis(c.Camera.Fit)
	if err != nil {
		return render.CameraSpec{}, err
	}
	cam := c.Camera
	return render.CameraSpec{
		Projection: proj,
		Eye:        vec3(cam.Eye),
		Target:     vec3(cam.Target),
		Up:         vec3(cam.Up),
		Left:       cam.Left,
		Right:      cam.Right,
		Bottom:     cam.Bottom,
		Top:        cam.Top,
		FOV:        cam.FOV,
		Aspect:     cam.Aspect,
		Near:       cam.Near,
		Far:        cam.Far,
		Fit:        fit,
		FitFactor:  cam.FitFactor,
	}, nil
}

// NewPipeline builds the camera and projection pipeline.
func (c *Config) NewPipeline() (*render.Pipeline, error) {
	spec, err := c.CameraSpec()
	if err != nil {
		return nil, err
	}
	order, err := render.ParseRotationOrder(c.Pipeline.RotationOrder)
	if err != nil {
		return nil, err
	}
	tr, err := render.ParseTranslation(c.Pipeline.Translation)
	if err != nil {
		return nil, err
	}
	tpl := models.NewCube(c.Pipeline.HalfExtent)
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("cube template: %w", err)
	}
	return render.NewPipeline(render.NewCamera(spec, c.ViewportSize()), tpl, order, tr), nil
}

// NewStage creates an empty stage with the configured background.
func (c *Config) NewStage() (*render.Stage, error) {
	bg, err := render.ParseColor(c.Render.Background)
	if err != nil {
		return nil, fmt.Errorf("render.background: %w", err)
	}
	return render.NewStage(bg), nil
}

// SceneConfig converts the scene section, loading the flag if enabled.
func (c *Config) SceneConfig() (scene.Config, error) {
	sc := c.Scene

	variant, err := scene.ParseVariant(sc.Variant)
	if err != nil {
		return scene.Config{}, err
	}
	mode, err := scene.ParseExplosionMode(sc.Explosion.Mode)
	if err != nil {
		return scene.Config{}, err
	}

	flagColor, err := render.ParseColor(sc.FlagCube.Color)
	if err != nil {
		return scene.Config{}, fmt.Errorf("scene.flag_cube.color: %w", err)
	}
	color, err := render.ParseColor(sc.Stream.Color)
	if err != nil {
		return scene.Config{}, fmt.Errorf("scene.stream.color: %w", err)
	}
	alt, err := render.ParseColor(sc.Stream.AltColor)
	if err != nil {
		return scene.Config{}, fmt.Errorf("scene.stream.alt_color: %w", err)
	}

	var flag *render.Flag
	if sc.Flag.Enabled {
		if flag, err = render.LoadFlag(sc.Flag.Path); err != nil {
			return scene.Config{}, err
		}
	}

	st := sc.Stream
	return scene.Config{
		Variant: variant,
		Seed:    sc.Seed,
		FlagCube: scene.Params{
			Rotation:        vec3(sc.FlagCube.Rotation),
			AngularVelocity: vec3(sc.FlagCube.AngularVelocity),
			Position:        vec3(sc.FlagCube.Position),
			Velocity:        vec3(sc.FlagCube.Velocity),
			Scale:           sc.FlagCube.Scale,
			Explosion:       sc.FlagCube.Explosion,
			Color:           flagColor,
			ContainsFlag:    true,
		},
		Flag:         flag,
		FlagFraction: sc.Flag.WidthFraction,
		Stream: scene.StreamConfig{
			Start: st.Start,
			End:   st.End,
			Step:  st.Step,
			Exit:  st.Exit,
			Spawn: st.Spawn,
			Bounds: scene.SpawnBounds{
				YMin:              st.YMin,
				YMax:              st.YMax,
				ZMin:              st.ZMin,
				ZMax:              st.ZMax,
				SpeedMin:          st.SpeedMin,
				SpeedMax:          st.SpeedMax,
				RotationMagnitude: st.RotationMagnitude,
				AngularSpeed:      st.AngularSpeed,
				AltChance:         st.AltChance,
				Color:             color,
				AltColor:          alt,
				Scale:             1,
			},
		},
		Explosion: scene.ExplosionConfig{
			Mode:      mode,
			Initial:   sc.FlagCube.Explosion,
			Max:       sc.Explosion.Max,
			Period:    sc.Explosion.Period,
			Frequency: sc.Explosion.Frequency,
			Damping:   sc.Explosion.Damping,
		},
		StrokeWidth:  c.Render.StrokeWidth,
		ShadowOffset: math3d.V2(c.Render.ShadowOffset[0], c.Render.ShadowOffset[1]),
	}, nil
}
