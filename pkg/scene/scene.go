package scene

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/taigrr/cubeburst/pkg/math3d"
	"github.com/taigrr/cubeburst/pkg/models"
	"github.com/taigrr/cubeburst/pkg/render"
)

// Variant selects the scene population.
type Variant int

const (
	// VariantStream is the flag carrier plus a recycled stream of doubled cubes.
	VariantStream Variant = iota
	// VariantSingle is the flag carrier alone, for manual control.
	VariantSingle
)

// ParseVariant parses "stream" or "single".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "stream":
		return VariantStream, nil
	case "single":
		return VariantSingle, nil
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

func (v Variant) String() string {
	if v == VariantSingle {
		return "single"
	}
	return "stream"
}

// StreamConfig lays out the initial stream and its recycling thresholds.
type StreamConfig struct {
	Start, End, Step float64 // initial cubes at x = Start, Start+Step, ... < End
	Exit             float64 // cubes with x >= Exit are recycled
	Spawn            float64 // replacements start at this x
	Bounds           SpawnBounds
}

// DefaultStreamConfig returns seven cubes between -20 and 20.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Start:  -20,
		End:    20,
		Step:   6,
		Exit:   20,
		Spawn:  -20,
		Bounds: DefaultSpawnBounds(),
	}
}

// Config is the complete scene setup.
type Config struct {
	Variant      Variant
	Seed         uint64 // 0 picks a random seed
	FlagCube     Params
	Flag         *render.Flag // nil disables the flag
	FlagFraction float64      // flag width as a fraction of the viewport width
	Stream       StreamConfig
	Explosion    ExplosionConfig
	StrokeWidth  float64
	ShadowOffset math3d.Vec2
}

// DefaultFlagCube is the slowly turning, exploded flag carrier at the origin.
func DefaultFlagCube() Params {
	return Params{
		Rotation:        math3d.V3(0, math.Pi/8, 0),
		AngularVelocity: math3d.V3(0, 0.15, 0),
		Scale:           1.5,
		Explosion:       0.5,
		Color:           render.ColorWhite,
		ContainsFlag:    true,
	}
}

// DefaultConfig returns the streaming sketch.
func DefaultConfig() Config {
	return Config{
		Variant:      VariantStream,
		FlagCube:     DefaultFlagCube(),
		Flag:         render.DefaultFlag(),
		FlagFraction: 0.4,
		Stream:       DefaultStreamConfig(),
		Explosion:    DefaultExplosionConfig(),
		StrokeWidth:  2,
		ShadowOffset: math3d.V2(5, 5),
	}
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scene) {
		s.log = log
	}
}

// Scene owns every live cube, the stage they draw to and the pipeline that
// projects them. A Scene is not safe for concurrent use; one loop calls Step.
type Scene struct {
	cfg       Config
	stage     *render.Stage
	pipeline  *render.Pipeline
	spawner   *Spawner
	explosion *ExplosionDriver
	log       *zap.Logger

	flag       render.ItemID
	cubes      []*Cube
	population int
	spawned    int
	recycled   int
	elapsed    float64
	frames     uint64
}

// New builds the scene: places the flag, creates the initial cubes and
// projects them once so every polyline is valid before the first frame.
func New(cfg Config, stage *render.Stage, pipeline *render.Pipeline, opts ...Option) (*Scene, error) {
	if stage == nil || pipeline == nil {
		return nil, fmt.Errorf("scene needs a stage and a pipeline")
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	cfg.Explosion.Initial = cfg.FlagCube.Explosion

	s := &Scene{
		cfg:       cfg,
		stage:     stage,
		pipeline:  pipeline,
		spawner:   NewSpawner(cfg.Seed, cfg.Stream.Bounds),
		explosion: NewExplosionDriver(cfg.Explosion),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.Flag != nil {
		bounds := cfg.Flag.Fit(pipeline.Camera().Viewport(), cfg.FlagFraction)
		s.flag = stage.PlaceFlag(render.LayerBack, cfg.Flag, bounds)
	}

	flagCube := cfg.FlagCube
	flagCube.Explosion = s.explosion.Value()
	s.add(flagCube)
	if cfg.Variant == VariantStream && cfg.Stream.Step > 0 {
		for x := cfg.Stream.Start; x < cfg.Stream.End; x += cfg.Stream.Step {
			s.add(s.spawner.RandomCube(x))
		}
	}
	s.population = len(s.cubes)

	s.log.Info("scene ready",
		zap.Stringer("variant", cfg.Variant),
		zap.Uint64("seed", cfg.Seed),
		zap.Int("population", s.population),
		zap.Bool("flag", s.flag != 0),
	)
	return s, nil
}

// add creates a cube, attaches its polylines and projects it.
func (s *Scene) add(p Params) *Cube {
	s.spawned++
	c := newCube(fmt.Sprintf("cube-%d", s.spawned), p)
	c.attach(s.stage, s.cfg.StrokeWidth)
	s.apply(c)
	s.cubes = append(s.cubes, c)
	return c
}

// Step advances every cube by dt seconds, refreshes its geometry and then
// recycles cubes that left the scene.
func (s *Scene) Step(dt float64) {
	s.elapsed += dt
	s.frames++
	explosion := s.explosion.Update(dt)

	for _, c := range s.cubes {
		if c.containsFlag {
			c.pose.Explosion = explosion
		}
		c.Advance(dt)
		s.apply(c)
	}

	if s.cfg.Variant == VariantStream {
		s.recycle()
	}
}

// apply writes the cube's geometry to the stage: primary outlines, then the
// shadow outlines, then the flag restack.
func (s *Scene) apply(c *Cube) {
	snap := s.pipeline.Project(c.pose)
	c.snapshot = snap

	for i, face := range snap.Faces {
		s.stage.SetPoints(c.faces[i], face.Points())
	}

	if c.doubled {
		shadow := snap.Shadow(s.cfg.ShadowOffset)
		for i, pts := range shadow {
			s.stage.SetPoints(c.shadows[i], pts)
		}
	}

	if !c.containsFlag || s.flag == 0 {
		return
	}
	for i, face := range snap.Faces {
		var err error
		if render.InFrontOfFlag(face) {
			err = s.stage.InsertAbove(c.faces[i], s.flag)
		} else {
			err = s.stage.InsertBelow(c.faces[i], s.flag)
		}
		if err != nil {
			s.log.Error("restack face", zap.String("cube", c.name), zap.Int("face", i), zap.Error(err))
		}
	}
}

// recycle removes cubes at or past the exit threshold and spawns
// replacements until the population is restored.
func (s *Scene) recycle() {
	kept := s.cubes[:0]
	for _, c := range s.cubes {
		if c.pose.Position.X < s.cfg.Stream.Exit {
			kept = append(kept, c)
			continue
		}
		c.detach(s.stage)
		s.recycled++
		s.log.Debug("cube left scene", zap.String("cube", c.name), zap.Float64("x", c.pose.Position.X))
	}
	clear(s.cubes[len(kept):])
	s.cubes = kept

	for len(s.cubes) < s.population {
		c := s.add(s.spawner.RandomCube(s.cfg.Stream.Spawn))
		s.log.Debug("cube spawned",
			zap.String("cube", c.name),
			zap.Float64("y", c.pose.Position.Y),
			zap.String("color", c.color.Hex()),
		)
	}
}

// Controlled returns the cube driven by the manual controls: the first
// flag carrier, or the first cube.
func (s *Scene) Controlled() *Cube {
	for _, c := range s.cubes {
		if c.containsFlag {
			return c
		}
	}
	if len(s.cubes) > 0 {
		return s.cubes[0]
	}
	return nil
}

// SetRotationDegrees sets the controlled cube's rotation and refreshes the
// scene with zero elapsed time.
func (s *Scene) SetRotationDegrees(deg math3d.Vec3) {
	if c := s.Controlled(); c != nil {
		c.pose.Rotation = deg.Scale(math.Pi / 180)
	}
	s.Step(0)
}

// RotateDegrees adds to the controlled cube's rotation.
func (s *Scene) RotateDegrees(delta math3d.Vec3) {
	if c := s.Controlled(); c != nil {
		c.pose.Rotation = c.pose.Rotation.Add(delta.Scale(math.Pi / 180))
	}
	s.Step(0)
}

// RotationDegrees returns the controlled cube's rotation in degrees.
func (s *Scene) RotationDegrees() math3d.Vec3 {
	c := s.Controlled()
	if c == nil {
		return math3d.Zero3()
	}
	return c.pose.Rotation.Scale(180 / math.Pi)
}

// SetExplosionPercent sets the explosion target as a percentage of the
// maximum explosion and refreshes the scene with zero elapsed time.
func (s *Scene) SetExplosionPercent(pct float64) {
	s.explosion.SetTarget(pct / 100 * s.cfg.Explosion.Max)
	s.Step(0)
}

// ExplosionPercent returns the current explosion as a percentage of the
// maximum. It follows the oscillation and the spring.
func (s *Scene) ExplosionPercent() float64 {
	return s.percentOfMax(s.explosion.Value())
}

// ExplosionTargetPercent returns the control target as a percentage of the
// maximum.
func (s *Scene) ExplosionTargetPercent() float64 {
	return s.percentOfMax(s.explosion.Target())
}

func (s *Scene) percentOfMax(v float64) float64 {
	if s.cfg.Explosion.Max == 0 {
		return 0
	}
	return v / s.cfg.Explosion.Max * 100
}

// Cubes returns the live cubes in creation order.
func (s *Scene) Cubes() []*Cube {
	return slices.Clone(s.cubes)
}

// Len returns the number of live cubes.
func (s *Scene) Len() int { return len(s.cubes) }

// Population returns the population the stream keeps constant.
func (s *Scene) Population() int { return s.population }

// Recycled returns how many cubes have left the scene.
func (s *Scene) Recycled() int { return s.recycled }

// Elapsed returns the simulated time in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Frames returns the number of Step calls.
func (s *Scene) Frames() uint64 { return s.frames }

// Seed returns the seed of the spawn stream.
func (s *Scene) Seed() uint64 { return s.cfg.Seed }

// Stage returns the render stage.
func (s *Scene) Stage() *render.Stage { return s.stage }

// Pipeline returns the projection pipeline.
func (s *Scene) Pipeline() *render.Pipeline { return s.pipeline }

// Explosion returns the explosion driver.
func (s *Scene) Explosion() *ExplosionDriver { return s.explosion }

// WorldCubes returns every cube's faces in world space for 3D export.
func (s *Scene) WorldCubes() []models.WorldCube {
	out := make([]models.WorldCube, 0, len(s.cubes))
	for _, c := range s.cubes {
		out = append(out, models.WorldCube{
			Name:  c.name,
			Color: c.color.RGBA(),
			Faces: s.pipeline.WorldFaces(c.pose),
		})
	}
	return out
}
