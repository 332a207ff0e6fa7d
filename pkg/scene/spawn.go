package scene

import (
	"math"
	"math/rand/v2"

	"github.com/taigrr/cubeburst/pkg/math3d"
	"github.com/taigrr/cubeburst/pkg/render"
)

// SpawnBounds limits the randomized state of streamed cubes.
type SpawnBounds struct {
	YMin, YMax         float64
	ZMin, ZMax         float64
	SpeedMin, SpeedMax float64 // along +X
	RotationMagnitude  float64
	AngularSpeed       float64
	AltChance          float64 // probability of AltColor over Color
	Color, AltColor    render.Color
	Scale              float64
}

// DefaultSpawnBounds returns the streaming sketch's spawn ranges.
func DefaultSpawnBounds() SpawnBounds {
	return SpawnBounds{
		YMin:              -15,
		YMax:              0,
		ZMin:              15,
		ZMax:              15,
		SpeedMin:          0.4,
		SpeedMax:          1,
		RotationMagnitude: 1,
		AngularSpeed:      0.3,
		AltChance:         0.5,
		Color:             render.ColorWhite,
		AltColor:          render.ColorRed,
		Scale:             1,
	}
}

// Spawner produces randomized stream cubes from a seeded source.
type Spawner struct {
	rng    *rand.Rand
	bounds SpawnBounds
}

// NewSpawner creates a spawner. Equal seeds give equal streams.
func NewSpawner(seed uint64, bounds SpawnBounds) *Spawner {
	return &Spawner{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		bounds: bounds,
	}
}

// Bounds returns the spawn ranges.
func (s *Spawner) Bounds() SpawnBounds {
	return s.bounds
}

// uniform returns a value in [a, b).
func (s *Spawner) uniform(a, b float64) float64 {
	return a + (b-a)*s.rng.Float64()
}

// RandomVector returns a uniformly distributed direction scaled to magnitude.
func (s *Spawner) RandomVector(magnitude float64) math3d.Vec3 {
	theta := s.uniform(0, 2*math.Pi)
	z := s.uniform(-1, 1)
	r := math.Sqrt(1 - z*z)
	return math3d.V3(r*math.Cos(theta), r*math.Sin(theta), z).Scale(magnitude)
}

// RandomCube returns a doubled stream cube starting at x.
func (s *Spawner) RandomCube(x float64) Params {
	b := s.bounds
	col := b.Color
	if s.rng.Float64() < b.AltChance {
		col = b.AltColor
	}
	return Params{
		Rotation:        s.RandomVector(b.RotationMagnitude),
		AngularVelocity: s.RandomVector(b.AngularSpeed),
		Position:        math3d.V3(x, s.uniform(b.YMin, b.YMax), s.uniform(b.ZMin, b.ZMax)),
		Velocity:        math3d.V3(s.uniform(b.SpeedMin, b.SpeedMax), 0, 0),
		Scale:           b.Scale,
		Color:           col,
		Doubled:         true,
	}
}
