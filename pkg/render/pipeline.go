package render

import (
	"fmt"
	"math"

	"github.com/taigrr/cubeburst/pkg/math3d"
	"github.com/taigrr/cubeburst/pkg/models"
)

// RotationOrder is the order the three Euler rotations are applied in.
type RotationOrder int

const (
	RotateXYZ RotationOrder = iota
	RotateYXZ
)

// ParseRotationOrder parses "xyz" or "yxz".
func ParseRotationOrder(s string) (RotationOrder, error) {
	switch s {
	case "xyz":
		return RotateXYZ, nil
	case "yxz":
		return RotateYXZ, nil
	}
	return 0, fmt.Errorf("unknown rotation order %q", s)
}

func (o RotationOrder) String() string {
	if o == RotateYXZ {
		return "yxz"
	}
	return "xyz"
}

// Translation is the sign used when placing a cube at its position.
type Translation int

const (
	TranslateSubtract Translation = iota
	TranslateAdd
)

// ParseTranslation parses "subtract" or "add".
func ParseTranslation(s string) (Translation, error) {
	switch s {
	case "subtract":
		return TranslateSubtract, nil
	case "add":
		return TranslateAdd, nil
	}
	return 0, fmt.Errorf("unknown translation %q", s)
}

func (t Translation) String() string {
	if t == TranslateAdd {
		return "add"
	}
	return "subtract"
}

// Pose is the mutable part of a cube that the pipeline reads.
type Pose struct {
	Rotation  math3d.Vec3 // Euler angles, radians
	Position  math3d.Vec3
	Scale     float64
	Explosion float64
}

// ProjectedPoint is a screen point plus the local depth used for flag occlusion.
type ProjectedPoint struct {
	Screen math3d.Vec2
	Depth  float64 // Post-rotation, pre-scale Z in the cube's own frame
}

// FaceGeometry holds the four projected corners of one face.
type FaceGeometry [models.CornersPerFace]ProjectedPoint

// Points returns the screen points alone.
func (f FaceGeometry) Points() [models.CornersPerFace]math3d.Vec2 {
	var pts [models.CornersPerFace]math3d.Vec2
	for i, p := range f {
		pts[i] = p.Screen
	}
	return pts
}

// MaxDepth returns the largest corner depth.
func (f FaceGeometry) MaxDepth() float64 {
	d := f[0].Depth
	for _, p := range f[1:] {
		d = math.Max(d, p.Depth)
	}
	return d
}

// Snapshot is the complete projected geometry of one cube for one frame.
// It is a value: computing it touches no render state.
type Snapshot struct {
	Faces [models.FaceCount]FaceGeometry
}

// Shadow returns every face's points shifted by a constant screen offset.
func (s Snapshot) Shadow(offset math3d.Vec2) [models.FaceCount][models.CornersPerFace]math3d.Vec2 {
	var out [models.FaceCount][models.CornersPerFace]math3d.Vec2
	for i, f := range s.Faces {
		for k, p := range f {
			out[i][k] = p.Screen.Add(offset)
		}
	}
	return out
}

// Bounds returns the screen-space bounding box of every face corner.
func (s Snapshot) Bounds() (min, max math3d.Vec2) {
	min, max = s.Faces[0][0].Screen, s.Faces[0][0].Screen
	for _, f := range s.Faces {
		for _, p := range f {
			min = min.Min(p.Screen)
			max = max.Max(p.Screen)
		}
	}
	return min, max
}

// Pipeline turns a cube pose into screen geometry. It holds only
// immutable setup state and is safe to share between cubes.
type Pipeline struct {
	camera      *Camera
	template    *models.Cube
	order       RotationOrder
	translation Translation
}

// NewPipeline creates a pipeline over a fixed camera and cube template.
func NewPipeline(camera *Camera, template *models.Cube, order RotationOrder, translation Translation) *Pipeline {
	return &Pipeline{
		camera:      camera,
		template:    template,
		order:       order,
		translation: translation,
	}
}

// Camera returns the pipeline's camera.
func (p *Pipeline) Camera() *Camera {
	return p.camera
}

// Template returns the cube template.
func (p *Pipeline) Template() *models.Cube {
	return p.template
}

// rotate applies the Euler rotations in the configured order.
func (p *Pipeline) rotate(v, r math3d.Vec3) math3d.Vec3 {
	if p.order == RotateYXZ {
		return v.RotateY(r.Y).RotateX(r.X).RotateZ(r.Z)
	}
	return v.RotateX(r.X).RotateY(r.Y).RotateZ(r.Z)
}

// place scales and translates a rotated local point into the world.
func (p *Pipeline) place(v math3d.Vec3, pose Pose) math3d.Vec3 {
	v = v.Scale(pose.Scale)
	if p.translation == TranslateAdd {
		return v.Add(pose.Position)
	}
	return v.Sub(pose.Position)
}

// local returns the exploded, rotated corner and its depth.
func (p *Pipeline) local(face, corner int, pose Pose) math3d.Vec3 {
	v := p.template.Corner(face, corner)
	v = v.ScaleAdd(p.template.Faces[face].Normal, pose.Explosion)
	return p.rotate(v, pose.Rotation)
}

// WorldFaces returns every face corner in world space, before projection.
func (p *Pipeline) WorldFaces(pose Pose) [models.FaceCount][models.CornersPerFace]math3d.Vec3 {
	var out [models.FaceCount][models.CornersPerFace]math3d.Vec3
	for f := range models.FaceCount {
		for k := range models.CornersPerFace {
			out[f][k] = p.place(p.local(f, k, pose), pose)
		}
	}
	return out
}

// Project computes all 24 face corners. Corners shared between faces are
// recomputed per face.
func (p *Pipeline) Project(pose Pose) Snapshot {
	var s Snapshot
	for f := range models.FaceCount {
		for k := range models.CornersPerFace {
			v := p.local(f, k, pose)
			s.Faces[f][k] = ProjectedPoint{
				Screen: p.camera.Project(p.place(v, pose)),
				Depth:  v.Z,
			}
		}
	}
	return s
}
