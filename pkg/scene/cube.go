// Package scene owns the live cube instances: it advances them each frame,
// pushes their projected geometry onto a render stage, and keeps the
// streaming population constant by recycling cubes that leave the scene.
package scene

import (
	"github.com/taigrr/cubeburst/pkg/math3d"
	"github.com/taigrr/cubeburst/pkg/models"
	"github.com/taigrr/cubeburst/pkg/render"
)

// Params is the initial state of a cube instance.
type Params struct {
	Rotation        math3d.Vec3 // Euler angles, radians
	AngularVelocity math3d.Vec3 // radians per second
	Position        math3d.Vec3
	Velocity        math3d.Vec3 // units per second
	Scale           float64
	Explosion       float64
	Color           render.Color
	ContainsFlag    bool
	Doubled         bool // draw an offset shadow outline per face
}

// Cube is one live cube instance and the stage items it owns.
type Cube struct {
	name            string
	pose            render.Pose
	angularVelocity math3d.Vec3
	velocity        math3d.Vec3
	color           render.Color
	containsFlag    bool
	doubled         bool

	faces    [models.FaceCount]render.ItemID
	shadows  [models.FaceCount]render.ItemID
	snapshot render.Snapshot
}

func newCube(name string, p Params) *Cube {
	return &Cube{
		name: name,
		pose: render.Pose{
			Rotation:  p.Rotation,
			Position:  p.Position,
			Scale:     p.Scale,
			Explosion: p.Explosion,
		},
		angularVelocity: p.AngularVelocity,
		velocity:        p.Velocity,
		color:           p.Color,
		containsFlag:    p.ContainsFlag,
		doubled:         p.Doubled,
	}
}

// Advance integrates rotation and position over dt seconds.
func (c *Cube) Advance(dt float64) {
	c.pose.Rotation = c.pose.Rotation.ScaleAdd(c.angularVelocity, dt)
	c.pose.Position = c.pose.Position.ScaleAdd(c.velocity, dt)
}

func (c *Cube) Name() string              { return c.name }
func (c *Cube) Pose() render.Pose         { return c.pose }
func (c *Cube) Position() math3d.Vec3     { return c.pose.Position }
func (c *Cube) Rotation() math3d.Vec3     { return c.pose.Rotation }
func (c *Cube) Velocity() math3d.Vec3     { return c.velocity }
func (c *Cube) Color() render.Color       { return c.color }
func (c *Cube) ContainsFlag() bool        { return c.containsFlag }
func (c *Cube) Doubled() bool             { return c.doubled }
func (c *Cube) Snapshot() render.Snapshot { return c.snapshot }

// AngularVelocity returns the constant rotation rate.
func (c *Cube) AngularVelocity() math3d.Vec3 { return c.angularVelocity }

// Faces returns the primary polyline of every face, in face order.
func (c *Cube) Faces() [models.FaceCount]render.ItemID { return c.faces }

// Shadows returns the shadow polylines; all zero unless the cube is doubled.
func (c *Cube) Shadows() [models.FaceCount]render.ItemID { return c.shadows }

// layer is the static draw layer of the cube's polylines.
func (c *Cube) layer() render.Layer {
	if c.containsFlag {
		return render.LayerBack
	}
	return render.LayerFront
}

// attach creates the cube's polylines: all primaries, then all shadows.
func (c *Cube) attach(stage *render.Stage, width float64) {
	line := render.Polyline{Stroke: c.color, Width: width}
	for i := range c.faces {
		c.faces[i] = stage.AddPolyline(c.layer(), line)
	}
	if !c.doubled {
		return
	}
	for i := range c.shadows {
		c.shadows[i] = stage.AddPolyline(c.layer(), line)
	}
}

// detach removes every polyline the cube owns.
func (c *Cube) detach(stage *render.Stage) {
	for i, id := range c.faces {
		stage.Remove(id)
		c.faces[i] = 0
	}
	for i, id := range c.shadows {
		if id != 0 {
			stage.Remove(id)
			c.shadows[i] = 0
		}
	}
}
