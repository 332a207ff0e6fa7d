// Package render projects cube geometry onto a layered 2D stage and exports
// it as SVG or raster images.
package render

import (
	"fmt"
	"math"

	"github.com/taigrr/cubeburst/pkg/math3d"
)

// Projection selects the camera lens.
type Projection int

const (
	ProjectionOrtho Projection = iota
	ProjectionPerspective
)

// ParseProjection parses "ortho" or "perspective".
func ParseProjection(s string) (Projection, error) {
	switch s {
	case "ortho", "orthographic":
		return ProjectionOrtho, nil
	case "perspective":
		return ProjectionPerspective, nil
	}
	return 0, fmt.Errorf("unknown projection %q", s)
}

func (p Projection) String() string {
	if p == ProjectionPerspective {
		return "perspective"
	}
	return "ortho"
}

// FitAxis selects which viewport dimension drives the screen-fit scale.
type FitAxis int

const (
	FitWidth FitAxis = iota
	FitHeight
)

// ParseFitAxis parses "width" or "height".
func ParseFitAxis(s string) (FitAxis, error) {
	switch s {
	case "width":
		return FitWidth, nil
	case "height":
		return FitHeight, nil
	}
	return 0, fmt.Errorf("unknown fit axis %q", s)
}

// Viewport is the canvas size in device-independent units.
type Viewport struct {
	Width, Height float64
}

// Center returns the middle of the viewport.
func (v Viewport) Center() math3d.Vec2 {
	return math3d.V2(v.Width/2, v.Height/2)
}

// CameraSpec describes the fixed camera. It is consumed once by NewCamera.
type CameraSpec struct {
	Projection Projection
	Eye        math3d.Vec3
	Target     math3d.Vec3
	Up         math3d.Vec3

	// Orthographic box
	Left, Right, Bottom, Top float64

	// Perspective lens; FOV is vertical, in radians
	FOV    float64
	Aspect float64

	Near, Far float64

	// Screen fit: scale = FitFactor × viewport dimension selected by Fit
	Fit       FitAxis
	FitFactor float64
}

// DefaultCameraSpec returns the streaming sketch camera: an orthographic
// ±60 box seen from (0, 15, -30), filling twice the viewport width.
func DefaultCameraSpec() CameraSpec {
	return CameraSpec{
		Projection: ProjectionOrtho,
		Eye:        math3d.V3(0, 15, -30),
		Target:     math3d.Zero3(),
		Up:         math3d.V3(0, 1, 0),
		Left:       -60,
		Right:      60,
		Bottom:     -60,
		Top:        60,
		FOV:        0.6 * math.Pi,
		Aspect:     1,
		Near:       0.001,
		Far:        300,
		Fit:        FitWidth,
		FitFactor:  2,
	}
}

// Camera maps world points to screen points. Its matrix is fixed at construction.
type Camera struct {
	spec     CameraSpec
	viewport Viewport
	view     math3d.Mat4
	proj     math3d.Mat4
	matrix   math3d.Mat4
	fitScale float64
}

// NewCamera builds the projection = lens × view matrix and the screen fit.
// Degenerate specs (eye on target, zero viewport) are not rejected; they
// produce non-finite screen coordinates.
func NewCamera(spec CameraSpec, vp Viewport) *Camera {
	view := math3d.LookAt(spec.Eye, spec.Target, spec.Up)

	var proj math3d.Mat4
	switch spec.Projection {
	case ProjectionPerspective:
		proj = math3d.Perspective(spec.FOV, spec.Aspect, spec.Near, spec.Far)
	default:
		proj = math3d.Ortho(spec.Left, spec.Right, spec.Bottom, spec.Top, spec.Near, spec.Far)
	}

	fit := vp.Width
	if spec.Fit == FitHeight {
		fit = vp.Height
	}

	return &Camera{
		spec:     spec,
		viewport: vp,
		view:     view,
		proj:     proj,
		matrix:   proj.Mul(view),
		fitScale: spec.FitFactor * fit,
	}
}

// Matrix returns the combined projection × view matrix.
func (c *Camera) Matrix() math3d.Mat4 {
	return c.matrix
}

// View returns the look-at matrix alone.
func (c *Camera) View() math3d.Mat4 {
	return c.view
}

// Spec returns the settings the camera was built from.
func (c *Camera) Spec() CameraSpec {
	return c.spec
}

// Viewport returns the viewport the screen fit was computed for.
func (c *Camera) Viewport() Viewport {
	return c.viewport
}

// FitScale returns the multiplier applied to projected coordinates.
func (c *Camera) FitScale() float64 {
	return c.fitScale
}

// PixelsPerUnit returns how many screen units one world unit spans along
// the view's horizontal axis. Only meaningful for orthographic cameras.
func (c *Camera) PixelsPerUnit() float64 {
	return c.fitScale * 2 / (c.spec.Right - c.spec.Left)
}

// Project maps a world point to the screen: matrix transform with
// homogeneous divide, then fit scale and a half-viewport offset.
func (c *Camera) Project(p math3d.Vec3) math3d.Vec2 {
	ndc := c.matrix.MulVec3(p)
	return ndc.XY().Scale(c.fitScale).Add(c.viewport.Center())
}
