// Package models provides the constant cube geometry and world-space frame exports.
package models

import (
	"fmt"
	"math"

	"github.com/taigrr/cubeburst/pkg/math3d"
)

// Template sizes. Every cube has exactly these counts for its whole lifetime.
const (
	VertexCount    = 8
	FaceCount      = 6
	CornersPerFace = 4
)

// Face is a closed quadrilateral over four template vertices.
type Face struct {
	V      [CornersPerFace]int // Indices into Cube.Vertices, in loop order
	Normal math3d.Vec3         // Outward unit normal
}

// Cube is the immutable cube template shared by every cube instance.
type Cube struct {
	Name       string
	HalfExtent float64
	Vertices   [VertexCount]math3d.Vec3
	Faces      [FaceCount]Face
}

// cubeFaces lists the six faces with their outward normals.
// The face order is also the polyline order of every cube instance.
var cubeFaces = [FaceCount]Face{
	{V: [4]int{0, 1, 2, 3}, Normal: math3d.V3(0, 0, -1)},
	{V: [4]int{4, 5, 6, 7}, Normal: math3d.V3(0, 0, 1)},
	{V: [4]int{0, 1, 5, 4}, Normal: math3d.V3(0, -1, 0)},
	{V: [4]int{3, 2, 6, 7}, Normal: math3d.V3(0, 1, 0)},
	{V: [4]int{0, 3, 7, 4}, Normal: math3d.V3(-1, 0, 0)},
	{V: [4]int{1, 2, 6, 5}, Normal: math3d.V3(1, 0, 0)},
}

// NewCube creates an axis-aligned cube template centered at the origin
// with every coordinate at ±half.
func NewCube(half float64) *Cube {
	return &Cube{
		Name:       fmt.Sprintf("cube(±%g)", half),
		HalfExtent: half,
		Vertices:   cubeLocalVertices(half),
		Faces:      cubeFaces,
	}
}

// UnitCube returns the ±1 template.
func UnitCube() *Cube {
	return NewCube(1)
}

func cubeLocalVertices(half float64) [VertexCount]math3d.Vec3 {
	return [VertexCount]math3d.Vec3{
		{X: -half, Y: -half, Z: -half},
		{X: half, Y: -half, Z: -half},
		{X: half, Y: half, Z: -half},
		{X: -half, Y: half, Z: -half},
		{X: -half, Y: -half, Z: half},
		{X: half, Y: -half, Z: half},
		{X: half, Y: half, Z: half},
		{X: -half, Y: half, Z: half},
	}
}

// Corner returns the template position of a face corner.
func (c *Cube) Corner(face, corner int) math3d.Vec3 {
	return c.Vertices[c.Faces[face].V[corner]]
}

// Bounds returns the axis-aligned bounding box of the template.
func (c *Cube) Bounds() (min, max math3d.Vec3) {
	min, max = c.Vertices[0], c.Vertices[0]
	for _, v := range c.Vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}

// Diagonal returns the length of the main space diagonal.
func (c *Cube) Diagonal() float64 {
	min, max := c.Bounds()
	return max.Sub(min).Len()
}

// Edges returns the 12 unique edges, each as an ordered vertex pair.
func (c *Cube) Edges() [][2]int {
	seen := make(map[[2]int]bool)
	edges := make([][2]int, 0, 12)
	for _, f := range c.Faces {
		for i := range CornersPerFace {
			a, b := f.V[i], f.V[(i+1)%CornersPerFace]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			if !seen[key] {
				seen[key] = true
				edges = append(edges, key)
			}
		}
	}
	return edges
}

// Validate checks the template topology: distinct corners, unit normals,
// planar faces lying on the outward side of the origin.
func (c *Cube) Validate() error {
	const tol = 1e-9
	for i, f := range c.Faces {
		if math.Abs(f.Normal.Len()-1) > tol {
			return fmt.Errorf("face %d: normal %v is not unit length", i, f.Normal)
		}
		for _, idx := range f.V {
			if idx < 0 || idx >= VertexCount {
				return fmt.Errorf("face %d: vertex index %d out of range", i, idx)
			}
		}
		seen := make(map[int]bool, CornersPerFace)
		plane := c.Vertices[f.V[0]].Dot(f.Normal)
		for _, idx := range f.V {
			if seen[idx] {
				return fmt.Errorf("face %d: vertex %d used twice", i, idx)
			}
			seen[idx] = true
			if d := c.Vertices[idx].Dot(f.Normal); math.Abs(d-plane) > tol {
				return fmt.Errorf("face %d: vertex %d is off the face plane", i, idx)
			}
		}
		if plane <= 0 {
			return fmt.Errorf("face %d: normal %v points inward", i, f.Normal)
		}
	}
	return nil
}
