package models

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/taigrr/cubeburst/pkg/math3d"
)

// WorldCube is one cube's faces after explosion, rotation, scale and
// translation, before the camera projection.
type WorldCube struct {
	Name  string
	Color color.RGBA
	Faces [FaceCount][CornersPerFace]math3d.Vec3
}

// Bounds returns the axis-aligned bounding box of all face corners.
func (w WorldCube) Bounds() (min, max math3d.Vec3) {
	min, max = w.Faces[0][0], w.Faces[0][0]
	for _, face := range w.Faces {
		for _, p := range face {
			min = min.Min(p)
			max = max.Max(p)
		}
	}
	return min, max
}

// WriteOBJ writes the cubes as a Wavefront OBJ with one quad per face.
// Corners are not shared between faces, so exploded faces stay separate.
func WriteOBJ(w io.Writer, cubes []WorldCube) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# cubeburst frame: %d cubes\n", len(cubes))

	base := 1 // OBJ indices are 1-based
	for _, c := range cubes {
		fmt.Fprintf(bw, "o %s\n", c.Name)
		for _, face := range c.Faces {
			for _, p := range face {
				fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
			}
		}
		for i := range c.Faces {
			v := base + i*CornersPerFace
			fmt.Fprintf(bw, "f %d %d %d %d\n", v, v+1, v+2, v+3)
		}
		base += FaceCount * CornersPerFace
	}
	return bw.Flush()
}

// SaveOBJ writes the cubes to an OBJ file on disk.
func SaveOBJ(path string, cubes []WorldCube) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create OBJ file: %w", err)
	}
	if err := WriteOBJ(f, cubes); err != nil {
		f.Close()
		return fmt.Errorf("write OBJ: %w", err)
	}
	return f.Close()
}
