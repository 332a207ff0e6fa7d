package models

import (
	"fmt"
	"image/color"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// BuildFrameDocument converts world-space cubes into a glTF document.
// Each cube becomes one node with a line primitive tracing its six face
// loops; cubes sharing a color share a material.
func BuildFrameDocument(cubes []WorldCube) *gltf.Document {
	doc := gltf.NewDocument()
	materials := make(map[color.RGBA]int)

	for _, c := range cubes {
		positions := make([][3]float32, 0, FaceCount*CornersPerFace)
		indices := make([]uint16, 0, FaceCount*CornersPerFace*2)
		for f, face := range c.Faces {
			for k, p := range face {
				positions = append(positions, [3]float32{float32(p.X), float32(p.Y), float32(p.Z)})
				a := uint16(f*CornersPerFace + k)
				b := uint16(f*CornersPerFace + (k+1)%CornersPerFace)
				indices = append(indices, a, b)
			}
		}

		mat, ok := materials[c.Color]
		if !ok {
			doc.Materials = append(doc.Materials, &gltf.Material{
				Name: fmt.Sprintf("#%02x%02x%02x", c.Color.R, c.Color.G, c.Color.B),
				PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
					BaseColorFactor: &[4]float64{
						float64(c.Color.R) / 255,
						float64(c.Color.G) / 255,
						float64(c.Color.B) / 255,
						1,
					},
				},
			})
			mat = len(doc.Materials) - 1
			materials[c.Color] = mat
		}

		pos := modeler.WritePosition(doc, positions)
		idx := modeler.WriteIndices(doc, indices)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: c.Name,
			Primitives: []*gltf.Primitive{{
				Mode:       gltf.PrimitiveLines,
				Indices:    gltf.Index(idx),
				Attributes: map[string]int{gltf.POSITION: pos},
				Material:   gltf.Index(mat),
			}},
		})
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: c.Name,
			Mesh: gltf.Index(len(doc.Meshes) - 1),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	return doc
}

// SaveFrameGLB writes the cubes as a binary glTF (.glb) file.
func SaveFrameGLB(path string, cubes []WorldCube) error {
	if err := gltf.SaveBinary(BuildFrameDocument(cubes), path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// SaveFrameGLTF writes the cubes as a JSON glTF (.gltf) file with the
// buffer embedded as a data URI.
func SaveFrameGLTF(path string, cubes []WorldCube) error {
	if err := gltf.Save(BuildFrameDocument(cubes), path); err != nil {
		return fmt.Errorf("save gltf: %w", err)
	}
	return nil
}
