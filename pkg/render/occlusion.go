package render

import "github.com/taigrr/cubeburst/pkg/models"

// Stacking says on which side of the flag a face is drawn.
type Stacking int

const (
	StackBelow Stacking = iota
	StackAbove
)

func (s Stacking) String() string {
	if s == StackAbove {
		return "above"
	}
	return "below"
}

// InFrontOfFlag reports whether a face draws above the flag: its deepest
// corner must have a local depth strictly greater than zero.
//
// The depth is taken in the cube's rotated local frame, not in view space.
// This is a per-face binary test, not a depth sort.
func InFrontOfFlag(face FaceGeometry) bool {
	return face.MaxDepth() > 0
}

// FlagStacking classifies every face of a flag-carrying cube.
func FlagStacking(s Snapshot) [models.FaceCount]Stacking {
	var out [models.FaceCount]Stacking
	for i, f := range s.Faces {
		if InFrontOfFlag(f) {
			out[i] = StackAbove
		}
	}
	return out
}
