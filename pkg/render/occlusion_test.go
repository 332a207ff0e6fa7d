package render

import (
	"math"
	"testing"

	"github.com/taigrr/cubeburst/pkg/math3d"
)

func faceWithDepths(d [4]float64) FaceGeometry {
	var f FaceGeometry
	for i, v := range d {
		f[i] = ProjectedPoint{Screen: math3d.V2(float64(i), 0), Depth: v}
	}
	return f
}

func TestInFrontOfFlag(t *testing.T) {
	tests := []struct {
		name   string
		depths [4]float64
		want   bool
	}{
		{"all positive", [4]float64{0.1, 0.2, 0.3, 0.4}, true},
		{"one positive corner", [4]float64{-1, -1, -1, 1e-9}, true},
		{"max exactly zero", [4]float64{-1, 0, -0.5, -2}, false},
		{"all negative", [4]float64{-0.1, -0.2, -0.3, -0.4}, false},
		{"all zero", [4]float64{}, false},
		{"tiny negative", [4]float64{-1e-12, -1, -1, -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InFrontOfFlag(faceWithDepths(tt.depths)); got != tt.want {
				t.Errorf("InFrontOfFlag(%v) = %v, want %v", tt.depths, got, tt.want)
			}
		})
	}
}

func TestInFrontOfFlagIgnoresScreenPoints(t *testing.T) {
	f := faceWithDepths([4]float64{-1, -1, 0.5, -1})
	g := f
	for i := range g {
		g[i].Screen = math3d.V2(math.Inf(1), -1e6)
	}
	if InFrontOfFlag(f) != InFrontOfFlag(g) {
		t.Error("classification depends on screen coordinates")
	}
}

func TestFlagStackingRestPose(t *testing.T) {
	p := newTestPipeline(RotateXYZ, TranslateSubtract)
	got := FlagStacking(p.Project(restPose()))

	// at rest only the -z face lies entirely behind the local origin
	want := [6]Stacking{StackBelow, StackAbove, StackAbove, StackAbove, StackAbove, StackAbove}
	if got != want {
		t.Errorf("FlagStacking(rest) = %v, want %v", got, want)
	}
}
