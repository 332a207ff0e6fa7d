package models

import (
	"bytes"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/cubeburst/pkg/math3d"
)

func TestReadOBJFrame(t *testing.T) {
	cubes := []WorldCube{
		templateWorldCube("flag", math3d.Zero3(), color.RGBA{255, 255, 255, 255}),
		templateWorldCube("cube-3", math3d.V3(-7.5, 2, 0.25), color.RGBA{170, 0, 0, 255}),
	}
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, cubes); err != nil {
		t.Fatal(err)
	}

	got, err := ReadOBJ(&buf)
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("cubes = %d, want 2", len(got))
	}
	for i := range cubes {
		if got[i].Name != cubes[i].Name {
			t.Errorf("cube %d name = %q, want %q", i, got[i].Name, cubes[i].Name)
		}
		if got[i].Faces != cubes[i].Faces {
			t.Errorf("cube %d faces differ", i)
		}
	}
}

func TestReadOBJCube(t *testing.T) {
	// shared vertices, attribute forms and negative indices
	objData := `
# Cube
v -0.5 -0.5 -0.5
v  0.5 -0.5 -0.5
v  0.5  0.5 -0.5
v -0.5  0.5 -0.5
v -0.5 -0.5  0.5
v  0.5 -0.5  0.5
v  0.5  0.5  0.5
v -0.5  0.5  0.5
vt 0 0
vn 0 0 1
usemtl white

f 1 2 3 4
f 5/1/1 6/1/1 7/1/1 8/1/1
f 1//1 4//1 8//1 5//1
f 2 6 7 3
f 4 3 7 8
f -8 -4 -3 -7
`
	cubes, err := ReadOBJ(strings.NewReader(objData))
	if err != nil {
		t.Fatalf("ReadOBJ: %v", err)
	}
	if len(cubes) != 1 || cubes[0].Name != "cube-0" {
		t.Fatalf("cubes = %+v, want one unnamed cube", cubes)
	}
	min, max := cubes[0].Bounds()
	if min != math3d.V3(-0.5, -0.5, -0.5) || max != math3d.V3(0.5, 0.5, 0.5) {
		t.Errorf("bounds = %v, %v", min, max)
	}
	if got := cubes[0].Faces[5][1]; got != math3d.V3(-0.5, -0.5, 0.5) {
		t.Errorf("negative index resolved to %v", got)
	}
}

func TestReadOBJErrors(t *testing.T) {
	quad := "f 1 2 3 4\n"
	verts := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\n"
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad coordinate", "v 0 zero 0\n", "invalid coordinate"},
		{"short vertex", "v 0 0\n", "invalid vertex"},
		{"triangle", verts + "f 1 2 3\n", "corners"},
		{"index out of range", verts + "f 1 2 3 9\n", "out of range"},
		{"zero index", verts + "f 0 1 2 3\n", "invalid vertex index"},
		{"too few faces", "o a\n" + verts + quad + "o b\n", `"a" has 1 faces`},
		{"too many faces", verts + strings.Repeat(quad, 7), "more than 6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOBJ(strings.NewReader(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ReadOBJ() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.obj")
	cubes := []WorldCube{templateWorldCube("only", math3d.V3(1, 2, 3), color.RGBA{})}
	if err := SaveOBJ(path, cubes); err != nil {
		t.Fatal(err)
	}
	got, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(got) != 1 || got[0].Faces != cubes[0].Faces {
		t.Errorf("LoadOBJ() = %+v", got)
	}

	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("missing file should fail")
	}
}
