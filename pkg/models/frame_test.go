package models

import (
	"bufio"
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/cubeburst/pkg/math3d"
)

// templateWorldCube places the template corners unchanged, offset by shift.
func templateWorldCube(name string, shift math3d.Vec3, col color.RGBA) WorldCube {
	tpl := UnitCube()
	w := WorldCube{Name: name, Color: col}
	for f := range FaceCount {
		for k := range CornersPerFace {
			w.Faces[f][k] = tpl.Corner(f, k).Add(shift)
		}
	}
	return w
}

func TestWorldCubeBounds(t *testing.T) {
	w := templateWorldCube("a", math3d.V3(10, 0, -5), color.RGBA{255, 255, 255, 255})
	min, max := w.Bounds()
	if min != math3d.V3(9, -1, -6) || max != math3d.V3(11, 1, -4) {
		t.Errorf("Bounds() = %v, %v", min, max)
	}
}

func TestWriteOBJ(t *testing.T) {
	cubes := []WorldCube{
		templateWorldCube("flag", math3d.Zero3(), color.RGBA{255, 255, 255, 255}),
		templateWorldCube("stream-1", math3d.V3(4, 0, 0), color.RGBA{170, 0, 0, 255}),
	}
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, cubes); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	var vertices, faces, objects int
	var lastFace string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "v "):
			vertices++
		case strings.HasPrefix(line, "f "):
			faces++
			lastFace = line
		case strings.HasPrefix(line, "o "):
			objects++
		}
	}
	if objects != 2 {
		t.Errorf("objects = %d, want 2", objects)
	}
	if vertices != 48 {
		t.Errorf("vertices = %d, want 48", vertices)
	}
	if faces != 12 {
		t.Errorf("faces = %d, want 12", faces)
	}
	if lastFace != "f 45 46 47 48" {
		t.Errorf("last face = %q, want %q", lastFace, "f 45 46 47 48")
	}
}

func TestSaveFrameGLB(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	red := color.RGBA{170, 0, 0, 255}
	cubes := []WorldCube{
		templateWorldCube("flag", math3d.Zero3(), white),
		templateWorldCube("stream-1", math3d.V3(4, 0, 0), red),
		templateWorldCube("stream-2", math3d.V3(-4, 0, 0), white),
	}
	path := filepath.Join(t.TempDir(), "frame.glb")
	if err := SaveFrameGLB(path, cubes); err != nil {
		t.Fatalf("SaveFrameGLB: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("glb not written: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("gltf.Open: %v", err)
	}
	if len(doc.Meshes) != 3 {
		t.Errorf("meshes = %d, want 3", len(doc.Meshes))
	}
	if len(doc.Materials) != 2 {
		t.Errorf("materials = %d, want 2 (shared by color)", len(doc.Materials))
	}
	if len(doc.Scenes[0].Nodes) != 3 {
		t.Errorf("scene nodes = %d, want 3", len(doc.Scenes[0].Nodes))
	}
	prim := doc.Meshes[1].Primitives[0]
	if prim.Mode != gltf.PrimitiveLines {
		t.Errorf("primitive mode = %v, want lines", prim.Mode)
	}
	if got := doc.Accessors[prim.Attributes[gltf.POSITION]].Count; got != 24 {
		t.Errorf("position count = %d, want 24", got)
	}
	if got := doc.Accessors[*prim.Indices].Count; got != 48 {
		t.Errorf("index count = %d, want 48", got)
	}
}

func TestSaveFrameGLTF(t *testing.T) {
	cubes := []WorldCube{templateWorldCube("flag", math3d.Zero3(), color.RGBA{255, 255, 255, 255})}
	path := filepath.Join(t.TempDir(), "frame.gltf")
	if err := SaveFrameGLTF(path, cubes); err != nil {
		t.Fatalf("SaveFrameGLTF: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.HasPrefix(data, []byte("glTF")) {
		t.Fatal("wrote binary glTF")
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		t.Fatalf("not a JSON document: %q", data[:min(len(data), 16)])
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil || len(entries) != 1 {
		t.Errorf("want a single self-contained file, got %d entries (%v)", len(entries), err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("gltf.Open: %v", err)
	}
	if len(doc.Buffers) != 1 || !doc.Buffers[0].IsEmbeddedResource() {
		t.Fatalf("buffers = %+v, want one embedded buffer", doc.Buffers)
	}
	if got := doc.Accessors[doc.Meshes[0].Primitives[0].Attributes[gltf.POSITION]].Count; got != 24 {
		t.Errorf("position count = %d, want 24", got)
	}
}
