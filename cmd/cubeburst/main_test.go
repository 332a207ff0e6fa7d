package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/cubeburst/internal/config"
	"github.com/taigrr/cubeburst/pkg/models"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Scene.Seed = 7
	return cfg
}

func TestExportFormats(t *testing.T) {
	cfg := testConfig()
	s, err := buildScene(cfg)
	if err != nil {
		t.Fatalf("buildScene: %v", err)
	}

	tests := []struct {
		file   string
		opts   exportOptions
		prefix string
	}{
		{"frame.svg", exportOptions{}, "<?xml"},
		{"frame.png", exportOptions{scale: 0.5}, "\x89PNG"},
		{"frame.glb", exportOptions{}, "glTF"},
		{"frame.gltf", exportOptions{}, "{"},
		{"frame.obj", exportOptions{}, "#"},
		{"binary.stl", exportOptions{}, "cubeburst frame:"},
		{"ascii.stl", exportOptions{ascii: true}, "solid cubeburst"},
	}
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := export(cfg, s, path, tt.opts); err != nil {
				t.Fatalf("export: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(strings.TrimSpace(string(data)), tt.prefix) {
				t.Errorf("%s starts %q, want %q", tt.file, data[:min(len(data), 16)], tt.prefix)
			}
		})
	}

	if err := export(cfg, s, filepath.Join(dir, "frame.bmp"), exportOptions{}); err == nil {
		t.Error("unsupported extension should fail")
	}
}

func TestRenderSequence(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame-%02d.stl")
	cfg := testConfig()
	cfg.Render.FPS = 10
	if err := runRender(context.Background(), cfg, out, 0.3, exportOptions{ascii: true}); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Fatalf("frames = %d, want 4", len(entries))
	}
	tris, err := models.LoadSTL(filepath.Join(dir, "frame-03.stl"))
	if err != nil {
		t.Fatalf("LoadSTL: %v", err)
	}
	if len(tris)%(models.FaceCount*2) != 0 {
		t.Errorf("triangles = %d, not whole cubes", len(tris))
	}
}
