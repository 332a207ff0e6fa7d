package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/cubeburst/pkg/math3d"
)

// ReadOBJ parses a frame written by WriteOBJ, or any OBJ whose objects
// are six quads each. Faces before the first "o" line form an unnamed cube.
func ReadOBJ(r io.Reader) ([]WorldCube, error) {
	var (
		positions []math3d.Vec3
		cubes     []WorldCube
		cur       *WorldCube
		faces     int
	)

	finish := func(lineNum int) error {
		if cur == nil {
			return nil
		}
		if faces != FaceCount {
			return fmt.Errorf("line %d: object %q has %d faces, want %d", lineNum, cur.Name, faces, FaceCount)
		}
		cubes = append(cubes, *cur)
		cur, faces = nil, 0
		return nil
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: invalid vertex (need x y z)", lineNum)
			}
			var xyz [3]float64
			for i := range xyz {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate %q: %w", lineNum, fields[i+1], err)
				}
				xyz[i] = v
			}
			positions = append(positions, math3d.V3(xyz[0], xyz[1], xyz[2]))

		case "f":
			if len(fields) != CornersPerFace+1 {
				return nil, fmt.Errorf("line %d: face has %d corners, want %d", lineNum, len(fields)-1, CornersPerFace)
			}
			if cur == nil {
				cur = &WorldCube{Name: fmt.Sprintf("cube-%d", len(cubes))}
			}
			if faces == FaceCount {
				return nil, fmt.Errorf("line %d: object %q has more than %d faces", lineNum, cur.Name, FaceCount)
			}
			for i := range CornersPerFace {
				idx, err := parseFaceVertex(fields[i+1])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				idx = resolveIndex(idx, len(positions))
				if idx < 0 || idx >= len(positions) {
					return nil, fmt.Errorf("line %d: position index %s out of range", lineNum, fields[i+1])
				}
				cur.Faces[faces][i] = positions[idx]
			}
			faces++

		case "o", "g":
			if err := finish(lineNum); err != nil {
				return nil, err
			}
			cur = &WorldCube{}
			if len(fields) > 1 {
				cur.Name = fields[1]
			}

		default:
			// normals, texture coords and materials carry nothing a frame needs
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	if err := finish(lineNum); err != nil {
		return nil, err
	}
	return cubes, nil
}

// parseFaceVertex returns the position index of a face vertex written as
// v, v/vt, v/vt/vn or v//vn.
func parseFaceVertex(s string) (int, error) {
	pos, _, _ := strings.Cut(s, "/")
	idx, err := strconv.Atoi(pos)
	if err != nil || idx == 0 {
		return 0, fmt.Errorf("invalid vertex index: %s", s)
	}
	return idx, nil
}

// resolveIndex converts a 1-based or negative OBJ index to 0-based.
func resolveIndex(idx, count int) int {
	if idx < 0 {
		return count + idx
	}
	return idx - 1
}

// LoadOBJ reads a frame from an OBJ file.
func LoadOBJ(path string) ([]WorldCube, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer f.Close()

	return ReadOBJ(f)
}
