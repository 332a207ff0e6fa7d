package models

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/cubeburst/pkg/math3d"
)

// Triangle is one STL facet.
type Triangle struct {
	Normal math3d.Vec3
	V      [3]math3d.Vec3
}

// Triangles splits every face into two triangles sharing the 0-2 diagonal.
func Triangles(cubes []WorldCube) []Triangle {
	tris := make([]Triangle, 0, len(cubes)*FaceCount*2)
	for _, c := range cubes {
		for _, f := range c.Faces {
			for _, v := range [2][3]math3d.Vec3{{f[0], f[1], f[2]}, {f[0], f[2], f[3]}} {
				n := v[1].Sub(v[0]).Cross(v[2].Sub(v[0])).Normalize()
				tris = append(tris, Triangle{Normal: n, V: v})
			}
		}
	}
	return tris
}

// WriteSTL writes the cubes as binary STL.
func WriteSTL(w io.Writer, cubes []WorldCube) error {
	tris := Triangles(cubes)

	var header [80]byte
	copy(header[:], fmt.Sprintf("cubeburst frame: %d cubes", len(cubes)))

	bw := bufio.NewWriter(w)
	bw.Write(header[:])
	binary.Write(bw, binary.LittleEndian, uint32(len(tris)))

	var rec [50]byte
	for _, t := range tris {
		putVec3(rec[0:], t.Normal)
		for i, v := range t.V {
			putVec3(rec[12+12*i:], v)
		}
		// attribute byte count stays zero
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func putVec3(b []byte, v math3d.Vec3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}

// WriteSTLASCII writes the cubes as ASCII STL, one solid per frame.
func WriteSTLASCII(w io.Writer, cubes []WorldCube) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "solid cubeburst")
	for _, t := range Triangles(cubes) {
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range t.V {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintln(bw, "endsolid cubeburst")
	return bw.Flush()
}

// SaveSTL writes the cubes to a binary STL file on disk.
func SaveSTL(path string, cubes []WorldCube) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create STL file: %w", err)
	}
	if err := WriteSTL(f, cubes); err != nil {
		f.Close()
		return fmt.Errorf("write STL: %w", err)
	}
	return f.Close()
}

// SaveSTLASCII writes the cubes to an ASCII STL file on disk.
func SaveSTLASCII(path string, cubes []WorldCube) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create STL file: %w", err)
	}
	if err := WriteSTLASCII(f, cubes); err != nil {
		f.Close()
		return fmt.Errorf("write STL: %w", err)
	}
	return f.Close()
}

// ReadSTL parses ASCII or binary STL into triangles.
func ReadSTL(r io.Reader) ([]Triangle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL data: %w", err)
	}
	if isBinarySTL(data) {
		return readBinarySTL(data)
	}
	return readASCIISTL(data)
}

// LoadSTL reads triangles from an STL file.
func LoadSTL(path string) ([]Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open STL file: %w", err)
	}
	defer f.Close()

	return ReadSTL(f)
}

// isBinarySTL detects binary STL: an 80-byte header and a triangle count
// that matches the file size. ASCII STL starts with "solid".
func isBinarySTL(data []byte) bool {
	if len(data) < 84 {
		return false
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("solid")) {
		// a binary header may also start with "solid"
		triCount := binary.LittleEndian.Uint32(data[80:84])
		return uint64(len(data)) == 84+uint64(triCount)*50
	}
	return true
}

func readBinarySTL(data []byte) ([]Triangle, error) {
	triCount := binary.LittleEndian.Uint32(data[80:84])
	expected := 84 + uint64(triCount)*50
	if uint64(len(data)) < expected {
		return nil, fmt.Errorf("binary STL truncated: expected %d bytes, got %d", expected, len(data))
	}

	tris := make([]Triangle, triCount)
	offset := 84
	for i := range tris {
		tris[i].Normal = readVec3(data[offset:])
		for v := range 3 {
			tris[i].V[v] = readVec3(data[offset+12+12*v:])
		}
		offset += 50
	}
	return tris, nil
}

func readVec3(b []byte) math3d.Vec3 {
	return math3d.V3(
		float64(readFloat32LE(b[0:])),
		float64(readFloat32LE(b[4:])),
		float64(readFloat32LE(b[8:])),
	)
}

// readFloat32LE reads a little-endian float32 from a byte slice.
func readFloat32LE(data []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data))
}

func readASCIISTL(data []byte) ([]Triangle, error) {
	var (
		tris    []Triangle
		cur     Triangle
		verts   int
		inFacet bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "facet":
			if len(fields) >= 5 && strings.ToLower(fields[1]) == "normal" {
				n, err := parseVec3(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid normal: %w", lineNum, err)
				}
				cur = Triangle{Normal: n}
			}
			inFacet, verts = true, 0

		case "vertex":
			if !inFacet {
				return nil, fmt.Errorf("line %d: vertex outside facet", lineNum)
			}
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs x y z", lineNum)
			}
			if verts == 3 {
				return nil, fmt.Errorf("line %d: facet has more than 3 vertices", lineNum)
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNum, err)
			}
			cur.V[verts] = v
			verts++

		case "endfacet":
			if verts != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", lineNum, verts)
			}
			tris = append(tris, cur)
			inFacet = false
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return tris, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	var xyz [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		xyz[i] = v
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), nil
}
