package render

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/taigrr/cubeburst/pkg/math3d"
)

//go:embed flags/default.svg
var defaultFlagSVG []byte

// ErrFlagSize is returned when a flag document has no usable size.
var ErrFlagSize = errors.New("flag has no positive size")

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Min returns the top-left corner.
func (r Rect) Min() math3d.Vec2 { return math3d.V2(r.X, r.Y) }

// Max returns the bottom-right corner.
func (r Rect) Max() math3d.Vec2 { return math3d.V2(r.X+r.W, r.Y+r.H) }

// Flag is a parsed flag graphic. The source document is kept for vector
// export and rasterized through oksvg for the PNG and screen paths.
type Flag struct {
	Width, Height float64 // document units
	MinX, MinY    float64 // viewBox origin
	Source        []byte

	mu   sync.Mutex
	icon *oksvg.SvgIcon
}

type svgDoc struct {
	Width   string `xml:"width,attr"`
	Height  string `xml:"height,attr"`
	ViewBox string `xml:"viewBox,attr"`
}

// ParseFlag parses an SVG flag document.
func ParseFlag(data []byte) (*Flag, error) {
	var doc svgDoc
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse flag svg: %w", err)
	}

	f := &Flag{Width: svgLength(doc.Width), Height: svgLength(doc.Height), Source: data}
	if fields := strings.Fields(strings.ReplaceAll(doc.ViewBox, ",", " ")); len(fields) == 4 {
		f.MinX, f.MinY = svgLength(fields[0]), svgLength(fields[1])
		f.Width, f.Height = svgLength(fields[2]), svgLength(fields[3])
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, ErrFlagSize
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse flag svg: %w", err)
	}
	f.icon = icon
	return f, nil
}

// Image rasterizes the flag into a w×h image. Unpainted pixels stay
// transparent.
func (f *Flag) Image(w, h int) *image.RGBA {
	w, h = max(w, 0), max(h, 0)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	// viewBox origin first, then scale to the target
	f.icon.Transform = rasterx.Identity.
		Scale(float64(w)/f.Width, float64(h)/f.Height).
		Translate(-f.MinX, -f.MinY)
	f.icon.Draw(raster, 1)
	return img
}

// svgLength parses a plain or px-suffixed number; anything else is 0.
func svgLength(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
	if err != nil {
		return 0
	}
	return v
}

// DefaultFlag returns the built-in flag.
func DefaultFlag() *Flag {
	f, err := ParseFlag(defaultFlagSVG)
	if err != nil {
		panic(err)
	}
	return f
}

// LoadFlag reads a flag from disk; an empty path selects the built-in flag.
func LoadFlag(path string) (*Flag, error) {
	if path == "" {
		return DefaultFlag(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load flag: %w", err)
	}
	f, err := ParseFlag(data)
	if err != nil {
		return nil, fmt.Errorf("load flag %s: %w", path, err)
	}
	return f, nil
}

// Aspect returns height / width.
func (f *Flag) Aspect() float64 {
	return f.Height / f.Width
}

// Fit sizes the flag to a fraction of the viewport width and centers it.
func (f *Flag) Fit(vp Viewport, fraction float64) Rect {
	w := vp.Width * fraction
	h := w * f.Aspect()
	return Rect{X: (vp.Width - w) / 2, Y: (vp.Height - h) / 2, W: w, H: h}
}

// DataURI returns the source document as a base64 data URI.
func (f *Flag) DataURI() string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(f.Source)
}
