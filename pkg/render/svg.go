package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG exports the stage in paint order as an SVG document. Points are
// rounded to whole device units.
func WriteSVG(w io.Writer, s *Stage, width, height int) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+s.Background.Hex())

	for _, id := range s.PaintOrder() {
		it := s.items[id]
		switch it.kind {
		case KindPolyline:
			xs, ys := polygonCoords(it.polyline)
			canvas.Polygon(xs, ys, polylineStyle(it.polyline))
		case KindFlag:
			b := it.flag.Bounds
			canvas.Image(round(b.X), round(b.Y), round(b.W), round(b.H), it.flag.Flag.DataURI())
		}
	}

	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

func polygonCoords(p Polyline) (xs, ys []int) {
	xs = make([]int, len(p.Points))
	ys = make([]int, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = round(pt.X), round(pt.Y)
	}
	return xs, ys
}

func polylineStyle(p Polyline) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-linejoin:bevel", p.Stroke.Hex(), p.Width)
}

func round(v float64) int {
	return int(math.Round(v))
}
