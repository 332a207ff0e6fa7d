package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// Rasterize paints the stage into an image of the given size. Stage
// coordinates are scaled so the viewport the stage was built for fills
// the image.
func Rasterize(s *Stage, vp Viewport, width, height int) *image.RGBA {
	dc := gg.NewContext(width, height)
	dc.SetColor(s.Background.RGBA())
	dc.Clear()

	sx := float64(width) / vp.Width
	sy := float64(height) / vp.Height
	dc.Scale(sx, sy)
	dc.SetLineJoin(gg.LineJoinBevel)

	for _, id := range s.PaintOrder() {
		it := s.items[id]
		switch it.kind {
		case KindPolyline:
			drawPolyline(dc, it.polyline, math.Min(sx, sy))
		case KindFlag:
			drawFlag(dc, it.flag, sx, sy)
		}
	}
	return dc.Image().(*image.RGBA)
}

func drawPolyline(dc *gg.Context, p Polyline, scale float64) {
	// keep outlines visible when scaled down to a terminal grid
	dc.SetLineWidth(math.Max(p.Width, 1/scale))
	dc.SetColor(p.Stroke.RGBA())
	dc.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	dc.ClosePath()
	dc.Stroke()
}

// drawFlag rasterizes the flag at device resolution and places it with the
// stage scale removed, so the flag stays sharp at any output size.
func drawFlag(dc *gg.Context, f FlagItem, sx, sy float64) {
	x0, y0 := math.Round(f.Bounds.X*sx), math.Round(f.Bounds.Y*sy)
	x1, y1 := math.Round((f.Bounds.X+f.Bounds.W)*sx), math.Round((f.Bounds.Y+f.Bounds.H)*sy)
	img := f.Flag.Image(int(x1-x0), int(y1-y0))

	dc.Push()
	dc.Identity()
	dc.DrawImage(img, int(x0), int(y0))
	dc.Pop()
}

// EncodePNG rasterizes the stage and writes it as PNG.
func EncodePNG(w io.Writer, s *Stage, vp Viewport, width, height int) error {
	if err := png.Encode(w, Rasterize(s, vp, width, height)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG rasterizes the stage to a PNG file.
func SavePNG(path string, s *Stage, vp Viewport, width, height int) error {
	if err := gg.SavePNG(path, Rasterize(s, vp, width, height)); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}
