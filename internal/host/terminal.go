package host

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/taigrr/cubeburst/pkg/render"
)

// Terminal shows a scene in a terminal with half-block pixels.
type Terminal struct {
	screen  tcell.Screen
	ctrl    *Controller
	fps     int
	log     *zap.Logger
	showHUD bool
}

// NewTerminal wraps an initialized screen. The caller owns Init and Fini.
func NewTerminal(screen tcell.Screen, ctrl *Controller, fps int, log *zap.Logger) *Terminal {
	if log == nil {
		log = zap.NewNop()
	}
	return &Terminal{screen: screen, ctrl: ctrl, fps: fps, log: log, showHUD: true}
}

// Run loops until the user quits or ctx is done.
func (t *Terminal) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameDuration(t.fps))
	defer ticker.Stop()
	clock := NewClock(nil)

	w, h := t.screen.Size()
	t.log.Info("terminal host started", zap.Int("cols", w), zap.Int("rows", h), zap.Int("fps", t.fps))
	t.Draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if t.handleEvent(ev) {
				t.log.Info("terminal host stopped", zap.Uint64("frames", t.ctrl.Scene().Frames()))
				return nil
			}
		case <-ticker.C:
			t.ctrl.Tick(clock.Tick())
			t.Draw()
		}
	}
}

func (t *Terminal) handleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.ctrl.Handle(actionForKey(ev))
	case *tcell.EventResize:
		t.screen.Sync()
		w, h := t.screen.Size()
		t.log.Debug("resize", zap.Int("cols", w), zap.Int("rows", h))
	}
	return false
}

func actionForKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		return ActionPitchUp
	case tcell.KeyDown:
		return ActionPitchDown
	case tcell.KeyLeft:
		return ActionYawLeft
	case tcell.KeyRight:
		return ActionYawRight
	case tcell.KeyRune:
		return ActionForRune(ev.Rune())
	}
	return ActionNone
}

// Draw renders the current frame and the status line.
func (t *Terminal) Draw() {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	if t.showHUD {
		rows--
	}
	if cols <= 0 || rows <= 0 {
		t.screen.Show()
		return
	}

	s := t.ctrl.Scene()
	vp := s.Pipeline().Camera().Viewport()
	pw, ph := fitPixels(cols, rows*2, vp)
	img := render.Rasterize(s.Stage(), vp, pw, ph)
	drawHalfBlocks(t.screen, img, (cols-pw)/2, (rows*2-ph)/4)

	if t.showHUD {
		drawText(t.screen, 0, rows, t.status(), tcell.StyleDefault)
	}
	t.screen.Show()
}

func (t *Terminal) status() string {
	s := t.ctrl.Scene()
	rot := s.RotationDegrees()
	line := fmt.Sprintf("t=%.1fs cubes %d recycled %d explode %.0f%% rot (%.0f,%.0f,%.0f)",
		s.Elapsed(), s.Len(), s.Recycled(), s.ExplosionPercent(), rot.X, rot.Y, rot.Z)
	if t.ctrl.Paused() {
		line += " [paused]"
	}
	return line
}

// fitPixels returns the largest pixel size inside cols x pixelRows that
// keeps the viewport aspect ratio.
func fitPixels(cols, pixelRows int, vp render.Viewport) (int, int) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return cols, pixelRows
	}
	aspect := vp.Height / vp.Width
	pw, ph := cols, int(math.Round(float64(cols)*aspect))
	if ph > pixelRows {
		ph = pixelRows
		pw = int(math.Round(float64(ph) / aspect))
	}
	return max(pw, 1), max(ph, 1)
}

// drawHalfBlocks writes two image rows per terminal row: the upper pixel
// as foreground of '▀', the lower as background.
func drawHalfBlocks(screen tcell.Screen, img *image.RGBA, x0, y0 int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x0+x-b.Min.X, y0+(y-b.Min.Y)/2, '▀', nil, style)
		}
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
