// Package window shows a scene in a desktop window.
package window

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/taigrr/cubeburst/internal/host"
	"github.com/taigrr/cubeburst/pkg/render"
)

// Options sizes the window.
type Options struct {
	Title  string
	Width  int
	Height int
	TPS    int
}

var bindings = []struct {
	key    ebiten.Key
	action host.Action
}{
	{ebiten.KeyEscape, host.ActionQuit},
	{ebiten.KeyQ, host.ActionQuit},
	{ebiten.KeyP, host.ActionPause},
	{ebiten.KeySpace, host.ActionPause},
	{ebiten.KeyR, host.ActionReset},
	{ebiten.KeyW, host.ActionPitchUp},
	{ebiten.KeyArrowUp, host.ActionPitchUp},
	{ebiten.KeyS, host.ActionPitchDown},
	{ebiten.KeyArrowDown, host.ActionPitchDown},
	{ebiten.KeyA, host.ActionYawLeft},
	{ebiten.KeyArrowLeft, host.ActionYawLeft},
	{ebiten.KeyD, host.ActionYawRight},
	{ebiten.KeyArrowRight, host.ActionYawRight},
	{ebiten.KeyBracketLeft, host.ActionRollLeft},
	{ebiten.KeyBracketRight, host.ActionRollRight},
	{ebiten.KeyEqual, host.ActionExplodeMore},
	{ebiten.KeyMinus, host.ActionExplodeLess},
}

type game struct {
	ctx   context.Context
	ctrl  *host.Controller
	opts  Options
	frame *ebiten.Image
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) && g.ctrl.Handle(b.action) {
			return ebiten.Termination
		}
	}
	// ebiten calls Update at a fixed rate
	g.ctrl.Tick(1 / float64(g.opts.TPS))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	s := g.ctrl.Scene()
	img := render.Rasterize(s.Stage(), s.Pipeline().Camera().Viewport(), g.opts.Width, g.opts.Height)
	if g.frame == nil {
		g.frame = ebiten.NewImage(g.opts.Width, g.opts.Height)
	}
	g.frame.WritePixels(img.Pix)
	screen.DrawImage(g.frame, nil)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}

// Run opens the window and blocks until it closes or ctx is done.
func Run(ctx context.Context, ctrl *host.Controller, opts Options, log *zap.Logger) error {
	if opts.TPS <= 0 {
		opts.TPS = 60
	}
	if log == nil {
		log = zap.NewNop()
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetTPS(opts.TPS)

	log.Info("window host started", zap.Int("width", opts.Width), zap.Int("height", opts.Height), zap.Int("tps", opts.TPS))
	err := ebiten.RunGame(&game{ctx: ctx, ctrl: ctrl, opts: opts})
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	log.Info("window host stopped", zap.Uint64("frames", ctrl.Scene().Frames()))
	return err
}
