// cubeburst - Wireframe cube stream with a flag overlay
// Watch cubes drift past an exploded flag carrier in the terminal, a window,
// or render frames to SVG, PNG, GLB, OBJ and STL.
//
// Controls:
//
//	W/S, Up/Down     - Pitch the flag cube
//	A/D, Left/Right  - Yaw the flag cube
//	[ / ]            - Roll the flag cube
//	+/-              - Explode more/less (10% steps)
//	R                - Reset rotation
//	P or Space       - Pause
//	Q, Esc, Ctrl-C   - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/cubeburst/internal/config"
	"github.com/taigrr/cubeburst/internal/host"
	"github.com/taigrr/cubeburst/internal/host/window"
	"github.com/taigrr/cubeburst/internal/logger"
	"github.com/taigrr/cubeburst/pkg/math3d"
	"github.com/taigrr/cubeburst/pkg/models"
	"github.com/taigrr/cubeburst/pkg/render"
	"github.com/taigrr/cubeburst/pkg/scene"
)

var version = "dev"

var overrides config.Overrides

func main() {
	cmd := &cobra.Command{
		Use:   "cubeburst",
		Short: "Wireframe cube stream with a flag overlay",
		Long: `cubeburst - Wireframe cube stream with a flag overlay

Cubes drift along the x axis past an exploded cube that holds a flag.
Faces of the flag cube nearer the camera than the origin are drawn
over the flag; the rest go behind it.

Controls:
  W/S/A/D     - Pitch and yaw
  [ / ]       - Roll
  +/-         - Explode more/less
  R           - Reset rotation
  P           - Pause
  Esc         - Quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTerminal(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&overrides.ConfigPath, "config", "", "Path to config file (default: ./cubeburst.yaml or user config dir)")
	flags.StringVar(&overrides.Variant, "variant", "", "Scene variant: stream or single")
	flags.Uint64Var(&overrides.Seed, "seed", 0, "Random seed (0 = random)")
	flags.Float64Var(&overrides.Width, "width", 0, "Viewport width")
	flags.Float64Var(&overrides.Height, "height", 0, "Viewport height")
	flags.IntVar(&overrides.FPS, "fps", 0, "Target FPS")
	flags.BoolVar(&overrides.Debug, "debug", false, "Enable debug logging")
	flags.StringVar(&overrides.LogFile, "log-file", "", "Write logs to this file")

	cmd.AddCommand(windowCmd(), renderCmd(), infoCmd(), configCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, cmd, fang.WithVersion(version)); err != nil {
		// the terminal host only logs to its file; keep the failure there too
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func windowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "Show the scene in a desktop window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			s, err := buildScene(cfg)
			if err != nil {
				return err
			}
			vp := cfg.ViewportSize()
			return window.Run(cmd.Context(), host.NewController(s, cfg.Render.FPS), window.Options{
				Title:  "cubeburst",
				Width:  int(vp.Width),
				Height: int(vp.Height),
				TPS:    cfg.Render.FPS,
			}, logger.Named("window"))
		},
	}
}

func renderCmd() *cobra.Command {
	var (
		out      string
		duration float64
		opts     exportOptions
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Simulate the scene and export a frame",
		Long: `Simulate the scene for --time seconds at the configured FPS and write
the final frame. The format follows the extension of --out:

  .svg  - vector image of both layers ("-" writes SVG to stdout)
  .png  - raster image
  .glb  - world-space wireframe as binary glTF
  .gltf - world-space wireframe as JSON glTF with an embedded buffer
  .obj  - world-space wireframe as Wavefront OBJ
  .stl  - world-space faces as binary STL (ASCII with --ascii)

An --out containing a printf verb such as frame-%04d.svg writes every frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(true)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runRender(cmd.Context(), cfg, out, duration, opts)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "frame.svg", "Output path")
	cmd.Flags().Float64Var(&duration, "time", 0, "Seconds to simulate before exporting")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "Raster size relative to the viewport")
	cmd.Flags().BoolVar(&opts.ascii, "ascii", false, "Write STL as ASCII instead of binary")
	return cmd
}

func infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [frame.obj|frame.stl]",
		Short: "Display camera and scene information",
		Long: `Display the combined camera matrix, screen fit, population and flag
placement for the effective config. Given an exported OBJ or STL frame,
display its cube count and bounding box instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runFrameInfo(args[0])
			}
			cfg, err := setup(true)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return runInfo(cfg)
		},
	}
	return cmd
}

func configCmd() *cobra.Command {
	var write string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective config as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(overrides)
			if err != nil {
				return err
			}
			if write != "" {
				if err := cfg.SaveTo(write); err != nil {
					return fmt.Errorf("save config: %w", err)
				}
				fmt.Printf("Wrote %s\n", write)
				return nil
			}
			return cfg.Encode(os.Stdout)
		},
	}
	cmd.Flags().StringVar(&write, "write", "", "Write the config to this path instead of stdout")
	return cmd
}

// setup loads the config and starts logging.
func setup(console bool) (*config.Config, error) {
	cfg, err := config.Load(overrides)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, console); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.Source != "" {
		logger.Debug("config loaded", zap.String("path", cfg.Source))
	}
	return cfg, nil
}

func buildScene(cfg *config.Config) (*scene.Scene, error) {
	pipe, err := cfg.NewPipeline()
	if err != nil {
		return nil, err
	}
	stage, err := cfg.NewStage()
	if err != nil {
		return nil, err
	}
	sc, err := cfg.SceneConfig()
	if err != nil {
		return nil, err
	}
	return scene.New(sc, stage, pipe, scene.WithLogger(logger.Named("scene")))
}

func runTerminal(ctx context.Context) error {
	// the screen owns the terminal, so logs only go to the file
	cfg, err := setup(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := buildScene(cfg)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	term := host.NewTerminal(screen, host.NewController(s, cfg.Render.FPS), cfg.Render.FPS, logger.Named("terminal"))
	return term.Run(ctx)
}

// exportOptions holds the render flags that shape the written file.
type exportOptions struct {
	scale float64
	ascii bool
}

func runRender(ctx context.Context, cfg *config.Config, out string, duration float64, opts exportOptions) error {
	s, err := buildScene(cfg)
	if err != nil {
		return err
	}

	if opts.ascii && strings.ToLower(filepath.Ext(out)) != ".stl" {
		logger.Warn("--ascii only applies to STL output", zap.String("out", out))
	}

	fps := cfg.Render.FPS
	frames := int(duration * float64(fps))
	dt := 1 / float64(fps)
	sequence := strings.Contains(out, "%")

	if sequence {
		if err := export(cfg, s, fmt.Sprintf(out, 0), opts); err != nil {
			return err
		}
	}
	for i := 1; i <= frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Step(dt)
		if sequence {
			if err := export(cfg, s, fmt.Sprintf(out, i), opts); err != nil {
				return err
			}
		}
	}
	logger.Info("simulated",
		zap.Int("frames", frames),
		zap.Float64("elapsed", s.Elapsed()),
		zap.Int("recycled", s.Recycled()),
	)
	if sequence {
		return nil
	}
	return export(cfg, s, out, opts)
}

func export(cfg *config.Config, s *scene.Scene, out string, opts exportOptions) error {
	vp := cfg.ViewportSize()
	w, h := int(vp.Width), int(vp.Height)

	ext := strings.ToLower(filepath.Ext(out))

	var err error
	switch {
	case out == "-":
		err = render.WriteSVG(os.Stdout, s.Stage(), w, h)
	case ext == ".svg":
		err = writeSVGFile(out, s.Stage(), w, h)
	case ext == ".png":
		err = render.SavePNG(out, s.Stage(), vp, int(vp.Width*opts.scale), int(vp.Height*opts.scale))
	case ext == ".glb":
		err = models.SaveFrameGLB(out, s.WorldCubes())
	case ext == ".gltf":
		err = models.SaveFrameGLTF(out, s.WorldCubes())
	case ext == ".obj":
		err = models.SaveOBJ(out, s.WorldCubes())
	case ext == ".stl" && opts.ascii:
		err = models.SaveSTLASCII(out, s.WorldCubes())
	case ext == ".stl":
		err = models.SaveSTL(out, s.WorldCubes())
	default:
		return fmt.Errorf("unsupported format: %s (use .svg, .png, .glb, .gltf, .obj, or .stl)", ext)
	}
	if err != nil {
		return err
	}
	logger.Debug("exported", zap.String("path", out))
	return nil
}

func writeSVGFile(path string, stage *render.Stage, w, h int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.WriteSVG(f, stage, w, h)
}

func runInfo(cfg *config.Config) error {
	s, err := buildScene(cfg)
	if err != nil {
		return err
	}
	cam := s.Pipeline().Camera()
	spec := cam.Spec()
	vp := cam.Viewport()

	fmt.Printf("Config:     %s\n", sourceName(cfg))
	fmt.Printf("Viewport:   %gx%g\n", vp.Width, vp.Height)
	fmt.Printf("Projection: %s\n", spec.Projection)
	fmt.Printf("Eye:        (%.3f, %.3f, %.3f)\n", spec.Eye.X, spec.Eye.Y, spec.Eye.Z)
	fmt.Printf("Fit scale:  %.3f\n", cam.FitScale())
	fmt.Printf("Px / unit:  %.3f\n", cam.PixelsPerUnit())
	fmt.Println()
	fmt.Println("Matrix (projection x view):")
	m := cam.Matrix()
	for row := 0; row < 4; row++ {
		fmt.Printf("  % 10.5f % 10.5f % 10.5f % 10.5f\n", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3))
	}
	fmt.Println()
	fmt.Printf("Variant:    %s\n", cfg.Scene.Variant)
	fmt.Printf("Seed:       %d\n", s.Seed())
	fmt.Printf("Cubes:      %d\n", s.Population())
	fmt.Printf("Items:      %d\n", s.Stage().Len())
	if f, _, ok := s.Stage().Flag(); ok {
		b := f.Bounds
		fmt.Printf("Flag:       %.1fx%.1f at (%.1f, %.1f)\n", b.W, b.H, b.X, b.Y)
	} else {
		fmt.Println("Flag:       none")
	}
	return nil
}

func runFrameInfo(path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	var (
		min, max math3d.Vec3
		cubes    = -1
		tris     int
	)
	switch ext {
	case ".obj":
		frame, err := models.LoadOBJ(path)
		if err != nil {
			return fmt.Errorf("load frame: %w", err)
		}
		if len(frame) == 0 {
			return fmt.Errorf("%s holds no cubes", path)
		}
		cubes, tris = len(frame), len(models.Triangles(frame))
		min, max = frame[0].Bounds()
		for _, c := range frame[1:] {
			lo, hi := c.Bounds()
			min, max = min.Min(lo), max.Max(hi)
		}
	case ".stl":
		all, err := models.LoadSTL(path)
		if err != nil {
			return fmt.Errorf("load frame: %w", err)
		}
		if len(all) == 0 {
			return fmt.Errorf("%s holds no triangles", path)
		}
		tris = len(all)
		if tris%(models.FaceCount*2) == 0 {
			cubes = tris / (models.FaceCount * 2)
		}
		min, max = all[0].V[0], all[0].V[0]
		for _, t := range all {
			for _, v := range t.V {
				min, max = min.Min(v), max.Max(v)
			}
		}
	default:
		return fmt.Errorf("unsupported format: %s (use .obj or .stl)", ext)
	}

	size := max.Sub(min)
	fmt.Printf("File:       %s\n", filepath.Base(path))
	fmt.Printf("Format:     %s\n", strings.ToUpper(strings.TrimPrefix(ext, ".")))
	fmt.Printf("Size:       %.2f KB\n", float64(info.Size())/1024)
	fmt.Println()
	if cubes >= 0 {
		fmt.Printf("Cubes:      %d\n", cubes)
	}
	fmt.Printf("Triangles:  %d\n", tris)
	fmt.Printf("Bounds Min: (%.3f, %.3f, %.3f)\n", min.X, min.Y, min.Z)
	fmt.Printf("Bounds Max: (%.3f, %.3f, %.3f)\n", max.X, max.Y, max.Z)
	fmt.Printf("Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	return nil
}

func sourceName(cfg *config.Config) string {
	if cfg.Source == "" {
		return "defaults"
	}
	return cfg.Source
}
