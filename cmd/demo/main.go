// Command terminalgl-demo is a small CLI that spins up a terminal
// Surface, attaches a pipeline.Context to it, and renders a lit,
// rotating primitive for --frames frames (0 = until interrupted). Flags and a config
// file select behaviors; none of this package is part of the rendering
// pipeline's interface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"terminalgl/config"
	"terminalgl/demoassets"
	"terminalgl/mathx"
	"terminalgl/msgsink"
	"terminalgl/pipeline"
	"terminalgl/term"
)

func main() {
	cfg := config.Default()

	var (
		rows, cols int
		meshPath   string
		frames     int
		configPath string
	)

	root := &cobra.Command{
		Use:   "terminalgl-demo",
		Short: "Renders a spinning primitive into the terminal using the terminalgl pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				set := map[string]string{}
				cmd.Flags().Visit(func(f *pflag.Flag) { set[f.Name] = f.Value.String() })
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
				for name, val := range set {
					if err := cmd.Flags().Set(name, val); err != nil {
						return err
					}
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg, rows, cols, meshPath, frames)
		},
	}
	config.BindFlags(root, &cfg)
	root.Flags().StringVar(&configPath, "config", "", "optional TOML config file (flags override it)")
	root.Flags().IntVar(&rows, "rows", 30, "terminal character rows to render into")
	root.Flags().IntVar(&cols, "cols", 60, "terminal character columns to render into")
	root.Flags().StringVar(&meshPath, "mesh", "", "optional .glb/.gltf file to load instead of the built-in quad")
	root.Flags().IntVar(&frames, "frames", 180, "number of frames to render before exiting (0 = run until interrupted)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, rows, cols int, meshPath string, frames int) error {
	sink := msgsink.New(os.Stderr, parseLevel(cfg.LogLevel))

	ctx := pipeline.NewContext(pipeline.Options{
		WidthMultiplier: cfg.WidthMultiplier,
		LightCapacity:   cfg.LightCapacity,
		Sink:            sink.AsCallback(),
	})

	surface := term.NewAnsiSurface(os.Stdout, rows, cols)
	if !ctx.Init(surface, cfg.TileMode()) {
		return fmt.Errorf("demo: framebuffer init failed")
	}
	defer ctx.Free()

	fb := ctx.Framebuffer()
	fb.SetTimingBudget(cfg.WaitMillis, cfg.SwapToRenderRatio)
	fb.ClearColor(pipeline.Color{R: 0.05, G: 0.05, B: 0.08, A: 1})
	fb.ClearDepth(1.0)
	fb.Enable(pipeline.DepthTest)
	fb.DepthFunc(pipeline.DepthLess)
	fb.DepthMask(true)

	if !cfg.SuppressBanner {
		fmt.Fprintln(os.Stderr, "terminalgl demo — Ctrl+C to exit")
	}

	tris, attr, err := sceneTriangles(meshPath)
	if err != nil {
		return fmt.Errorf("demo: loading scene: %w", err)
	}

	ctx.SetMaterial(pipeline.Material{
		Ambient:   pipeline.Color{R: 0.15, G: 0.15, B: 0.15, A: 1},
		Diffuse:   pipeline.Color{R: 0.8, G: 0.8, B: 0.8, A: 1},
		Specular:  pipeline.Color{R: 0.9, G: 0.9, B: 0.9, A: 1},
		Shininess: 48,
	})
	ctx.SetDirectional(0, pipeline.DirectionalLight{
		Ambient:   pipeline.Color{R: 0.2, G: 0.2, B: 0.2, A: 1},
		Diffuse:   pipeline.Color{R: 1, G: 1, B: 1, A: 1},
		Specular:  pipeline.Color{R: 1, G: 1, B: 1, A: 1},
		Direction: mathx.NewVec3(0, 0, -1),
		Intensity: 1,
	})
	ctx.SetShadeModel(pipeline.ShadeSmooth)

	ctx.MatrixMode(pipeline.ModeProjection)
	ctx.LoadIdentity()
	ctx.Perspective(mathx.PiH, fb.AspectRatio(), 0.1, 100)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var angle float32
	for frame := 0; runCtx.Err() == nil; frame++ {
		if frames > 0 && frame >= frames {
			break
		}
		fb.Clear(pipeline.ColorBit | pipeline.DepthBit)

		ctx.MatrixMode(pipeline.ModeModelview)
		ctx.LoadIdentity()
		ctx.Translate(mathx.NewVec3(0, 0, -3))
		ctx.Rotate(angle, mathx.NewVec3(0, 1, 0))

		for _, t := range tris {
			ctx.DrawTriangle(t[0], t[1], t[2], attr)
		}

		fb.Swap(ctx)
		angle += 0.03
	}
	return nil
}

// sceneTriangles returns the geometry to render: a loaded glTF mesh if
// --mesh was given, otherwise the built-in quad.
func sceneTriangles(meshPath string) ([][3]pipeline.Vertex, pipeline.VertexAttr, error) {
	if meshPath != "" {
		mesh, err := demoassets.Load(meshPath)
		if err != nil {
			return nil, 0, err
		}
		return mesh.Triangles(), mesh.Attr, nil
	}
	return quadTriangles(), pipeline.AttrPositionNormal, nil
}

// quadTriangles is the built-in fallback scene: a unit quad facing the
// camera, split into two triangles sharing an outward normal so the
// default directional light shades it.
func quadTriangles() [][3]pipeline.Vertex {
	n := mathx.NewVec3(0, 0, 1)
	v := func(x, y float32) pipeline.Vertex {
		return pipeline.Vertex{Position: mathx.NewVec3(x, y, 0), Normal: n}
	}
	tl, tr, bl, br := v(-1, 1), v(1, 1), v(-1, -1), v(1, -1)
	return [][3]pipeline.Vertex{
		{bl, br, tr},
		{bl, tr, tl},
	}
}

func parseLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
