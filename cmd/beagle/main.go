// Command beagle opens a glTF scene file in a free-flight viewer.
//
// Controls: mouse to look, W/A/S/D to move, Space/LeftShift for down/up, Q/E to roll,
// C to reset the orientation, N to toggle vertex normals and Esc to quit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/config"
	"github.com/Carmen-Shannon/beagle-go/engine"
	"github.com/Carmen-Shannon/beagle-go/engine/camera"
	"github.com/Carmen-Shannon/beagle-go/engine/loader"
	"github.com/Carmen-Shannon/beagle-go/engine/renderer"
	"github.com/Carmen-Shannon/beagle-go/engine/scene"
	"github.com/Carmen-Shannon/beagle-go/engine/window"
	"github.com/chewxy/math32"
)

var errNoScenePath = errors.New("no scene file given, use -scene or [scene] path")

// GLFW must be driven from the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "beagle.toml", "path to the TOML configuration file")
	scenePath := flag.String("scene", "", "scene file to open, overrides [scene] path")
	useFps := flag.Bool("fps", false, "use the first-person camera instead of free flight")
	normals := flag.Bool("normals", false, "draw vertex normals")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[Beagle] %v", err)
	}
	cfg.Scene.Path = common.Coalesce(*scenePath, flag.Arg(0), cfg.Scene.Path)
	if *useFps {
		cfg.Camera.Mode = config.CameraFps
	}
	cfg.Debug.Normals = cfg.Debug.Normals || *normals

	if err := run(cfg); err != nil {
		log.Fatalf("[Beagle] %v", err)
	}
}

// run builds the viewer from cfg and blocks until the window closes.
func run(cfg config.Config) error {
	if cfg.Scene.Path == "" {
		return errNoScenePath
	}

	// ── Scene file ──────────────────────────────────────────────────────
	var loaderOptions []loader.LoaderBuilderOption
	if cfg.Scene.DecodeWorkers > 0 {
		loaderOptions = append(loaderOptions, loader.WithDecodeWorkers(cfg.Scene.DecodeWorkers))
	}
	ld := loader.NewLoader(loader.BackendTypeGLTF, loaderOptions...)

	m, err := ld.Load(cfg.Scene.Path)
	if err != nil {
		return err
	}

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, m.Name())),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithCursorCapture(true),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		presentMode = renderer.PresentModeVSync
	}
	c := cfg.Render.ClearColor
	r, err := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAA4x),
		renderer.WithClearColor(common.Vector4{X: c[0], Y: c[1], Z: c[2], W: c[3]}),
		renderer.WithNormalLength(cfg.Debug.NormalLength),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	// ── Camera ──────────────────────────────────────────────────────────
	var ctrl camera.CameraController = camera.NewFreeFlight()
	if cfg.Camera.Mode == config.CameraFps {
		ctrl = camera.NewFps(common.Vector3{})
	}
	cam := camera.NewCamera(
		camera.WithFov(cfg.Camera.FovDegrees*math32.Pi/180),
		camera.WithAspect(float32(win.Width())/float32(max(win.Height(), 1))),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithController(ctrl),
	)

	// ── Engine ──────────────────────────────────────────────────────────
	options := []engine.EngineBuilderOption{
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithScene(scene.NewScene(cfg.Scene.Path,
			scene.WithCamera(cam),
			scene.WithDebugNormals(cfg.Debug.Normals),
		)),
		engine.WithInputMapping(engine.InputMapping{
			MouseSensitivity: cfg.Camera.MouseSensitivity,
			MoveSpeed:        cfg.Camera.MoveSpeed,
			RollSpeed:        cfg.Camera.RollSpeed,
		}),
		engine.WithProfiling(cfg.Debug.Profiling),
		engine.WithRenderFrameLimit(cfg.Render.FrameLimit),
	}
	if cfg.Scene.Watch {
		w, err := loader.NewWatcher(ld, cfg.Scene.Path)
		if err != nil {
			return err
		}
		options = append(options, engine.WithWatcher(w))
	}

	eng, err := engine.NewEngine(options...)
	if err != nil {
		return err
	}
	if err := eng.SetModel(m); err != nil {
		return fmt.Errorf("failed to upload %s: %w", cfg.Scene.Path, err)
	}

	log.Printf("[Beagle] viewing %s (%d meshes, %s camera)", cfg.Scene.Path, m.Len(), cfg.Camera.Mode)
	return eng.Run()
}
