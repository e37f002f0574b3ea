package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/engine/loader"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
	"github.com/Carmen-Shannon/beagle-go/engine/profiler"
	"github.com/Carmen-Shannon/beagle-go/engine/renderer"
	"github.com/Carmen-Shannon/beagle-go/engine/scene"
	"github.com/Carmen-Shannon/beagle-go/engine/window"
)

var (
	errNoWindow   = errors.New("engine requires a window")
	errNoRenderer = errors.New("engine requires a renderer")
	errNoScene    = errors.New("engine requires a scene")
)

// engine implements the Engine interface.
// Runs the poll, steer, draw and present cycle on the window's message loop.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene
	watcher  loader.Watcher

	mapping InputMapping

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time

	normalsHeld bool // N was down last frame

	quitOnce sync.Once
	errMu    sync.Mutex
	err      error
}

// Engine is the main entry point of the viewer.
// Each window loop iteration swaps in hot-reloaded models, maps input onto the camera, draws one
// traversal of the scene and presents it.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene being viewed.
	//
	// Returns:
	//   - scene.Scene: the scene instance
	Scene() scene.Scene

	// SetModel uploads m to the renderer and makes it the scene's model.
	// The current model stays in place if the upload fails.
	//
	// Parameters:
	//   - m: the model to view
	//
	// Returns:
	//   - error: the renderer's upload error
	SetModel(m model.Model) error

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run drives the window message loop until the window closes or Quit is called.
	// Must be called from the goroutine that created the window.
	//
	// Returns:
	//   - error: the error that stopped the loop, or nil on a normal close
	Run() error

	// Quit asks the loop to stop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine from the provided options.
// A window, renderer and scene are required. Resize events reconfigure the renderer surface and
// the camera aspect ratio.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if a required collaborator is missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mapping:  DefaultInputMapping(),
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	switch {
	case e.window == nil:
		return nil, errNoWindow
	case e.renderer == nil:
		return nil, errNoRenderer
	case e.scene == nil:
		return nil, errNoScene
	}

	e.window.SetResizeCallback(e.resize)
	e.window.SetUpdateCallback(func() {
		if err := e.frame(); err != nil {
			e.fail(err)
		}
	})

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) SetModel(m model.Model) error {
	if err := e.renderer.SetModel(m); err != nil {
		return err
	}
	e.scene.SetModel(m)
	return nil
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Run() error {
	e.lastFrame = time.Now()
	e.window.ProcessMessages()

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			log.Printf("[Engine] failed to stop watcher: %v", err)
		}
	}

	e.errMu.Lock()
	defer e.errMu.Unlock()
	return e.err
}

// Quit asks the window loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.window.RequestClose()
	})
}

// fail records the first fatal loop error and stops the loop.
func (e *engine) fail(err error) {
	e.errMu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.errMu.Unlock()
	e.Quit()
}

// resize forwards a framebuffer resize to the renderer and the camera.
// A zero-sized framebuffer (minimised window) is skipped.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if err := e.renderer.Resize(width, height); err != nil {
		log.Printf("[Engine] resize to %dx%d failed: %v", width, height, err)
	}
	if c := e.scene.Camera(); c != nil {
		c.SetAspect(float32(width) / float32(height))
	}
}

// frame runs one iteration of the viewer loop.
//
// Returns:
//   - error: a traversal error, which stops the loop
func (e *engine) frame() error {
	e.applyReload()

	if quit := e.handleInput(); quit {
		e.Quit()
		return nil
	}

	// BeginFrame fails while the surface is unavailable, e.g. when minimised. Skip the frame.
	if err := e.renderer.BeginFrame(); err == nil {
		drawErr := e.scene.Draw(e.renderer)
		e.renderer.EndFrame()
		e.renderer.Present()
		if drawErr != nil {
			return fmt.Errorf("failed to draw scene %q: %w", e.scene.Name(), drawErr)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(e.renderer.DrawCount())
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(e.lastFrame); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	e.lastFrame = time.Now()
	return nil
}

// applyReload swaps in the newest model published by the watcher, if any.
func (e *engine) applyReload() {
	if e.watcher == nil {
		return
	}
	select {
	case m, ok := <-e.watcher.Updates():
		if !ok {
			e.watcher = nil
			return
		}
		if err := e.SetModel(m); err != nil {
			log.Printf("[Engine] keeping previous model, reload of %q rejected: %v", m.Name(), err)
			return
		}
		log.Printf("[Engine] reloaded %q", m.Name())
	default:
	}
}

// handleInput maps the held keys and mouse movement onto the camera and handles the command keys.
//
// Returns:
//   - bool: true if Esc was pressed
func (e *engine) handleInput() bool {
	if e.window.IsKeyDown(common.KeyEsc) {
		return true
	}

	normalsDown := e.window.IsKeyDown(common.KeyN)
	if normalsDown && !e.normalsHeld {
		e.scene.SetDebugNormals(!e.scene.DebugNormals())
	}
	e.normalsHeld = normalsDown

	dx, dy := e.window.MouseDelta()
	cam := e.scene.Camera()
	if cam == nil || cam.Controller() == nil {
		return false
	}
	ctrl := cam.Controller()

	if e.window.IsKeyDown(common.KeyC) {
		ctrl.ResetOrientation()
	}

	s := e.mapping.Map(e.window, dx, dy)
	ctrl.Steer(s.Pitch, s.Yaw, s.Roll, s.Translate)
	return false
}
