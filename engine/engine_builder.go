package engine

import (
	"github.com/Carmen-Shannon/beagle-go/engine/loader"
	"github.com/Carmen-Shannon/beagle-go/engine/renderer"
	"github.com/Carmen-Shannon/beagle-go/engine/scene"
	"github.com/Carmen-Shannon/beagle-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an engine.
type EngineBuilderOption func(*engine)

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer that receives the scene's draw calls.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the scene to view.
//
// Parameters:
//   - s: the scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithWatcher hot-reloads the scene from the watcher's updates. The engine closes the watcher
// when Run returns.
//
// Parameters:
//   - w: the watcher
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWatcher(w loader.Watcher) EngineBuilderOption {
	return func(e *engine) {
		e.watcher = w
	}
}

// WithInputMapping replaces the default key and mouse mapping.
//
// Parameters:
//   - m: the mapping
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInputMapping(m InputMapping) EngineBuilderOption {
	return func(e *engine) {
		e.mapping = m
	}
}

// WithProfiling enables or disables the periodic profiler log.
//
// Parameters:
//   - enabled: whether profiling is on
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithRenderFrameLimit caps the frame rate.
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}
