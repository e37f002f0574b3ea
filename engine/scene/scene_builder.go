package scene

import (
	"github.com/Carmen-Shannon/beagle-go/engine/camera"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithModel sets the model drawn by the scene.
//
// Parameters:
//   - m: the model
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithModel(m model.Model) SceneBuilderOption {
	return func(s *scene) {
		s.model = m
	}
}

// WithCamera sets the camera the scene is viewed through.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = cam
	}
}

// WithDebugNormals enables the vertex normal overlay.
//
// Parameters:
//   - enabled: whether draw calls request the overlay
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDebugNormals(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.debugNormals = enabled
	}
}
