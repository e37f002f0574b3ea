package scene

import (
	"sync"

	"github.com/Carmen-Shannon/beagle-go/engine/camera"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// Scene owns the model being viewed and the camera looking at it, and turns them into one frame
// of draw calls. The model can be swapped between frames, e.g. after a hot reload.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Model returns the model currently drawn.
	Model() model.Model

	// SetModel replaces the drawn model. Takes effect on the next Draw.
	//
	// Parameters:
	//   - m: the new model
	SetModel(m model.Model)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// DebugNormals reports whether draw calls request the vertex normal overlay.
	DebugNormals() bool

	// SetDebugNormals toggles the vertex normal overlay.
	//
	// Parameters:
	//   - enabled: whether to request the overlay
	SetDebugNormals(enabled bool)

	// Draw computes the camera matrices once and traverses the model into sink.
	// A scene without a model or camera draws nothing.
	//
	// Parameters:
	//   - sink: receives the frame's draw calls
	//
	// Returns:
	//   - error: the traversal error, if any
	Draw(sink DrawSink) error
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu sync.RWMutex

	name         string
	model        model.Model
	camera       camera.Camera
	debugNormals bool
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given options.
//
// Parameters:
//   - name: the scene identifier
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the configured scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{name: name}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Model() model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

func (s *scene) SetModel(m model.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = cam
}

func (s *scene) DebugNormals() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debugNormals
}

func (s *scene) SetDebugNormals(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugNormals = enabled
}

func (s *scene) Draw(sink DrawSink) error {
	s.mu.RLock()
	m, cam, normals := s.model, s.camera, s.debugNormals
	s.mu.RUnlock()

	if m == nil || cam == nil {
		return nil
	}

	view := cam.ViewMatrix()
	projection := cam.ProjectionMatrix()
	position := cam.Position()

	if normals {
		inner := sink
		sink = DrawSinkFunc(func(call DrawCall) error {
			call.DebugNormals = true
			return inner.Draw(call)
		})
	}
	return Traverse(m, view, projection, position, sink)
}
