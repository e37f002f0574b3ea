package camera

import (
	"sync"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/chewxy/math32"
)

// Default projection settings of the viewer.
const (
	DefaultFov  = 60 * math32.Pi / 180
	DefaultNear = 0.1
	DefaultFar  = 5000
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	controller CameraController
}

// Camera holds the perspective settings and an attached CameraController.
// The projection is derived from the settings and the view comes from the controller.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ProjectionMatrix returns the perspective projection for the current settings.
	//
	// Returns:
	//   - common.Mat4: the projection matrix (row-vector convention, depth in [0, 1])
	ProjectionMatrix() common.Mat4

	// ViewMatrix asks the controller for this frame's view matrix.
	// Returns identity when no controller is attached.
	//
	// Returns:
	//   - common.Mat4: the view matrix
	ViewMatrix() common.Mat4

	// Position returns the controller's world position, or the origin without a controller.
	//
	// Returns:
	//   - common.Vector3: the camera position
	Position() common.Vector3

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// SetAspect sets the aspect ratio (width / height).
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the viewer's default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    DefaultFov,
		aspect: 1.0,
		near:   DefaultNear,
		far:    DefaultFar,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Projection(c.fov, c.aspect, 1, c.near, c.far)
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	ctrl := c.Controller()
	if ctrl == nil {
		return common.Identity()
	}
	return ctrl.ViewMatrix()
}

func (c *cameraImpl) Position() common.Vector3 {
	ctrl := c.Controller()
	if ctrl == nil {
		return common.Vector3{}
	}
	return ctrl.Position()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}
