package camera

import (
	"sync"

	"github.com/Carmen-Shannon/beagle-go/common"
)

// Fps is a first-person camera that accumulates absolute pitch, yaw and translation and rebuilds
// its view matrix from them on every call.
type Fps struct {
	mu sync.Mutex

	pitch, yaw  float32
	translation common.Vector3
}

var _ CameraController = &Fps{}

// NewFps creates an Fps controller at the given position with no rotation.
//
// Parameters:
//   - position: the starting world position
//
// Returns:
//   - *Fps: the new controller
func NewFps(position common.Vector3) *Fps {
	return &Fps{translation: position}
}

// ApplyMove adds the deltas to the accumulated pitch, yaw and translation.
//
// Parameters:
//   - pitch: pitch delta in radians
//   - yaw: yaw delta in radians
//   - translate: translation delta in world space
func (c *Fps) ApplyMove(pitch, yaw float32, translate common.Vector3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch += pitch
	c.yaw += yaw
	c.translation = c.translation.Add(translate)
}

// Steer forwards to ApplyMove, dropping roll.
func (c *Fps) Steer(pitch, yaw, _ float32, translate common.Vector3) {
	c.ApplyMove(pitch, yaw, translate)
}

// ViewMatrix returns Translate(-translation) · Rᵀ with R applying pitch then yaw.
//
// Returns:
//   - common.Mat4: the view matrix
func (c *Fps) ViewMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix()
}

// Position returns the accumulated translation.
//
// Returns:
//   - common.Vector3: the camera position in world space
func (c *Fps) Position() common.Vector3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.translation
}

// Forward returns the world direction the camera looks along.
//
// Returns:
//   - common.Vector3: the unit forward vector
func (c *Fps) Forward() common.Vector3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix().Column(2).Vec3()
}

// Right returns the world direction of the camera's x axis.
//
// Returns:
//   - common.Vector3: the unit right vector
func (c *Fps) Right() common.Vector3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix().Column(0).Vec3()
}

// ResetOrientation zeroes pitch and yaw. The position is kept.
func (c *Fps) ResetOrientation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch, c.yaw = 0, 0
}

// viewMatrix builds the view matrix. Caller must hold the mutex.
func (c *Fps) viewMatrix() common.Mat4 {
	orientation := common.Compose(common.AxisAngle(axisX, c.pitch), common.AxisAngle(axisY, c.yaw))
	return common.Translate(c.translation.Neg()).Mul(orientation.ToMatrix().Transposed())
}
