package camera

import (
	"sync"

	"github.com/Carmen-Shannon/beagle-go/common"
)

// FreeFlight is a six degrees of freedom camera. Each frame's deltas are applied on top of the
// accumulated view matrix, so movement is always relative to the current view.
type FreeFlight struct {
	mu sync.Mutex

	pitch, yaw, roll float32
	delta            common.Vector3

	current      common.Mat4
	currentTrans common.Mat4
}

var _ CameraController = &FreeFlight{}

// NewFreeFlight creates a FreeFlight controller at the origin looking down +z.
//
// Returns:
//   - *FreeFlight: the new controller
func NewFreeFlight() *FreeFlight {
	return &FreeFlight{
		current:      common.Identity(),
		currentTrans: common.Identity(),
	}
}

// ApplyMove replaces the per-frame deltas. They are consumed by the next ViewMatrix call.
//
// Parameters:
//   - pitch: rotation around the view x axis in radians
//   - yaw: rotation around the view y axis in radians
//   - roll: rotation around the view z axis in radians
//   - translate: movement in view space
func (f *FreeFlight) ApplyMove(pitch, yaw, roll float32, translate common.Vector3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pitch, f.yaw, f.roll = pitch, yaw, roll
	f.delta = translate
}

// Steer forwards to ApplyMove.
func (f *FreeFlight) Steer(pitch, yaw, roll float32, translate common.Vector3) {
	f.ApplyMove(pitch, yaw, roll, translate)
}

// ViewMatrix folds the stored deltas into the accumulated view and returns a copy of it.
// The frame rotation applies yaw, then pitch, then roll.
//
// Returns:
//   - common.Mat4: the accumulated view matrix
func (f *FreeFlight) ViewMatrix() common.Mat4 {
	f.mu.Lock()
	defer f.mu.Unlock()

	orientation := common.Compose(
		common.Compose(common.AxisAngle(axisY, f.yaw), common.AxisAngle(axisX, f.pitch)),
		common.AxisAngle(axisZ, f.roll),
	)
	rotation := orientation.ToMatrix().Transposed()
	translation := common.Translate(f.delta.Neg())

	f.current = f.current.Mul(translation.Mul(rotation))
	f.currentTrans = f.currentTrans.Mul(translation)
	return f.current
}

// Position recovers the world position from the accumulated view. For V = [R 0; t 1] the camera
// sits at -(t · Rᵀ).
//
// Returns:
//   - common.Vector3: the camera position in world space
func (f *FreeFlight) Position() common.Vector3 {
	f.mu.Lock()
	defer f.mu.Unlock()

	m := f.current
	t := common.Vec3(m.Get(0, 3), m.Get(1, 3), m.Get(2, 3))
	return common.Vec3(
		t.Dot(common.Vec3(m.Get(0, 0), m.Get(1, 0), m.Get(2, 0))),
		t.Dot(common.Vec3(m.Get(0, 1), m.Get(1, 1), m.Get(2, 1))),
		t.Dot(common.Vec3(m.Get(0, 2), m.Get(1, 2), m.Get(2, 2))),
	).Neg()
}

// Translation returns the accumulated translation-only matrix.
//
// Returns:
//   - common.Mat4: the product of every frame's translation
func (f *FreeFlight) Translation() common.Mat4 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentTrans
}

// ResetOrientation discards the accumulated view and returns the camera to the origin.
func (f *FreeFlight) ResetOrientation() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = common.Identity()
}
