package camera

import "github.com/Carmen-Shannon/beagle-go/common"

// CameraController owns the positional state of a camera and produces its view matrix.
// Both FreeFlight and Fps satisfy it.
type CameraController interface {
	// ViewMatrix returns the world-to-view matrix for the current frame.
	// FreeFlight advances its accumulated state on every call, so call it once per frame.
	//
	// Returns:
	//   - common.Mat4: the view matrix (row-vector convention)
	ViewMatrix() common.Mat4

	// Position returns the camera position in world space.
	//
	// Returns:
	//   - common.Vector3: the world-space camera position
	Position() common.Vector3

	// Steer feeds one frame of input into the controller. Controllers without roll ignore it.
	//
	// Parameters:
	//   - pitch: rotation around the x axis in radians
	//   - yaw: rotation around the y axis in radians
	//   - roll: rotation around the z axis in radians
	//   - translate: movement in view space
	Steer(pitch, yaw, roll float32, translate common.Vector3)

	// ResetOrientation returns the controller to its initial orientation.
	ResetOrientation()
}

var (
	axisX = common.Vec3(1, 0, 0)
	axisY = common.Vec3(0, 1, 0)
	axisZ = common.Vec3(0, 0, 1)
)
