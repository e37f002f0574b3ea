package engine

import "github.com/Carmen-Shannon/beagle-go/common"

// Default input mapping values, tuned for scenes a few units across.
const (
	DefaultMouseSensitivity float32 = 0.005
	DefaultMoveSpeed        float32 = 0.02
	DefaultRollSpeed        float32 = 0.05
)

// KeyState reports which keys are held. window.Window satisfies it.
type KeyState interface {
	IsKeyDown(key common.KeyCode) bool
}

// Steering is one frame of camera input.
type Steering struct {
	Pitch     float32
	Yaw       float32
	Roll      float32
	Translate common.Vector3
}

// InputMapping turns held keys and mouse movement into camera steering.
type InputMapping struct {
	MouseSensitivity float32
	MoveSpeed        float32
	RollSpeed        float32
}

// DefaultInputMapping returns the mapping with the package defaults.
//
// Returns:
//   - InputMapping: the default mapping
func DefaultInputMapping() InputMapping {
	return InputMapping{
		MouseSensitivity: DefaultMouseSensitivity,
		MoveSpeed:        DefaultMoveSpeed,
		RollSpeed:        DefaultRollSpeed,
	}
}

// Map computes the steering for one frame.
// When both keys of a pair are held the second one listed wins: E over Q, A over D, S over W and
// LeftShift over Space.
//
// Parameters:
//   - keys: the held keys
//   - dx: horizontal mouse movement in pixels
//   - dy: vertical mouse movement in pixels, positive downward
//
// Returns:
//   - Steering: pitch, yaw and roll in radians plus a view-space translation
func (m InputMapping) Map(keys KeyState, dx, dy float32) Steering {
	var s Steering

	if keys.IsKeyDown(common.KeyQ) {
		s.Roll = m.RollSpeed
	}
	if keys.IsKeyDown(common.KeyE) {
		s.Roll = -m.RollSpeed
	}

	if keys.IsKeyDown(common.KeyD) {
		s.Translate.X = m.MoveSpeed
	}
	if keys.IsKeyDown(common.KeyA) {
		s.Translate.X = -m.MoveSpeed
	}
	if keys.IsKeyDown(common.KeyW) {
		s.Translate.Z = m.MoveSpeed
	}
	if keys.IsKeyDown(common.KeyS) {
		s.Translate.Z = -m.MoveSpeed
	}
	if keys.IsKeyDown(common.KeySpace) {
		s.Translate.Y = -m.MoveSpeed
	}
	if keys.IsKeyDown(common.KeyLeftShift) {
		s.Translate.Y = m.MoveSpeed
	}

	s.Pitch = -dy * m.MouseSensitivity
	s.Yaw = dx * m.MouseSensitivity
	return s
}
