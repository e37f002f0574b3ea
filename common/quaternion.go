package common

import "github.com/chewxy/math32"

// Quaternion is a rotation quaternion stored scalar-first: W is the real part, V the vector part.
// Interchange files store quaternions as x, y, z, w; use QuaternionFromXYZW to convert.
type Quaternion struct {
	W float32
	V Vector3
}

// IdentityQuaternion returns the quaternion that represents no rotation.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromXYZW builds a Quaternion from components in x, y, z, w order.
//
// Parameters:
//   - xyzw: the four components with the scalar part last
//
// Returns:
//   - Quaternion: the scalar-first quaternion
func QuaternionFromXYZW(xyzw [4]float32) Quaternion {
	return Quaternion{W: xyzw[3], V: Vector3{xyzw[0], xyzw[1], xyzw[2]}}
}

// AxisAngle builds the quaternion for a rotation of angle radians around axis.
// The axis is expected to be unit length.
//
// Parameters:
//   - axis: the rotation axis
//   - angle: the rotation angle in radians
//
// Returns:
//   - Quaternion: w = cos(angle/2), v = sin(angle/2) * axis
func AxisAngle(axis Vector3, angle float32) Quaternion {
	half := angle / 2
	return Quaternion{W: math32.Cos(half), V: axis.Mul(math32.Sin(half))}
}

// XYZW returns the components in x, y, z, w order.
func (q Quaternion) XYZW() [4]float32 {
	return [4]float32{q.V.X, q.V.Y, q.V.Z, q.W}
}

// Hamilton returns the Hamilton product a ⊗ b.
//
// Parameters:
//   - a: the left operand
//   - b: the right operand
//
// Returns:
//   - Quaternion: (a.W*b.W - a.V·b.V, a.W*b.V + b.W*a.V + a.V×b.V)
func Hamilton(a, b Quaternion) Quaternion {
	return Quaternion{
		W: a.W*b.W - a.V.Dot(b.V),
		V: b.V.Mul(a.W).Add(a.V.Mul(b.W)).Add(a.V.Cross(b.V)),
	}
}

// Compose returns a single rotation equivalent to applying first and then second.
// The argument order is the application order; callers never need to mirror it.
//
// Parameters:
//   - first: the rotation applied first
//   - second: the rotation applied after first
//
// Returns:
//   - Quaternion: second ⊗ first
func Compose(first, second Quaternion) Quaternion {
	return Hamilton(second, first)
}

// ToMatrix converts the quaternion into a rotation matrix for row vectors.
// The quaternion is normalized first, so non-unit input still yields a pure rotation.
//
// Returns:
//   - Mat4: the rotation matrix (v · M rotates v by q)
func (q Quaternion) ToMatrix() Mat4 {
	n := Vector4{q.V.X, q.V.Y, q.V.Z, q.W}.Normalize()
	x, y, z, w := n.X, n.Y, n.Z, n.W

	return Mat4{
		1 - 2*y*y - 2*z*z, 2*x*y + 2*z*w, 2*x*z - 2*y*w, 0,
		2*x*y - 2*z*w, 1 - 2*x*x - 2*z*z, 2*y*z + 2*x*w, 0,
		2*x*z + 2*y*w, 2*y*z - 2*x*w, 1 - 2*x*x - 2*y*y, 0,
		0, 0, 0, 1,
	}
}
