package common

import "github.com/chewxy/math32"

// Vector3 is a three component float32 vector. Its layout (12 bytes, no padding) matches
// a tightly packed vertex attribute, so slices of it can be uploaded as-is.
type Vector3 struct {
	X, Y, Z float32
}

// Vec3 is shorthand for constructing a Vector3.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Mul scales v by s.
func (v Vector3) Mul(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vector3) Neg() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. A zero vector is returned unchanged,
// since degenerate triangles produce zero-length cross products.
func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Vec4 extends v with the given w component.
func (v Vector3) Vec4(w float32) Vector4 {
	return Vector4{v.X, v.Y, v.Z, w}
}

// Vector4 is a four component float32 vector, used for homogeneous points and as the
// 16-byte aligned slot type in uniform blocks.
type Vector4 struct {
	X, Y, Z, W float32
}

// Dot returns the dot product of v and o.
func (v Vector4) Dot(o Vector4) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W
}

// Magnitude returns the Euclidean length of v.
func (v Vector4) Magnitude() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. A zero vector is returned unchanged.
func (v Vector4) Normalize() Vector4 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return Vector4{v.X / m, v.Y / m, v.Z / m, v.W / m}
}

// Vec3 drops the w component.
func (v Vector4) Vec3() Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

// Array returns the components as an array in x, y, z, w order.
func (v Vector4) Array() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, v.W}
}
