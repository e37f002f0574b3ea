package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 matrix designed to be multiplied by ROW vectors (v' = v · M).
// Storage is row-major: element (x, y) lives at index x + 4*y, where x is the column and y the row.
// Projection and view helpers assume a left-handed coordinate system.
//
// Uploading the raw array to a WGSL mat4x4<f32> makes the shader see the transpose, so
// `M * v` in WGSL computes the same product as v · M here without an explicit transpose.
type Mat4 [16]float32

// Identity returns the 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate builds a translation matrix. The offset occupies the fourth row (indices 12..14).
//
// Parameters:
//   - pos: the translation offset
//
// Returns:
//   - Mat4: the translation matrix
func Translate(pos Vector3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		pos.X, pos.Y, pos.Z, 1,
	}
}

// Scale builds a diagonal scale matrix.
//
// Parameters:
//   - s: per-axis scale factors
//
// Returns:
//   - Mat4: the scale matrix
func Scale(s Vector3) Mat4 {
	return Mat4{
		s.X, 0, 0, 0,
		0, s.Y, 0, 0,
		0, 0, s.Z, 0,
		0, 0, 0, 1,
	}
}

// RotateX builds a rotation of rad radians around the X axis.
func RotateX(rad float32) Mat4 {
	s, c := math32.Sin(rad), math32.Cos(rad)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY builds a rotation of rad radians around the Y axis.
func RotateY(rad float32) Mat4 {
	s, c := math32.Sin(rad), math32.Cos(rad)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ builds a rotation of rad radians around the Z axis.
func RotateZ(rad float32) Mat4 {
	s, c := math32.Sin(rad), math32.Cos(rad)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Projection creates a left-handed perspective projection with a fixed vertical field of view.
// The horizontal field of view scales with the aspect ratio. Depth maps to [0, 1].
//
// Parameters:
//   - fov: vertical field of view in radians
//   - width: viewport width (only the ratio with height matters)
//   - height: viewport height
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - Mat4: the projection matrix
func Projection(fov, width, height, near, far float32) Mat4 {
	yScale := 1 / math32.Tan(fov*0.5)
	xScale := yScale / (width / height)
	q := far / (far - near)

	return Mat4{
		xScale, 0, 0, 0,
		0, yScale, 0, 0,
		0, 0, q, 1,
		0, 0, -q * near, 0,
	}
}

// Get returns the element at column x, row y.
func (m Mat4) Get(x, y int) float32 {
	return m[x+4*y]
}

// Row returns row y as a Vector4.
func (m Mat4) Row(y int) Vector4 {
	return Vector4{m[4*y], m[4*y+1], m[4*y+2], m[4*y+3]}
}

// Column returns column x as a Vector4.
func (m Mat4) Column(x int) Vector4 {
	return Vector4{m[x], m[x+4], m[x+8], m[x+12]}
}

// Mul returns the standard matrix product m · o.
// With row vectors, v · (m · o) applies m first and o second.
//
// Parameters:
//   - o: the right-hand matrix
//
// Returns:
//   - Mat4: the product
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for y := 0; y < 4; y++ {
		row := m.Row(y)
		for x := 0; x < 4; x++ {
			out[x+4*y] = row.Dot(o.Column(x))
		}
	}
	return out
}

// MulRow multiplies a row vector by the matrix (v · m).
//
// Parameters:
//   - v: the row vector
//
// Returns:
//   - Vector4: the transformed vector
func (m Mat4) MulRow(v Vector4) Vector4 {
	return Vector4{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8] + v.W*m[12],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9] + v.W*m[13],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10] + v.W*m[14],
		W: v.X*m[3] + v.Y*m[7] + v.Z*m[11] + v.W*m[15],
	}
}

// Transposed returns the transpose of m. The receiver is left unchanged.
func (m Mat4) Transposed() Mat4 {
	return Mat4(m.ColumnMajor())
}

// ColumnMajor returns the elements of m laid out column by column.
func (m Mat4) ColumnMajor() [16]float32 {
	return [16]float32{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}
