package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/beagle-go/common"
)

// DrawConstantsSize is the byte size of the per-draw uniform block.
const DrawConstantsSize = 192

// DrawConstantsSource is the canonical WGSL definition of the DrawConstants struct.
// Matches DrawConstants layout exactly (192 bytes).
//
//go:embed assets/draw_constants.wgsl
var DrawConstantsSource string

// DrawConstants is the GPU-aligned per-draw uniform block.
// Matrices are stored row-major for the row-vector convention; a WGSL mat4x4 reading the same
// bytes computes M * v, which equals v * M here.
// Size: 192 bytes (std140 aligned, no padding required).
type DrawConstants struct {
	WorldViewProjection common.Mat4    // offset   0: object to clip space (64 bytes)
	Model               common.Mat4    // offset  64: object to world space (64 bytes)
	CameraPosition      common.Vector4 // offset 128: camera world position, w = 1 (16 bytes)
	Diffuse             common.Vector4 // offset 144: diffuse colour, w unused (16 bytes)
	Ambient             common.Vector4 // offset 160: ambient colour, w unused (16 bytes)
	Specular            common.Vector4 // offset 176: specular colour, w = shininess (16 bytes)
}

// NewDrawConstants assembles the uniform block for one draw.
//
// Parameters:
//   - wvp: the world-view-projection matrix
//   - world: the world matrix
//   - cameraPos: the camera position in world space
//   - mat: the mesh material
//
// Returns:
//   - DrawConstants: the populated block
func NewDrawConstants(wvp, world common.Mat4, cameraPos common.Vector3, mat Material) DrawConstants {
	return DrawConstants{
		WorldViewProjection: wvp,
		Model:               world,
		CameraPosition:      cameraPos.Vec4(1),
		Diffuse:             mat.Diffuse.Vec4(1),
		Ambient:             mat.Ambient.Vec4(1),
		Specular:            mat.Specular.Vec4(mat.Shininess),
	}
}

// Size returns the size of the DrawConstants struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (d *DrawConstants) Size() int {
	return int(unsafe.Sizeof(*d))
}

// Marshal serializes the DrawConstants struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 192-byte buffer ready for GPU upload.
func (d *DrawConstants) Marshal() []byte {
	buf := make([]byte, DrawConstantsSize)
	off := 0
	put := func(f float32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(f))
		off += 4
	}
	for _, f := range d.WorldViewProjection {
		put(f)
	}
	for _, f := range d.Model {
		put(f)
	}
	for _, v := range []common.Vector4{d.CameraPosition, d.Diffuse, d.Ambient, d.Specular} {
		put(v.X)
		put(v.Y)
		put(v.Z)
		put(v.W)
	}
	return buf
}
