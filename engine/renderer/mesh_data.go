package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
	"github.com/Carmen-Shannon/beagle-go/engine/scene"
)

const (
	// shadedVertexStride is the byte stride of one position+normal vertex.
	shadedVertexStride = 24

	// lineVertexStride is the byte stride of one debug line endpoint.
	lineVertexStride = 12

	// defaultUniformAlignment is used when the device does not report minUniformBufferOffsetAlignment.
	defaultUniformAlignment = 256
)

// shadedVertex is the interleaved vertex layout read by the flat shaded pipeline.
type shadedVertex struct {
	Position common.Vector3 // location 0
	Normal   common.Vector3 // location 1
}

// meshData is the CPU-side vertex payload of one resolved mesh, ready for upload.
type meshData struct {
	label       string
	vertices    []byte
	vertexCount int
	lines       []byte
	lineCount   int
}

// interleaveVertices packs positions and normals into the shaded vertex layout.
//
// Parameters:
//   - positions: the expanded triangle-list positions
//   - normals: one normal per position
//
// Returns:
//   - []byte: len(positions)*shadedVertexStride bytes
//   - error: model.ErrLengthMismatch if the lists differ in length
func interleaveVertices(positions, normals []common.Vector3) ([]byte, error) {
	if len(positions) != len(normals) {
		return nil, fmt.Errorf("%w: %d positions, %d normals", model.ErrLengthMismatch, len(positions), len(normals))
	}

	vertices := make([]shadedVertex, len(positions))
	for i := range positions {
		vertices[i] = shadedVertex{Position: positions[i], Normal: normals[i]}
	}
	return common.SliceToBytes(vertices), nil
}

// buildMeshData prepares the upload payload of every mesh in m. Normal lines are only built when
// normalLength is positive.
//
// Parameters:
//   - m: the model to prepare
//   - normalLength: the drawn length of debug normals
//
// Returns:
//   - []meshData: one entry per mesh, in model order
//   - error: error if a mesh has mismatched per-vertex lists
func buildMeshData(m model.Model, normalLength float32) ([]meshData, error) {
	meshes := m.Meshes()
	out := make([]meshData, len(meshes))
	for i := range meshes {
		mesh := &meshes[i]

		vertices, err := interleaveVertices(mesh.VertexPositions, mesh.VertexNormals)
		if err != nil {
			return nil, fmt.Errorf("mesh %d %q: %w", i, mesh.Name, err)
		}
		data := meshData{
			label:       fmt.Sprintf("mesh %d %s", i, mesh.Name),
			vertices:    vertices,
			vertexCount: mesh.VertexCount(),
		}

		if normalLength > 0 {
			lines, err := model.DebugNormalLines(mesh.VertexPositions, mesh.VertexNormals, normalLength)
			if err != nil {
				return nil, fmt.Errorf("mesh %d %q: %w", i, mesh.Name, err)
			}
			data.lines = common.SliceToBytes(lines)
			data.lineCount = len(lines)
		}
		out[i] = data
	}
	return out, nil
}

// countDraws returns how many draw calls one traversal of m emits. A mesh reachable from two
// parents is drawn twice, so this can exceed the mesh count.
//
// Parameters:
//   - m: the model to count
//
// Returns:
//   - int: the number of draws per frame
//   - error: the traversal error if the graph is cyclic or malformed
func countDraws(m model.Model) (int, error) {
	count := 0
	err := scene.Traverse(m, common.Identity(), common.Identity(), common.Vector3{},
		scene.DrawSinkFunc(func(scene.DrawCall) error {
			count++
			return nil
		}))
	if err != nil {
		return 0, err
	}
	return count, nil
}

// alignUp rounds size up to the next multiple of alignment.
func alignUp(size, alignment uint64) uint64 {
	if alignment == 0 {
		return size
	}
	return (size + alignment - 1) / alignment * alignment
}
