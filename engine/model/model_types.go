package model

import "github.com/Carmen-Shannon/beagle-go/common"

// ResolvedMesh is one scene node after geometry resolution. Vertex positions are already expanded
// by the index list so every consecutive three positions form a triangle, and VertexNormals holds
// the matching flat normal for each position.
type ResolvedMesh struct {
	// Name is the node name from the scene file.
	Name string

	// Children are the indices of child meshes in the owning Model.
	Children []uint16

	// Translation is the local translation of the node.
	Translation common.Vector3

	// Scale is the local per-axis scale of the node.
	Scale common.Vector3

	// Rotation is the local rotation of the node in scalar-first form.
	Rotation common.Quaternion

	// VertexPositions are the triangle corners in model space.
	VertexPositions []common.Vector3

	// VertexNormals are the per-corner flat normals.
	VertexNormals []common.Vector3

	// Material holds the Phong colours used to shade the mesh.
	Material Material
}

// VertexCount returns the number of expanded vertices.
func (m *ResolvedMesh) VertexCount() int {
	return len(m.VertexPositions)
}

// Material is the resolved Phong shading description of a mesh.
// The zero value is a black material and is used for meshes without a material reference.
type Material struct {
	Diffuse   common.Vector3
	Ambient   common.Vector3
	Specular  common.Vector3
	Shininess float32
}
