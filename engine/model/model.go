package model

import (
	"fmt"
)

// Model is an ordered list of resolved meshes. Mesh i corresponds to node i of the source file and
// child references are indices into the same list.
type Model interface {
	// Name returns the identifier of the model, usually the source path.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Meshes returns the resolved meshes in node order.
	//
	// Returns:
	//   - []ResolvedMesh: the backing slice, which must not be modified
	Meshes() []ResolvedMesh

	// Mesh returns a pointer to mesh i.
	//
	// Parameters:
	//   - i: the mesh index
	//
	// Returns:
	//   - *ResolvedMesh: the mesh, or nil if i is out of range
	Mesh(i int) *ResolvedMesh

	// Len returns the number of meshes.
	//
	// Returns:
	//   - int: the mesh count
	Len() int

	// Validate checks the per-mesh vertex invariants and that every child index is in range.
	//
	// Returns:
	//   - error: the first violation, or nil
	Validate() error
}

// model is the implementation of the Model interface.
type model struct {
	name   string
	meshes []ResolvedMesh
}

var _ Model = &model{}

// NewModel creates a new Model with the given options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: the configured model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Meshes() []ResolvedMesh {
	return m.meshes
}

func (m *model) Mesh(i int) *ResolvedMesh {
	if i < 0 || i >= len(m.meshes) {
		return nil
	}
	return &m.meshes[i]
}

func (m *model) Len() int {
	return len(m.meshes)
}

func (m *model) Validate() error {
	for i := range m.meshes {
		mesh := &m.meshes[i]
		if len(mesh.VertexPositions) != len(mesh.VertexNormals) {
			return fmt.Errorf("mesh %d %q: %w: %d positions, %d normals",
				i, mesh.Name, ErrLengthMismatch, len(mesh.VertexPositions), len(mesh.VertexNormals))
		}
		if len(mesh.VertexPositions)%3 != 0 {
			return fmt.Errorf("mesh %d %q: %w: got %d vertices",
				i, mesh.Name, ErrInvalidTopology, len(mesh.VertexPositions))
		}
		for _, c := range mesh.Children {
			if int(c) >= len(m.meshes) {
				return fmt.Errorf("mesh %d %q: %w: child %d, have %d meshes",
					i, mesh.Name, ErrIndexOutOfRange, c, len(m.meshes))
			}
		}
	}
	return nil
}
