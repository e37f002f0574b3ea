package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMeshes is an option builder that sets the resolved meshes of the Model.
// The slice is kept as is, so its order defines the mesh indices.
//
// Parameters:
//   - meshes: the meshes in node order
//
// Returns:
//   - ModelBuilderOption: a function that applies the meshes option to a model
func WithMeshes(meshes []ResolvedMesh) ModelBuilderOption {
	return func(m *model) {
		m.meshes = meshes
	}
}
