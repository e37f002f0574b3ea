package loader

import (
	"errors"
	"math"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	file      *File
	materials gltfMaterialExtractor
}

// gltfMeshExtractor turns document nodes into resolved meshes: decoded positions expanded by the
// index list, flat normals, transform and material.
type gltfMeshExtractor interface {
	// ExtractNode resolves a single node by index.
	//
	// Parameters:
	//   - nodeIndex: the index of the node to resolve
	//
	// Returns:
	//   - model.ResolvedMesh: the resolved mesh
	//   - error: a StructuralError naming the offending node, mesh or accessor
	ExtractNode(nodeIndex int) (model.ResolvedMesh, error)

	// ExtractAllNodes resolves every node in document order.
	//
	// Returns:
	//   - []model.ResolvedMesh: one mesh per node, in node order
	//   - error: the first resolution error
	ExtractAllNodes() ([]model.ResolvedMesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a new mesh extractor for a parsed document.
//
// Parameters:
//   - f: the parsed document
//
// Returns:
//   - gltfMeshExtractor: the mesh extractor
func newGLTFMeshExtractor(f *File) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{
		file:      f,
		materials: newGLTFMaterialExtractor(f),
	}
}

// ResolveScene converts every node of a parsed document into a resolved mesh, in node order, and
// wraps the result in a Model. The document should have passed Validate; ResolveScene still
// reports every structural problem it meets rather than panicking.
//
// Parameters:
//   - f: the parsed document
//
// Returns:
//   - model.Model: the resolved scene
//   - error: the first StructuralError encountered
func ResolveScene(f *File) (model.Model, error) {
	meshes, err := newGLTFMeshExtractor(f).ExtractAllNodes()
	if err != nil {
		return nil, err
	}
	return model.NewModel(model.WithMeshes(meshes)), nil
}

func (e *gltfMeshExtractorImpl) ExtractAllNodes() ([]model.ResolvedMesh, error) {
	meshes := make([]model.ResolvedMesh, 0, len(e.file.Nodes))
	for i := range e.file.Nodes {
		mesh, err := e.ExtractNode(i)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

func (e *gltfMeshExtractorImpl) ExtractNode(nodeIndex int) (model.ResolvedMesh, error) {
	f := e.file
	if nodeIndex < 0 || nodeIndex >= len(f.Nodes) {
		return model.ResolvedMesh{}, newStructuralError(KindIndexOutOfRange, "node", nodeIndex,
			"outside [0, %d)", len(f.Nodes))
	}
	node := &f.Nodes[nodeIndex]

	if node.Mesh == absent {
		return model.ResolvedMesh{}, newStructuralError(KindMissingMesh, "node", nodeIndex,
			"%q has no mesh", node.Name)
	}
	if node.Mesh < 0 || node.Mesh >= len(f.Meshes) {
		return model.ResolvedMesh{}, newStructuralError(KindIndexOutOfRange, "node", nodeIndex,
			"%q mesh %d outside [0, %d)", node.Name, node.Mesh, len(f.Meshes))
	}
	mesh := &f.Meshes[node.Mesh]
	if field := mesh.missingField(); field != "" {
		return model.ResolvedMesh{}, newStructuralError(KindMissingField, "mesh", node.Mesh,
			"%q %s is required", mesh.Name, field)
	}
	if len(mesh.Primitives) != 1 {
		return model.ResolvedMesh{}, newStructuralError(KindPrimitiveCount, "mesh", node.Mesh,
			"%q has %d primitives, expected exactly 1", mesh.Name, len(mesh.Primitives))
	}
	prim := &mesh.Primitives[0]

	positions, err := e.positions(nodeIndex, mesh, prim.Attributes.Position)
	if err != nil {
		return model.ResolvedMesh{}, err
	}
	indices, err := e.indices(nodeIndex, mesh, prim.Indices)
	if err != nil {
		return model.ResolvedMesh{}, err
	}

	expanded, err := model.ExpandByIndices(positions, indices)
	if err != nil {
		return model.ResolvedMesh{}, newStructuralError(KindIndexOutOfRange, "node", nodeIndex,
			"%q: %v", node.Name, err)
	}
	normals, err := model.FlatNormals(expanded)
	if err != nil {
		return model.ResolvedMesh{}, newStructuralError(KindInvalidTopology, "node", nodeIndex,
			"%q: %v", node.Name, err)
	}

	material, err := e.materials.ExtractMaterial(prim.Material)
	if err != nil {
		return model.ResolvedMesh{}, err
	}

	children := make([]uint16, len(node.Children))
	for k, c := range node.Children {
		if c < 0 || c > math.MaxUint16 || c >= len(f.Nodes) {
			return model.ResolvedMesh{}, newStructuralError(KindIndexOutOfRange, "node", nodeIndex,
				"%q child %d outside [0, %d)", node.Name, c, min(len(f.Nodes), math.MaxUint16+1))
		}
		children[k] = uint16(c)
	}

	return model.ResolvedMesh{
		Name:            node.Name,
		Children:        children,
		Translation:     vec3(node.Translation),
		Scale:           vec3(node.Scale),
		Rotation:        common.QuaternionFromXYZW(node.Rotation),
		VertexPositions: expanded,
		VertexNormals:   normals,
		Material:        material,
	}, nil
}

// positions decodes the POSITION accessor, which must be VEC3 of F32.
func (e *gltfMeshExtractorImpl) positions(nodeIndex int, mesh *Mesh, accessorIndex int) ([]common.Vector3, error) {
	acc, err := e.accessor(nodeIndex, mesh, accessorIndex, "POSITION")
	if err != nil {
		return nil, err
	}
	if acc.Type != ElementVec3 || acc.ComponentType != ComponentF32 {
		return nil, newStructuralError(KindTypeMismatch, "accessor", accessorIndex,
			"POSITION must be VEC3/F32, got %s/%s", acc.Type, acc.ComponentType)
	}

	raw, err := e.file.ResolveAccessorBytes(accessorIndex)
	if err != nil {
		return nil, err
	}
	values, err := DecodeVec3F32(raw)
	if err != nil {
		return nil, tagAccessor(err, accessorIndex)
	}
	return values, nil
}

// indices decodes the index accessor, which must be SCALAR of U16. The normalized flag is
// ignored and the raw integers are used.
func (e *gltfMeshExtractorImpl) indices(nodeIndex int, mesh *Mesh, accessorIndex int) ([]uint16, error) {
	acc, err := e.accessor(nodeIndex, mesh, accessorIndex, "indices")
	if err != nil {
		return nil, err
	}
	if acc.Type != ElementScalar || (acc.ComponentType != ComponentU16 && acc.ComponentType != ComponentU16Normalized) {
		return nil, newStructuralError(KindTypeMismatch, "accessor", accessorIndex,
			"indices must be SCALAR/U16, got %s/%s", acc.Type, acc.ComponentType)
	}

	raw, err := e.file.ResolveAccessorBytes(accessorIndex)
	if err != nil {
		return nil, err
	}
	values, err := DecodeScalarsU16(raw)
	if err != nil {
		return nil, tagAccessor(err, accessorIndex)
	}
	return values, nil
}

// accessor looks up a required accessor reference of the primitive of mesh, drawn by node nodeIndex.
func (e *gltfMeshExtractorImpl) accessor(nodeIndex int, mesh *Mesh, accessorIndex int, semantic string) (*Accessor, error) {
	if accessorIndex == absent {
		return nil, newStructuralError(KindMissingField, "node", nodeIndex,
			"%q mesh %q %s accessor is required", e.file.Nodes[nodeIndex].Name, mesh.Name, semantic)
	}
	if accessorIndex < 0 || accessorIndex >= len(e.file.Accessors) {
		return nil, newStructuralError(KindIndexOutOfRange, "accessor", accessorIndex,
			"%s outside [0, %d)", semantic, len(e.file.Accessors))
	}
	return &e.file.Accessors[accessorIndex], nil
}

// tagAccessor attaches the accessor index to a decoder StructuralError.
func tagAccessor(err error, accessorIndex int) error {
	var se *StructuralError
	if errors.As(err, &se) {
		se.Entity, se.Index = "accessor", accessorIndex
	}
	return err
}
