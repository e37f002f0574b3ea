package loader

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct {
	pool worker.DynamicWorkerPool
}

// gltfImporter runs the full import pipeline for one document: parse, validate, decode every
// buffer up front and resolve the node hierarchy into a Model.
type gltfImporter interface {
	// Import loads a scene file from disk.
	//
	// Parameters:
	//   - path: the file path to the scene document
	//
	// Returns:
	//   - model.Model: the resolved model, named after path
	//   - error: error if any stage fails
	Import(path string) (model.Model, error)

	// ImportReader loads a scene document from a reader.
	//
	// Parameters:
	//   - name: the name given to the resolved model
	//   - r: the reader providing the document text
	//
	// Returns:
	//   - model.Model: the resolved model
	//   - error: error if any stage fails
	ImportReader(name string, r io.Reader) (model.Model, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new importer.
//
// Parameters:
//   - pool: the worker pool used for eager buffer decoding, or nil to decode lazily
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter(pool worker.DynamicWorkerPool) gltfImporter {
	return &gltfImporterImpl{pool: pool}
}

func (imp *gltfImporterImpl) Import(path string) (model.Model, error) {
	f, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return imp.resolve(path, f)
}

func (imp *gltfImporterImpl) ImportReader(name string, r io.Reader) (model.Model, error) {
	f, err := ParseReader(r)
	if err != nil {
		return nil, err
	}
	return imp.resolve(name, f)
}

// resolve validates a parsed document and turns it into a named Model.
func (imp *gltfImporterImpl) resolve(name string, f *File) (model.Model, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if imp.pool != nil {
		if err := f.PrecomputeBuffers(imp.pool); err != nil {
			return nil, err
		}
	}

	meshes, err := newGLTFMeshExtractor(f).ExtractAllNodes()
	if err != nil {
		return nil, err
	}

	m := model.NewModel(
		model.WithName(name),
		model.WithMeshes(meshes),
	)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("resolved model %q: %w", name, err)
	}
	return m, nil
}
