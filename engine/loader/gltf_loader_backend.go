package loader

import (
	"io"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

// gltfLoaderBackend is a loaderBackend implementation for glTF JSON scene files.
// It delegates to the gltfImporter for parsing and resolution.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Parameters:
//   - pool: the worker pool handed to the importer for buffer decoding
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF files
func newGLTFLoaderBackend(pool worker.DynamicWorkerPool) gltfLoaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(pool),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) (model.Model, error) {
	return b.importer.Import(path)
}

func (b *gltfLoaderBackendImpl) LoadReader(name string, r io.Reader) (model.Model, error) {
	return b.importer.ImportReader(name, r)
}
