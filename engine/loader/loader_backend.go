package loader

import (
	"io"

	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// loaderBackend defines the generic interface for loading scenes from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a full scene import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - model.Model: the resolved model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a scene from a reader stream.
	//
	// Parameters:
	//   - name: the name given to the resolved model
	//   - r: the reader providing the document
	//
	// Returns:
	//   - model.Model: the resolved model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)
}
