package loader

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// LoaderBackendType identifies the scene file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF JSON loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

const (
	decodeQueueSize   = 256
	decodeIdleTimeout = 1 * time.Second
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]model.Model

	decodeWorkers int
	pool          worker.DynamicWorkerPool

	backend loaderBackend
}

// Loader defines the public-facing interface for loading and caching scenes.
// It abstracts the file format behind a generic backend and manages a cache of previously
// resolved models. File-backed entries are keyed by absolute path.
type Loader interface {
	// Load imports a scene file and caches the result.
	// If the scene is already cached, the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the scene file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a scene from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key for the loaded model
	//   - r: the reader providing the document
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// Reload imports a scene file again, bypassing the cache. The cache entry is replaced only
	// when the import succeeds, so a failed reload leaves the previous model in place.
	//
	// Parameters:
	//   - path: the file path to the scene file
	//
	// Returns:
	//   - model.Model: the freshly loaded model
	//   - error: error if loading fails
	Reload(path string) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Invalidate removes a cached model so the next Load imports it again.
	//
	// Parameters:
	//   - name: the cache key to drop
	Invalidate(name string)

	// Models returns a snapshot of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
// Without WithPool a decode pool sized to the CPU count is created.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:            sync.RWMutex{},
		modelCache:    make(map[string]model.Model),
		decodeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(l)
	}

	if l.pool == nil {
		l.pool = worker.NewDynamicWorkerPool(l.decodeWorkers, decodeQueueSize, decodeIdleTimeout)
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend(l.pool)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, err
	}

	l.mu.RLock()
	if cached, ok := l.modelCache[key]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	return l.load(key)
}

func (l *loader) Reload(path string) (model.Model, error) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, err
	}
	return l.load(key)
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	m, err := l.backend.LoadReader(name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.modelCache[name] = m
	l.mu.Unlock()

	return m, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Invalidate(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.modelCache, name)
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// load imports the file at the absolute path key and stores the result in the cache.
func (l *loader) load(key string) (model.Model, error) {
	backend, err := l.resolveBackend(key)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	m, err := backend.Load(key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	log.Printf("[Loader] loaded %s: %d meshes in %v", key, m.Len(), time.Since(start))

	l.mu.Lock()
	l.modelCache[key] = m
	l.mu.Unlock()

	return m, nil
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF JSON is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedFormat, ext)
	}
}

// cacheKey returns the absolute form of path used as the cache key.
func cacheKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}
	return abs, nil
}
