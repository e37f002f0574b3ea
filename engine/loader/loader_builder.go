package loader

import (
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithDecodeWorkers is an option builder that sets the number of goroutines used to decode
// buffers at load time. Ignored when WithPool is also given.
//
// Parameters:
//   - n: the worker count, values below 1 are clamped to 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count option to a loader
func WithDecodeWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.decodeWorkers = max(n, 1)
	}
}

// WithPool is an option builder that supplies an existing worker pool for buffer decoding.
//
// Parameters:
//   - pool: the worker pool to share
//
// Returns:
//   - LoaderBuilderOption: a function that applies the pool option to a loader
func WithPool(pool worker.DynamicWorkerPool) LoaderBuilderOption {
	return func(l *loader) {
		l.pool = pool
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}
