package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Parse deserializes document text into a File. Unknown fields are ignored and absent optional
// fields take their defaults. Structural checks are left to Validate.
//
// Parameters:
//   - text: the UTF-8 JSON document
//
// Returns:
//   - *File: the parsed document
//   - error: a *ParseError if the text is not a well-typed document
func Parse(text []byte) (*File, error) {
	f := &File{}
	if err := json.NewDecoder(bytes.NewReader(text)).Decode(f); err != nil {
		return nil, &ParseError{Err: err}
	}
	return f, nil
}

// ParseReader reads the whole stream and parses it.
//
// Parameters:
//   - r: reader providing the document text
//
// Returns:
//   - *File: the parsed document
//   - error: error if reading or parsing fails
func ParseReader(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return Parse(data)
}

// ParseFile reads and parses the document at path.
//
// Parameters:
//   - path: the file path of the document
//
// Returns:
//   - *File: the parsed document
//   - error: error if reading or parsing fails
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Validate checks required fields, every cross-reference index, accessor enum and buffer view
// range, and that each accessor fits inside its buffer view. Buffer contents are not decoded here.
//
// Returns:
//   - error: the first *StructuralError found, or nil
func (f *File) Validate() error {
	for i, n := range f.Nodes {
		for _, c := range n.Children {
			if c < 0 || c >= len(f.Nodes) {
				return newStructuralError(KindIndexOutOfRange, "node", i,
					"%q child %d outside [0, %d)", n.Name, c, len(f.Nodes))
			}
		}
		if n.Mesh != absent && (n.Mesh < 0 || n.Mesh >= len(f.Meshes)) {
			return newStructuralError(KindIndexOutOfRange, "node", i,
				"%q mesh %d outside [0, %d)", n.Name, n.Mesh, len(f.Meshes))
		}
	}

	for i, m := range f.Meshes {
		if field := m.missingField(); field != "" {
			return newStructuralError(KindMissingField, "mesh", i, "%q %s is required", m.Name, field)
		}
		for _, p := range m.Primitives {
			refs := []struct {
				name  string
				index int
			}{
				{"POSITION", p.Attributes.Position},
				{"NORMAL", p.Attributes.Normal},
				{"COLOR_0", p.Attributes.Color0},
				{"TEXCOORD_0", p.Attributes.Texcoord0},
				{"indices", p.Indices},
			}
			for _, ref := range refs {
				if ref.index != absent && (ref.index < 0 || ref.index >= len(f.Accessors)) {
					return newStructuralError(KindIndexOutOfRange, "mesh", i,
						"%q %s accessor %d outside [0, %d)", m.Name, ref.name, ref.index, len(f.Accessors))
				}
			}
			if p.Material != absent && (p.Material < 0 || p.Material >= len(f.Materials)) {
				return newStructuralError(KindIndexOutOfRange, "mesh", i,
					"%q material %d outside [0, %d)", m.Name, p.Material, len(f.Materials))
			}
		}
	}

	for i, b := range f.Buffers {
		if field := b.missingField(); field != "" {
			return newStructuralError(KindMissingField, "buffer", i, "%s is required", field)
		}
	}

	for i, v := range f.BufferViews {
		if field := v.missingField(); field != "" {
			return newStructuralError(KindMissingField, "bufferView", i, "%s is required", field)
		}
		if v.Buffer < 0 || v.Buffer >= len(f.Buffers) {
			return newStructuralError(KindIndexOutOfRange, "bufferView", i,
				"buffer %d outside [0, %d)", v.Buffer, len(f.Buffers))
		}
		if v.ByteOffset < 0 || v.ByteLength < 0 {
			return newStructuralError(KindRangeOutOfBounds, "bufferView", i,
				"negative range offset=%d length=%d", v.ByteOffset, v.ByteLength)
		}
		if limit := f.Buffers[v.Buffer].ByteLength; v.ByteOffset+v.ByteLength > limit {
			return newStructuralError(KindRangeOutOfBounds, "bufferView", i,
				"range [%d, %d) exceeds buffer %d byteLength %d",
				v.ByteOffset, v.ByteOffset+v.ByteLength, v.Buffer, limit)
		}
	}

	for i, a := range f.Accessors {
		if field := a.missingField(); field != "" {
			return newStructuralError(KindMissingField, "accessor", i, "%s is required", field)
		}
		if a.BufferView < 0 || a.BufferView >= len(f.BufferViews) {
			return newStructuralError(KindIndexOutOfRange, "accessor", i,
				"bufferView %d outside [0, %d)", a.BufferView, len(f.BufferViews))
		}
		if a.ComponentType == ComponentUnknown {
			return newStructuralError(KindTypeMismatch, "accessor", i,
				"unsupported componentType %d", a.ComponentCode)
		}
		if !a.Type.valid() {
			return newStructuralError(KindTypeMismatch, "accessor", i,
				"unsupported type %q", a.Type)
		}
		if err := checkAccessorFits(i, a, f.BufferViews[a.BufferView]); err != nil {
			return err
		}
	}

	return nil
}

// checkAccessorFits reports a negative count, or a view too short for count elements.
func checkAccessorFits(accessorIndex int, a Accessor, view BufferView) error {
	if a.Count < 0 {
		return newStructuralError(KindRangeOutOfBounds, "accessor", accessorIndex,
			"negative count %d", a.Count)
	}
	if need := a.byteSize(); need > view.ByteLength {
		return newStructuralError(KindRangeOutOfBounds, "accessor", accessorIndex,
			"%d %s/%s elements need %d bytes, bufferView %d has %d",
			a.Count, a.Type, a.ComponentType, need, a.BufferView, view.ByteLength)
	}
	return nil
}

// BufferBytes returns the decoded bytes of buffer i. The first call decodes the data URI and
// caches the result; later calls return the same bytes. Safe for concurrent use.
//
// Parameters:
//   - i: the buffer index
//
// Returns:
//   - []byte: the decoded bytes (shared, must not be modified)
//   - error: a *StructuralError if the index is invalid, byteLength is missing or the URI cannot be decoded
func (f *File) BufferBytes(i int) ([]byte, error) {
	if i < 0 || i >= len(f.Buffers) {
		return nil, newStructuralError(KindIndexOutOfRange, "buffer", i,
			"outside [0, %d)", len(f.Buffers))
	}
	if field := f.Buffers[i].missingField(); field != "" {
		return nil, newStructuralError(KindMissingField, "buffer", i, "%s is required", field)
	}
	cache := f.buffers()

	cache.mu.RLock()
	if data, ok := cache.decoded[i]; ok {
		cache.mu.RUnlock()
		return data, nil
	}
	cache.mu.RUnlock()

	cache.mu.Lock()
	defer cache.mu.Unlock()

	// another caller may have filled the slot between the two locks
	if data, ok := cache.decoded[i]; ok {
		return data, nil
	}

	data, err := DecodeDataURI(f.Buffers[i].URI)
	if err != nil {
		if se, ok := err.(*StructuralError); ok {
			se.Entity, se.Index = "buffer", i
		}
		return nil, err
	}
	cache.decoded[i] = data
	return data, nil
}

// ResolveAccessorBytes follows accessor -> buffer view -> buffer and returns the view's byte range
// of the decoded buffer. The view must hold at least Count elements of the accessor's type.
//
// Parameters:
//   - accessorIndex: the accessor to resolve
//
// Returns:
//   - []byte: the bytes [byteOffset, byteOffset+byteLength) of the decoded buffer
//   - error: KindMissingField for an absent required field, KindIndexOutOfRange for an invalid
//     index, KindRangeOutOfBounds if the view is too short or the range exceeds the data
func (f *File) ResolveAccessorBytes(accessorIndex int) ([]byte, error) {
	if accessorIndex < 0 || accessorIndex >= len(f.Accessors) {
		return nil, newStructuralError(KindIndexOutOfRange, "accessor", accessorIndex,
			"outside [0, %d)", len(f.Accessors))
	}
	acc := f.Accessors[accessorIndex]
	if field := acc.missingField(); field != "" {
		return nil, newStructuralError(KindMissingField, "accessor", accessorIndex, "%s is required", field)
	}

	if acc.BufferView < 0 || acc.BufferView >= len(f.BufferViews) {
		return nil, newStructuralError(KindIndexOutOfRange, "accessor", accessorIndex,
			"bufferView %d outside [0, %d)", acc.BufferView, len(f.BufferViews))
	}
	view := f.BufferViews[acc.BufferView]
	if field := view.missingField(); field != "" {
		return nil, newStructuralError(KindMissingField, "bufferView", acc.BufferView, "%s is required", field)
	}
	if err := checkAccessorFits(accessorIndex, acc, view); err != nil {
		return nil, err
	}

	data, err := f.BufferBytes(view.Buffer)
	if err != nil {
		return nil, fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}

	end := view.ByteOffset + view.ByteLength
	if view.ByteOffset < 0 || view.ByteLength < 0 || end > len(data) {
		return nil, newStructuralError(KindRangeOutOfBounds, "bufferView", acc.BufferView,
			"range [%d, %d) exceeds decoded length %d of buffer %d",
			view.ByteOffset, end, len(data), view.Buffer)
	}
	return data[view.ByteOffset:end], nil
}

// PrecomputeBuffers decodes every buffer up front by fanning the work out over pool.
// After it returns nil every BufferBytes call is a cache hit.
//
// Parameters:
//   - pool: the worker pool that runs one decode task per buffer
//
// Returns:
//   - error: the first decode error, if any
func (f *File) PrecomputeBuffers(pool worker.DynamicWorkerPool) error {
	if len(f.Buffers) == 0 {
		return nil
	}

	errs := make([]error, len(f.Buffers))
	var wg sync.WaitGroup
	for i := range f.Buffers {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				_, err := f.BufferBytes(idx)
				errs[idx] = err
				return nil, err
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
