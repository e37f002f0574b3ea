// gltf_types.go contains the data structures of the scene interchange document.
// The layout follows glTF 2.0 (nodes, meshes, accessors, buffer views, buffers) restricted to the
// subset this engine renders, plus a per-material "extras" block carrying Phong shading parameters.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package loader

import (
	"encoding/json"
	"sync"
)

// absent is the sentinel for an index or count that the document did not provide.
const absent = -1

// ComponentType constants as they appear in the document.
const (
	gltfComponentTypeUnsignedShort = 5123
	gltfComponentTypeFloat         = 5126
)

// ComponentType is the numeric type of each accessor component.
type ComponentType int

const (
	// ComponentUnknown is any component code the engine does not decode.
	ComponentUnknown ComponentType = iota
	// ComponentU16 is an unsigned 16-bit integer (code 5123).
	ComponentU16
	// ComponentU16Normalized is an unsigned 16-bit integer mapped to [0, 1] (code 5123, normalized).
	ComponentU16Normalized
	// ComponentF32 is a 32-bit float (code 5126).
	ComponentF32
)

func (c ComponentType) String() string {
	switch c {
	case ComponentU16:
		return "U16"
	case ComponentU16Normalized:
		return "U16_NORMALIZED"
	case ComponentF32:
		return "F32"
	default:
		return "UNKNOWN"
	}
}

// componentTypeFromCode maps a document component code plus the normalized flag to a ComponentType.
func componentTypeFromCode(code int, normalized bool) ComponentType {
	switch {
	case code == gltfComponentTypeUnsignedShort && normalized:
		return ComponentU16Normalized
	case code == gltfComponentTypeUnsignedShort:
		return ComponentU16
	case code == gltfComponentTypeFloat:
		return ComponentF32
	default:
		return ComponentUnknown
	}
}

// ElementType is the shape of each accessor element.
type ElementType string

// AccessorType constants
const (
	ElementScalar ElementType = "SCALAR"
	ElementVec3   ElementType = "VEC3"
	ElementVec4   ElementType = "VEC4"
)

// valid reports whether the element type is one the engine decodes.
func (e ElementType) valid() bool {
	return e == ElementScalar || e == ElementVec3 || e == ElementVec4
}

// components returns the number of components per element, or 0 for an unsupported type.
func (e ElementType) components() int {
	switch e {
	case ElementScalar:
		return 1
	case ElementVec3:
		return 3
	case ElementVec4:
		return 4
	default:
		return 0
	}
}

// size returns the byte size of one component, or 0 for ComponentUnknown.
func (c ComponentType) size() int {
	switch c {
	case ComponentU16, ComponentU16Normalized:
		return 2
	case ComponentF32:
		return 4
	default:
		return 0
	}
}

// --- Root Structure ---

// File is the deserialized interchange document. All cross references are plain indices into
// the ordered lists below. A File is read-only after parsing apart from the decoded-buffer cache,
// which is safe for concurrent use.
type File struct {
	// Nodes is the node hierarchy. Resolved meshes are produced in this order.
	Nodes []Node `json:"nodes"`

	// Meshes referenced by nodes.
	Meshes []Mesh `json:"meshes"`

	// Materials referenced by primitives.
	Materials []Material `json:"materials"`

	// Accessors define how to interpret buffer view bytes.
	Accessors []Accessor `json:"accessors"`

	// BufferViews define sub-ranges of buffers.
	BufferViews []BufferView `json:"bufferViews"`

	// Buffers are the embedded binary blobs.
	Buffers []Buffer `json:"buffers"`

	cacheOnce sync.Once
	cache     *bufferCache
}

// buffers returns the decoded-buffer cache, creating it on first use.
func (f *File) buffers() *bufferCache {
	f.cacheOnce.Do(func() {
		f.cache = newBufferCache()
	})
	return f.cache
}

// --- Scene Graph ---

// Node is one entry in the scene hierarchy.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-node
type Node struct {
	// Name is an optional name for this node.
	Name string `json:"name"`

	// Children are indices of child nodes.
	Children []int `json:"children"`

	// Mesh is the index of the mesh attached to this node, or -1.
	Mesh int `json:"mesh"`

	// Translation is the node's translation (x, y, z).
	Translation [3]float32 `json:"translation"`

	// Scale is the node's scale (x, y, z). Defaults to (1, 1, 1).
	Scale [3]float32 `json:"scale"`

	// Rotation is the node's rotation quaternion in file order (x, y, z, w). Defaults to identity.
	Rotation [4]float32 `json:"rotation"`
}

// UnmarshalJSON decodes a node, applying the defaults for absent fields.
func (n *Node) UnmarshalJSON(data []byte) error {
	type rawNode Node
	raw := rawNode{
		Mesh:     absent,
		Scale:    [3]float32{1, 1, 1},
		Rotation: [4]float32{0, 0, 0, 1},
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Node(raw)
	return nil
}

// --- Mesh Data ---

// Mesh is a named set of primitives. The engine requires exactly one primitive per mesh.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-mesh
type Mesh struct {
	// Name is an optional name for this mesh.
	Name string `json:"name"`

	// Primitives defines the geometry to render. Required; nil when the document omits it.
	Primitives []Primitive `json:"primitives"`
}

// missingField returns the name of the first required field the mesh lacks, or "".
func (m Mesh) missingField() string {
	if m.Primitives == nil {
		return "primitives"
	}
	return ""
}

// Primitive holds the accessor references for one drawable vertex/index set.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-mesh-primitive
type Primitive struct {
	// Attributes maps vertex semantics to accessor indices.
	Attributes Attributes `json:"attributes"`

	// Indices is the accessor index for the index buffer, or -1.
	Indices int `json:"indices"`

	// Material is the material index, or -1 for no material.
	Material int `json:"material"`
}

// UnmarshalJSON decodes a primitive, applying the -1 sentinel to absent references.
func (p *Primitive) UnmarshalJSON(data []byte) error {
	type rawPrimitive Primitive
	raw := rawPrimitive{
		Attributes: newAttributes(),
		Indices:    absent,
		Material:   absent,
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Primitive(raw)
	return nil
}

// Attributes holds the accessor index of each supported vertex semantic, or -1 when absent.
type Attributes struct {
	Position  int `json:"POSITION"`
	Normal    int `json:"NORMAL"`
	Color0    int `json:"COLOR_0"`
	Texcoord0 int `json:"TEXCOORD_0"`
}

// newAttributes returns an Attributes value with every semantic absent.
func newAttributes() Attributes {
	return Attributes{Position: absent, Normal: absent, Color0: absent, Texcoord0: absent}
}

// UnmarshalJSON decodes the attribute map, leaving unlisted semantics at -1.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	type rawAttributes Attributes
	raw := rawAttributes(newAttributes())
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Attributes(raw)
	return nil
}

// --- Materials ---

// Material is a named set of shading parameters.
type Material struct {
	// Name is an optional name.
	Name string `json:"name"`

	// Extras carries the Phong parameters used by the flat shaded pipeline.
	Extras MaterialExtras `json:"extras"`
}

// MaterialExtras is the non-standard extension block with the material's colors.
type MaterialExtras struct {
	Diffuse         [3]float32 `json:"diffuse"`
	Specular        [3]float32 `json:"specular"`
	Ambient         [3]float32 `json:"ambient"`
	ShininessFactor float32    `json:"shininessFactor"`
}

// --- Buffer Data ---

// Accessor describes how to interpret the bytes of a buffer view.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-accessor
type Accessor struct {
	// BufferView is the index of the buffer view, or -1 when missing.
	BufferView int

	// ComponentType is the decoded component type.
	ComponentType ComponentType

	// ComponentCode is the raw component code from the document, or -1 when missing.
	ComponentCode int

	// Count is the number of elements, or -1 when missing.
	Count int

	// Type is the element shape, empty when missing.
	Type ElementType
}

// UnmarshalJSON decodes an accessor and derives its ComponentType from the code and normalized flag.
func (a *Accessor) UnmarshalJSON(data []byte) error {
	raw := struct {
		BufferView    *int        `json:"bufferView"`
		ComponentType *int        `json:"componentType"`
		Normalized    bool        `json:"normalized"`
		Count         *int        `json:"count"`
		Type          ElementType `json:"type"`
	}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.BufferView = valueOr(raw.BufferView, absent)
	a.ComponentCode = valueOr(raw.ComponentType, absent)
	a.ComponentType = componentTypeFromCode(a.ComponentCode, raw.Normalized)
	a.Count = valueOr(raw.Count, absent)
	a.Type = raw.Type
	return nil
}

// missingField returns the name of the first required field the accessor lacks, or "".
func (a Accessor) missingField() string {
	switch {
	case a.BufferView == absent:
		return "bufferView"
	case a.ComponentCode == absent:
		return "componentType"
	case a.Count == absent:
		return "count"
	case a.Type == "":
		return "type"
	default:
		return ""
	}
}

// byteSize returns the number of bytes the accessor's elements occupy, or 0 when the component or
// element type is unsupported.
func (a Accessor) byteSize() int {
	return a.Count * a.ComponentType.size() * a.Type.components()
}

// BufferView is a byte range of one buffer.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-bufferview
type BufferView struct {
	// Buffer is the index of the buffer, or -1 when missing.
	Buffer int `json:"buffer"`

	// ByteOffset is the offset into the buffer.
	ByteOffset int `json:"byteOffset"`

	// ByteLength is the length of the view, or -1 when missing.
	ByteLength int `json:"byteLength"`
}

// UnmarshalJSON decodes a buffer view, applying the -1 sentinel to the absent required fields.
func (v *BufferView) UnmarshalJSON(data []byte) error {
	type rawBufferView BufferView
	raw := rawBufferView{Buffer: absent, ByteLength: absent}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = BufferView(raw)
	return nil
}

// missingField returns the name of the first required field the view lacks, or "".
func (v BufferView) missingField() string {
	switch {
	case v.Buffer == absent:
		return "buffer"
	case v.ByteLength == absent:
		return "byteLength"
	default:
		return ""
	}
}

// Buffer is an embedded binary blob. Only inline data URIs are supported.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-buffer
type Buffer struct {
	// ByteLength is the declared length of the decoded data, or -1 when missing.
	ByteLength int `json:"byteLength"`

	// URI is the base64 data URI holding the bytes.
	URI string `json:"uri"`
}

// UnmarshalJSON decodes a buffer, applying the -1 sentinel to an absent byteLength.
func (b *Buffer) UnmarshalJSON(data []byte) error {
	type rawBuffer Buffer
	raw := rawBuffer{ByteLength: absent}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Buffer(raw)
	return nil
}

// missingField returns the name of the first required field the buffer lacks, or "".
func (b Buffer) missingField() string {
	if b.ByteLength == absent {
		return "byteLength"
	}
	return ""
}

// valueOr dereferences p, or returns fallback when p is nil.
func valueOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

// bufferCache memoizes decoded buffer bytes by buffer index.
type bufferCache struct {
	mu      sync.RWMutex
	decoded map[int][]byte
}

// newBufferCache creates an empty cache.
func newBufferCache() *bufferCache {
	return &bufferCache{decoded: make(map[int][]byte)}
}
