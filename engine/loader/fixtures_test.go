package loader

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"
)

// fixtureMesh is one indexed triangle mesh written into a fixture document.
type fixtureMesh struct {
	positions [][3]float32
	indices   []uint16
}

// fixtureNode is one node of a fixture document. mesh indexes the fixture meshes.
type fixtureNode struct {
	name        string
	mesh        int
	children    []int
	translation *[3]float32
	scale       *[3]float32
	rotation    *[4]float32
	material    int
}

var (
	unitTriangle = fixtureMesh{
		positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		indices:   []uint16{0, 1, 2},
	}
	unitQuad = fixtureMesh{
		positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		indices:   []uint16{0, 1, 2, 0, 2, 3},
	}
)

// fixtureDocument lays the mesh data out in a binary buffer with the qmuntal/gltf modeler and
// emits a scene document that embeds the buffer as a base64 data URI. Mesh i uses accessor 2i for
// POSITION and 2i+1 for indices. A node material of -1 leaves the primitive without a material;
// otherwise one material per node index is emitted with recognisable colours.
func fixtureDocument(t *testing.T, meshes []fixtureMesh, nodes []fixtureNode) []byte {
	t.Helper()

	doc := gltf.NewDocument()
	type accessorRole struct {
		index  uint32
		vec3   bool
		length int
	}
	var roles []accessorRole
	for _, m := range meshes {
		pos := modeler.WritePosition(doc, m.positions)
		idx := modeler.WriteIndices(doc, m.indices)
		roles = append(roles,
			accessorRole{index: pos, vec3: true, length: len(m.positions)},
			accessorRole{index: idx, length: len(m.indices)},
		)
	}

	var accessors []map[string]any
	for _, r := range roles {
		acc := doc.Accessors[r.index]
		entry := map[string]any{
			"bufferView": *acc.BufferView,
			"count":      r.length,
		}
		if r.vec3 {
			entry["componentType"], entry["type"] = 5126, "VEC3"
		} else {
			entry["componentType"], entry["type"] = 5123, "SCALAR"
		}
		accessors = append(accessors, entry)
	}

	var views []map[string]any
	for _, bv := range doc.BufferViews {
		views = append(views, map[string]any{
			"buffer":     bv.Buffer,
			"byteOffset": bv.ByteOffset,
			"byteLength": bv.ByteLength,
		})
	}

	var buffers []map[string]any
	for _, b := range doc.Buffers {
		buffers = append(buffers, map[string]any{
			"byteLength": len(b.Data),
			"uri":        dataURIPrefix + base64.StdEncoding.EncodeToString(b.Data),
		})
	}

	var gltfMeshes, gltfNodes, materials []map[string]any
	for i, n := range nodes {
		prim := map[string]any{
			"attributes": map[string]any{"POSITION": 2 * n.mesh},
			"indices":    2*n.mesh + 1,
		}
		if n.material >= 0 {
			prim["material"] = len(materials)
			materials = append(materials, map[string]any{
				"name": n.name + "-material",
				"extras": map[string]any{
					"diffuse":         [3]float32{0.5, 0.25, float32(i)},
					"ambient":         [3]float32{0.1, 0.1, 0.1},
					"specular":        [3]float32{1, 1, 1},
					"shininessFactor": 16,
				},
			})
		}
		gltfMeshes = append(gltfMeshes, map[string]any{
			"name":       n.name + "-mesh",
			"primitives": []any{prim},
		})

		node := map[string]any{"name": n.name, "mesh": i}
		if len(n.children) > 0 {
			node["children"] = n.children
		}
		if n.translation != nil {
			node["translation"] = *n.translation
		}
		if n.scale != nil {
			node["scale"] = *n.scale
		}
		if n.rotation != nil {
			node["rotation"] = *n.rotation
		}
		gltfNodes = append(gltfNodes, node)
	}

	text, err := json.Marshal(map[string]any{
		"asset":       map[string]any{"version": "2.0"},
		"nodes":       gltfNodes,
		"meshes":      gltfMeshes,
		"materials":   materials,
		"accessors":   accessors,
		"bufferViews": views,
		"buffers":     buffers,
	})
	require.NoError(t, err)
	return text
}

// parseFixture builds a fixture document and parses it.
func parseFixture(t *testing.T, meshes []fixtureMesh, nodes []fixtureNode) *File {
	t.Helper()
	f, err := Parse(fixtureDocument(t, meshes, nodes))
	require.NoError(t, err)
	return f
}
