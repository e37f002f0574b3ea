package model

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleMesh(name string, children ...uint16) ResolvedMesh {
	positions := []common.Vector3{common.Vec3(0, 0, 0), common.Vec3(1, 0, 0), common.Vec3(0, 1, 0)}
	normals, _ := FlatNormals(positions)
	return ResolvedMesh{
		Name:            name,
		Children:        children,
		Scale:           common.Vec3(1, 1, 1),
		Rotation:        common.IdentityQuaternion(),
		VertexPositions: positions,
		VertexNormals:   normals,
	}
}

func TestNewModel(t *testing.T) {
	m := NewModel(
		WithName("scene.gltf"),
		WithMeshes([]ResolvedMesh{triangleMesh("root", 1), triangleMesh("leaf")}),
	)

	assert.Equal(t, "scene.gltf", m.Name())
	assert.Equal(t, 2, m.Len())
	require.NotNil(t, m.Mesh(1))
	assert.Equal(t, "leaf", m.Mesh(1).Name)
	assert.Equal(t, 3, m.Mesh(0).VertexCount())
	assert.Nil(t, m.Mesh(2))
	assert.Nil(t, m.Mesh(-1))
	assert.NoError(t, m.Validate())
}

func TestModelValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ResolvedMesh)
		want   error
	}{
		{"normals length", func(r *ResolvedMesh) { r.VertexNormals = r.VertexNormals[:2] }, ErrLengthMismatch},
		{"not triangles", func(r *ResolvedMesh) {
			r.VertexPositions = r.VertexPositions[:2]
			r.VertexNormals = r.VertexNormals[:2]
		}, ErrInvalidTopology},
		{"child range", func(r *ResolvedMesh) { r.Children = []uint16{5} }, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := triangleMesh("bad")
			tt.mutate(&mesh)
			m := NewModel(WithMeshes([]ResolvedMesh{mesh}))
			assert.ErrorIs(t, m.Validate(), tt.want)
		})
	}
}

func TestDrawConstantsLayout(t *testing.T) {
	mat := Material{
		Diffuse:   common.Vec3(0.1, 0.2, 0.3),
		Ambient:   common.Vec3(0.4, 0.5, 0.6),
		Specular:  common.Vec3(0.7, 0.8, 0.9),
		Shininess: 32,
	}
	wvp := common.Translate(common.Vec3(1, 2, 3))
	dc := NewDrawConstants(wvp, common.Identity(), common.Vec3(4, 5, 6), mat)

	assert.Equal(t, DrawConstantsSize, dc.Size())

	buf := dc.Marshal()
	require.Len(t, buf, DrawConstantsSize)

	at := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	// translation lives in the fourth row of the row-major matrix
	assert.Equal(t, float32(1), at(12))
	assert.Equal(t, float32(3), at(14))
	assert.Equal(t, float32(1), at(16))
	assert.Equal(t, []float32{4, 5, 6, 1}, []float32{at(32), at(33), at(34), at(35)})
	assert.Equal(t, float32(0.1), at(36))
	assert.Equal(t, float32(0.4), at(40))
	assert.Equal(t, float32(32), at(47))

	// the raw struct bytes match the explicit encoding on little-endian hosts
	assert.Equal(t, buf, common.StructToBytes(&dc))
}

func TestDrawConstantsSourceFields(t *testing.T) {
	fields := []string{"world_view_projection", "model", "camera_position", "diffuse", "ambient", "specular"}
	last := -1
	for _, f := range fields {
		idx := strings.Index(DrawConstantsSource, f+":")
		require.GreaterOrEqual(t, idx, 0, "missing field %s", f)
		assert.Greater(t, idx, last, "field %s out of order", f)
		last = idx
	}
}
