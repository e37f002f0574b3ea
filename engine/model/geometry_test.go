package model

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandByIndices(t *testing.T) {
	positions := []common.Vector3{
		common.Vec3(0, 0, 0),
		common.Vec3(1, 0, 0),
		common.Vec3(1, 1, 0),
		common.Vec3(0, 1, 0),
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	expanded, err := ExpandByIndices(positions, indices)
	require.NoError(t, err)
	require.Len(t, expanded, len(indices))
	for k, idx := range indices {
		assert.Equal(t, positions[idx], expanded[k], "element %d", k)
	}
}

func TestExpandByIndicesEmpty(t *testing.T) {
	expanded, err := ExpandByIndices(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, expanded)
}

func TestExpandByIndicesOutOfRange(t *testing.T) {
	positions := []common.Vector3{common.Vec3(0, 0, 0), common.Vec3(1, 0, 0)}

	expanded, err := ExpandByIndices(positions, []uint16{0, 1, 2})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Nil(t, expanded)
}

func TestFlatNormalsTriangle(t *testing.T) {
	tri := []common.Vector3{
		common.Vec3(0, 0, 0),
		common.Vec3(1, 0, 0),
		common.Vec3(0, 1, 0),
	}

	normals, err := FlatNormals(tri)
	require.NoError(t, err)
	require.Len(t, normals, 3)
	for _, n := range normals {
		assert.Equal(t, common.Vec3(0, 0, 1), n)
	}
}

func TestFlatNormalsOrthogonalUnitAndShared(t *testing.T) {
	tris := []common.Vector3{
		common.Vec3(0.3, -1, 2), common.Vec3(4, 0.5, -1), common.Vec3(-2, 3, 0.25),
		common.Vec3(10, 10, 10), common.Vec3(11, 10, 12), common.Vec3(10, 13, 9),
	}

	normals, err := FlatNormals(tris)
	require.NoError(t, err)
	require.Len(t, normals, len(tris))

	for i := 0; i < len(tris); i += 3 {
		n := normals[i]
		assert.InDelta(t, 1, n.Length(), 1e-5)
		assert.InDelta(t, 0, n.Dot(tris[i+1].Sub(tris[i])), 1e-4)
		assert.InDelta(t, 0, n.Dot(tris[i+2].Sub(tris[i])), 1e-4)

		// all three corners share the same bits
		assert.Equal(t, math.Float32bits(n.X), math.Float32bits(normals[i+1].X))
		assert.Equal(t, n, normals[i+1])
		assert.Equal(t, n, normals[i+2])
	}
}

func TestFlatNormalsInvalidTopology(t *testing.T) {
	for _, n := range []int{1, 2, 4, 5} {
		_, err := FlatNormals(make([]common.Vector3, n))
		assert.ErrorIs(t, err, ErrInvalidTopology, "len %d", n)
	}
}

func TestFlatNormalsDegenerate(t *testing.T) {
	normals, err := FlatNormals([]common.Vector3{common.Vec3(1, 1, 1), common.Vec3(1, 1, 1), common.Vec3(1, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, common.Vector3{}, normals[0])
}

func TestDebugNormalLines(t *testing.T) {
	positions := []common.Vector3{common.Vec3(0, 0, 0), common.Vec3(1, 2, 3)}
	normals := []common.Vector3{common.Vec3(0, 0, 1), common.Vec3(1, 0, 0)}

	lines, err := DebugNormalLines(positions, normals, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []common.Vector3{
		common.Vec3(0, 0, 0), common.Vec3(0, 0, 0.5),
		common.Vec3(1, 2, 3), common.Vec3(1.5, 2, 3),
	}, lines)

	_, err = DebugNormalLines(positions, normals[:1], 0.5)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
