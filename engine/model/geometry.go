package model

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/beagle-go/common"
)

var (
	// ErrIndexOutOfRange is returned when an index refers past the end of the position list.
	ErrIndexOutOfRange = errors.New("vertex index out of range")

	// ErrInvalidTopology is returned when a vertex list does not form whole triangles.
	ErrInvalidTopology = errors.New("vertex count is not a multiple of 3")

	// ErrLengthMismatch is returned when two per-vertex lists differ in length.
	ErrLengthMismatch = errors.New("per-vertex list lengths differ")
)

// ExpandByIndices converts an indexed vertex list into a flat triangle list.
//
// Parameters:
//   - positions: the unique vertex positions
//   - indices: the index list, one entry per output vertex
//
// Returns:
//   - []common.Vector3: a list where element k is positions[indices[k]]
//   - error: ErrIndexOutOfRange if any index is not below len(positions)
func ExpandByIndices(positions []common.Vector3, indices []uint16) ([]common.Vector3, error) {
	out := make([]common.Vector3, len(indices))
	for k, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, fmt.Errorf("%w: index %d at %d, have %d positions", ErrIndexOutOfRange, idx, k, len(positions))
		}
		out[k] = positions[idx]
	}
	return out, nil
}

// FlatNormals computes one face normal per triangle and repeats it for each of the three corners.
// A degenerate triangle yields a zero normal.
//
// Parameters:
//   - expanded: triangle-list positions, three per face
//
// Returns:
//   - []common.Vector3: normals with the same length as expanded
//   - error: ErrInvalidTopology if len(expanded) is not a multiple of 3
func FlatNormals(expanded []common.Vector3) ([]common.Vector3, error) {
	if len(expanded)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d vertices", ErrInvalidTopology, len(expanded))
	}

	normals := make([]common.Vector3, len(expanded))
	for i := 0; i < len(expanded); i += 3 {
		p0, p1, p2 := expanded[i], expanded[i+1], expanded[i+2]
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		normals[i], normals[i+1], normals[i+2] = n, n, n
	}
	return normals, nil
}

// DebugNormalLines builds a line list visualizing each vertex normal. Every corner contributes two
// points: the corner itself and the corner pushed along its normal by length.
//
// Parameters:
//   - positions: the vertex positions
//   - normals: the per-vertex normals, same length as positions
//   - length: the drawn length of each normal
//
// Returns:
//   - []common.Vector3: 2*len(positions) line endpoints
//   - error: ErrLengthMismatch if the two inputs differ in length
func DebugNormalLines(positions, normals []common.Vector3, length float32) ([]common.Vector3, error) {
	if len(positions) != len(normals) {
		return nil, fmt.Errorf("%w: %d positions, %d normals", ErrLengthMismatch, len(positions), len(normals))
	}

	lines := make([]common.Vector3, 0, len(positions)*2)
	for i, p := range positions {
		lines = append(lines, p, p.Add(normals[i].Mul(length)))
	}
	return lines, nil
}
