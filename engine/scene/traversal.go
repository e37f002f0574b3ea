package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/engine/loader"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
)

// DrawCall is one mesh draw produced by Traverse.
type DrawCall struct {
	// Index is the mesh index in the model.
	Index int

	// Mesh is the mesh to draw.
	Mesh *model.ResolvedMesh

	// Model is the accumulated object-to-world matrix.
	Model common.Mat4

	// WorldViewProjection is Model · View · Projection.
	WorldViewProjection common.Mat4

	// CameraPosition is the camera position in world space for this frame.
	CameraPosition common.Vector3

	// DebugNormals requests the vertex normal line overlay for this mesh.
	DebugNormals bool
}

// DrawSink receives the draw calls of a frame in traversal order.
type DrawSink interface {
	// Draw records one draw call.
	//
	// Parameters:
	//   - call: the draw to record
	//
	// Returns:
	//   - error: error if the draw cannot be recorded; traversal stops on the first error
	Draw(call DrawCall) error
}

// DrawSinkFunc adapts a function to the DrawSink interface.
type DrawSinkFunc func(call DrawCall) error

// Draw calls f(call).
func (f DrawSinkFunc) Draw(call DrawCall) error {
	return f(call)
}

// CyclicGraphError reports a child reference that leads back to a node already on the current
// traversal path, or a graph in which every node is somebody's child.
type CyclicGraphError struct {
	// Path is the chain of mesh indices that closed the cycle, ending with the repeated node.
	// Empty when the graph has no roots at all.
	Path []int
}

func (e *CyclicGraphError) Error() string {
	if len(e.Path) == 0 {
		return "cyclic scene graph: no root nodes"
	}
	parts := make([]string, len(e.Path))
	for i, p := range e.Path {
		parts[i] = strconv.Itoa(p)
	}
	return "cyclic scene graph: " + strings.Join(parts, " -> ")
}

// RootIndices returns the indices of meshes that are nobody's child, in ascending order.
// Children outside the mesh list are ignored here and reported by Traverse.
//
// Parameters:
//   - meshes: the resolved meshes
//
// Returns:
//   - []int: the root indices
func RootIndices(meshes []model.ResolvedMesh) []int {
	isChild := make([]bool, len(meshes))
	for i := range meshes {
		for _, c := range meshes[i].Children {
			if int(c) < len(meshes) {
				isChild[c] = true
			}
		}
	}

	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

// RootIndicesQuadratic computes the same result as RootIndices by scanning every mesh's children
// for every candidate.
//
// Parameters:
//   - meshes: the resolved meshes
//
// Returns:
//   - []int: the root indices
func RootIndicesQuadratic(meshes []model.ResolvedMesh) []int {
	var roots []int
	for i := range meshes {
		referenced := false
		for j := range meshes {
			for _, c := range meshes[j].Children {
				if int(c) == i {
					referenced = true
					break
				}
			}
			if referenced {
				break
			}
		}
		if !referenced {
			roots = append(roots, i)
		}
	}
	return roots
}

// LocalMatrix returns the node's own transform: scale, then rotation, then translation.
//
// Parameters:
//   - mesh: the mesh whose transform to build
//
// Returns:
//   - common.Mat4: Scale(s) · R(q) · Translate(t)
func LocalMatrix(mesh *model.ResolvedMesh) common.Mat4 {
	return common.Scale(mesh.Scale).
		Mul(mesh.Rotation.ToMatrix()).
		Mul(common.Translate(mesh.Translation))
}

// traversal carries the per-frame state of one Traverse call.
type traversal struct {
	meshes    []model.ResolvedMesh
	viewProj  common.Mat4
	cameraPos common.Vector3
	sink      DrawSink

	visited []bool
	onPath  []bool
	path    []int
}

// Traverse walks the mesh hierarchy depth first from every root in ascending order and emits one
// DrawCall per visited node. A node's world matrix is its local matrix followed by its parent's.
// Nodes that no root reaches sit on or below a cycle, which is reported after the roots are drawn.
//
// Parameters:
//   - m: the model to draw
//   - view: the view matrix for this frame
//   - projection: the projection matrix
//   - cameraPos: the camera position in world space
//   - sink: receives every draw call
//
// Returns:
//   - error: a *CyclicGraphError, a *loader.StructuralError for a child outside the model, or
//     the first sink error
func Traverse(m model.Model, view, projection common.Mat4, cameraPos common.Vector3, sink DrawSink) error {
	meshes := m.Meshes()
	if len(meshes) == 0 {
		return nil
	}

	roots := RootIndices(meshes)
	if len(roots) == 0 {
		return &CyclicGraphError{}
	}

	t := &traversal{
		meshes:    meshes,
		viewProj:  view.Mul(projection),
		cameraPos: cameraPos,
		sink:      sink,
		visited:   make([]bool, len(meshes)),
		onPath:    make([]bool, len(meshes)),
		path:      make([]int, 0, len(meshes)),
	}
	for _, r := range roots {
		if err := t.visit(r, common.Identity()); err != nil {
			return err
		}
	}

	for i, seen := range t.visited {
		if seen {
			continue
		}
		if path := t.cycleFrom(i); path != nil {
			return &CyclicGraphError{Path: path}
		}
	}
	return nil
}

// visit emits node i with the accumulated parent matrix and recurses into its children.
func (t *traversal) visit(i int, parent common.Mat4) error {
	if t.onPath[i] || len(t.path) >= len(t.meshes) {
		path := append(append([]int(nil), t.path...), i)
		return &CyclicGraphError{Path: path}
	}
	t.visited[i] = true
	t.onPath[i] = true
	t.path = append(t.path, i)
	defer func() {
		t.onPath[i] = false
		t.path = t.path[:len(t.path)-1]
	}()

	mesh := &t.meshes[i]
	world := LocalMatrix(mesh).Mul(parent)
	call := DrawCall{
		Index:               i,
		Mesh:                mesh,
		Model:               world,
		WorldViewProjection: world.Mul(t.viewProj),
		CameraPosition:      t.cameraPos,
	}
	if err := t.sink.Draw(call); err != nil {
		return fmt.Errorf("draw mesh %d %q: %w", i, mesh.Name, err)
	}

	for _, c := range mesh.Children {
		if int(c) >= len(t.meshes) {
			return &loader.StructuralError{
				Kind:   loader.KindIndexOutOfRange,
				Entity: "mesh",
				Index:  i,
				Detail: fmt.Sprintf("%q child %d outside [0, %d)", mesh.Name, c, len(t.meshes)),
			}
		}
		if err := t.visit(int(c), world); err != nil {
			return err
		}
	}
	return nil
}

// cycleFrom searches the nodes below i that no earlier search explored and returns the first cycle
// found as a path ending in the repeated node, or nil. Nothing is drawn.
func (t *traversal) cycleFrom(i int) []int {
	if t.onPath[i] {
		return append(append([]int(nil), t.path...), i)
	}
	if t.visited[i] {
		return nil
	}
	t.visited[i] = true
	t.onPath[i] = true
	t.path = append(t.path, i)
	defer func() {
		t.onPath[i] = false
		t.path = t.path[:len(t.path)-1]
	}()

	for _, c := range t.meshes[i].Children {
		if int(c) >= len(t.meshes) {
			continue
		}
		if path := t.cycleFrom(int(c)); path != nil {
			return path
		}
	}
	return nil
}
