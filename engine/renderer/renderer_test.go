package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/engine/camera"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
	"github.com/Carmen-Shannon/beagle-go/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records what the renderer asks of the device.
type fakeBackend struct {
	uploaded  []meshData
	slots     int
	draws     []fakeDraw
	inFrame   bool
	presented int
	clear     wgpu.Color
	uploadErr error
}

type fakeDraw struct {
	slot      int
	constants []byte
	mesh      int
	normals   bool
}

func (f *fakeBackend) ConfigureSurface(width, height int) error { return nil }
func (f *fakeBackend) SetPresentMode(mode PresentMode)          {}
func (f *fakeBackend) SetClearColor(c wgpu.Color)               { f.clear = c }
func (f *fakeBackend) Release()                                 {}

func (f *fakeBackend) UploadMeshes(meshes []meshData, slots int) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploaded = meshes
	f.slots = slots
	return nil
}

func (f *fakeBackend) BeginFrame() error {
	f.inFrame = true
	return nil
}

func (f *fakeBackend) DrawMesh(slot int, constants []byte, mesh int, normals bool) error {
	f.draws = append(f.draws, fakeDraw{slot, constants, mesh, normals})
	return nil
}

func (f *fakeBackend) EndFrame() { f.inFrame = false }
func (f *fakeBackend) Present()  { f.presented++ }

func newTestRenderer(backend *fakeBackend) *renderer {
	return &renderer{
		mu:           &sync.Mutex{},
		backend:      backend,
		normalLength: DefaultNormalLength,
	}
}

func triangle(name string, children ...uint16) model.ResolvedMesh {
	positions := []common.Vector3{common.Vec3(0, 0, 0), common.Vec3(1, 0, 0), common.Vec3(0, 1, 0)}
	normals, _ := model.FlatNormals(positions)
	return model.ResolvedMesh{
		Name:            name,
		Children:        children,
		Scale:           common.Vec3(1, 1, 1),
		Rotation:        common.IdentityQuaternion(),
		VertexPositions: positions,
		VertexNormals:   normals,
		Material:        model.Material{Diffuse: common.Vec3(1, 0, 0), Shininess: 8},
	}
}

func floatAt(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func TestInterleaveVertices(t *testing.T) {
	positions := []common.Vector3{common.Vec3(1, 2, 3), common.Vec3(4, 5, 6)}
	normals := []common.Vector3{common.Vec3(0, 0, 1), common.Vec3(0, 1, 0)}

	data, err := interleaveVertices(positions, normals)
	require.NoError(t, err)
	require.Len(t, data, 2*shadedVertexStride)

	want := []float32{1, 2, 3, 0, 0, 1, 4, 5, 6, 0, 1, 0}
	for i, w := range want {
		assert.Equal(t, w, floatAt(data, i), "float %d", i)
	}

	_, err = interleaveVertices(positions, normals[:1])
	assert.ErrorIs(t, err, model.ErrLengthMismatch)
}

func TestBuildMeshData(t *testing.T) {
	m := model.NewModel(model.WithMeshes([]model.ResolvedMesh{triangle("a"), triangle("b")}))

	t.Run("with normal lines", func(t *testing.T) {
		data, err := buildMeshData(m, 0.5)
		require.NoError(t, err)
		require.Len(t, data, 2)
		assert.Equal(t, 3, data[0].vertexCount)
		assert.Len(t, data[0].vertices, 3*shadedVertexStride)
		assert.Equal(t, 6, data[0].lineCount)
		require.Len(t, data[0].lines, 6*lineVertexStride)

		// second endpoint of the first line is the first corner pushed along +z
		assert.Equal(t, []float32{0, 0, 0.5}, []float32{floatAt(data[0].lines, 3), floatAt(data[0].lines, 4), floatAt(data[0].lines, 5)})
	})

	t.Run("without normal lines", func(t *testing.T) {
		data, err := buildMeshData(m, 0)
		require.NoError(t, err)
		assert.Zero(t, data[1].lineCount)
		assert.Nil(t, data[1].lines)
	})
}

func TestCountDraws(t *testing.T) {
	tests := []struct {
		name   string
		meshes []model.ResolvedMesh
		want   int
	}{
		{"flat", []model.ResolvedMesh{triangle("0"), triangle("1")}, 2},
		{"tree", []model.ResolvedMesh{triangle("0", 1, 2), triangle("1"), triangle("2")}, 3},
		{"shared child", []model.ResolvedMesh{triangle("0", 2), triangle("1", 2), triangle("2")}, 4},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := countDraws(model.NewModel(model.WithMeshes(tt.meshes)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := countDraws(model.NewModel(model.WithMeshes([]model.ResolvedMesh{triangle("0", 1), triangle("1", 0)})))
	var cyclic *scene.CyclicGraphError
	assert.ErrorAs(t, err, &cyclic)
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint64(256), alignUp(model.DrawConstantsSize, 256))
	assert.Equal(t, uint64(192), alignUp(model.DrawConstantsSize, 64))
	assert.Equal(t, uint64(512), alignUp(257, 256))
	assert.Equal(t, uint64(7), alignUp(7, 0))
}

func TestRendererSetModel(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(backend)

	m := model.NewModel(model.WithName("scene"), model.WithMeshes([]model.ResolvedMesh{triangle("0", 1), triangle("1")}))
	require.NoError(t, r.SetModel(m))
	assert.Equal(t, m, r.Model())
	assert.Len(t, backend.uploaded, 2)
	assert.Equal(t, 2, backend.slots)

	t.Run("cyclic model keeps previous", func(t *testing.T) {
		bad := model.NewModel(model.WithMeshes([]model.ResolvedMesh{triangle("0", 1), triangle("1", 0)}))
		var cyclic *scene.CyclicGraphError
		assert.ErrorAs(t, r.SetModel(bad), &cyclic)
		assert.Equal(t, m, r.Model())
	})

	t.Run("upload failure keeps previous", func(t *testing.T) {
		backend.uploadErr = errors.New("out of memory")
		other := model.NewModel(model.WithMeshes([]model.ResolvedMesh{triangle("x")}))
		assert.Error(t, r.SetModel(other))
		assert.Equal(t, m, r.Model())
		backend.uploadErr = nil
	})
}

func TestRendererFrame(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(backend)

	meshes := []model.ResolvedMesh{triangle("root", 1), triangle("child")}
	meshes[1].Translation = common.Vec3(2, 0, 0)
	require.NoError(t, r.SetModel(model.NewModel(model.WithMeshes(meshes))))

	s := scene.NewScene("test",
		scene.WithModel(r.Model()),
		scene.WithCamera(camera.NewCamera()),
		scene.WithDebugNormals(true),
	)

	require.NoError(t, r.BeginFrame())
	require.NoError(t, s.Draw(r))
	r.EndFrame()
	r.Present()

	require.Len(t, backend.draws, 2)
	assert.Equal(t, 2, r.DrawCount())
	assert.Equal(t, 1, backend.presented)

	for i, d := range backend.draws {
		assert.Equal(t, i, d.slot)
		assert.Equal(t, i, d.mesh)
		assert.True(t, d.normals)
		require.Len(t, d.constants, model.DrawConstantsSize)
	}

	// the child's world matrix carries its translation in the fourth row
	child := backend.draws[1].constants
	assert.Equal(t, float32(2), floatAt(child, 16+12))
	// diffuse red and shininess in specular.w
	assert.Equal(t, float32(1), floatAt(child, 36))
	assert.Equal(t, float32(8), floatAt(child, 47))
}

func TestRendererDrawErrors(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(backend)
	call := scene.DrawCall{Index: 0}

	assert.ErrorIs(t, r.Draw(call), errNoFrame)

	require.NoError(t, r.BeginFrame())
	assert.ErrorIs(t, r.Draw(call), errNoModel)
	r.EndFrame()

	require.NoError(t, r.SetModel(model.NewModel(model.WithMeshes([]model.ResolvedMesh{triangle("0")}))))
	require.NoError(t, r.BeginFrame())
	assert.ErrorIs(t, r.Draw(scene.DrawCall{Index: 5}), errMeshNotUploaded)
	require.NoError(t, r.Draw(call))
	assert.ErrorIs(t, r.Draw(call), errSlotOutOfRange)
	r.EndFrame()
	assert.Equal(t, 1, r.DrawCount())
}

func TestRendererClearColor(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(backend)
	r.SetClearColor(common.Vector4{X: 0.45, Y: 0.6, Z: 0.95, W: 1})
	assert.InDelta(t, 0.45, backend.clear.R, 1e-6)
	assert.InDelta(t, 1.0, backend.clear.A, 1e-6)
}

func TestPrepareShader(t *testing.T) {
	for label, source := range map[string]string{"Flat Shaded": flatShadedSource, "Debug Normals": debugNormalsSource} {
		code, err := prepareShader(label, source)
		require.NoError(t, err, label)
		assert.Contains(t, code, "struct DrawConstants", label)
		assert.Contains(t, code, "@group(0) @binding(0) var<uniform> constants: DrawConstants;", label)
		assert.Contains(t, code, "fn vs_main", label)
		assert.Contains(t, code, "fn fs_main", label)
		assert.False(t, strings.Contains(code, "@beagle:"), label)
	}

	_, err := prepareShader("Bare", "@vertex fn vs_main() {}")
	assert.ErrorContains(t, err, "does not declare")

	_, err = prepareShader("Moved", "//@beagle:group 1 0 uniform constants draw_constants")
	assert.ErrorContains(t, err, "group 1 binding 0")
}
