package scene

import (
	"testing"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/engine/camera"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneDrawComputesViewOncePerFrame(t *testing.T) {
	ctrl := camera.NewFreeFlight()
	ctrl.ApplyMove(0, 0, 0, common.Vec3(0, 0, 1))
	cam := camera.NewCamera(camera.WithController(ctrl))

	m := model.NewModel(model.WithMeshes([]model.ResolvedMesh{node("0", 1), node("1"), node("2")}))
	s := NewScene("test", WithModel(m), WithCamera(cam))

	rec := &recorder{}
	require.NoError(t, s.Draw(rec))
	require.Len(t, rec.calls, 3)

	// one frame moved the camera by exactly one step
	assert.Equal(t, common.Vec3(0, 0, 1), ctrl.Position())
	for _, c := range rec.calls {
		assert.Equal(t, common.Vec3(0, 0, 1), c.CameraPosition)
	}

	want := common.Translate(common.Vec3(0, 0, -1)).Mul(cam.ProjectionMatrix())
	assert.Equal(t, want, rec.calls[0].WorldViewProjection)
}

func TestSceneDebugNormals(t *testing.T) {
	cam := camera.NewCamera(camera.WithController(camera.NewFps(common.Vector3{})))
	m := model.NewModel(model.WithMeshes([]model.ResolvedMesh{node("0")}))
	s := NewScene("test", WithModel(m), WithCamera(cam), WithDebugNormals(true))
	assert.True(t, s.DebugNormals())

	rec := &recorder{}
	require.NoError(t, s.Draw(rec))
	assert.True(t, rec.calls[0].DebugNormals)

	s.SetDebugNormals(false)
	rec = &recorder{}
	require.NoError(t, s.Draw(rec))
	assert.False(t, rec.calls[0].DebugNormals)
}

func TestSceneSwapModel(t *testing.T) {
	cam := camera.NewCamera()
	s := NewScene("test", WithCamera(cam))
	assert.Equal(t, "test", s.Name())
	assert.Same(t, cam, s.Camera())

	rec := &recorder{}
	require.NoError(t, s.Draw(rec))
	assert.Empty(t, rec.calls)

	next := model.NewModel(model.WithMeshes([]model.ResolvedMesh{node("0"), node("1")}))
	s.SetModel(next)
	assert.Same(t, next, s.Model())
	require.NoError(t, s.Draw(rec))
	assert.Len(t, rec.calls, 2)

	other := camera.NewCamera()
	s.SetCamera(other)
	assert.Same(t, other, s.Camera())
}
