package engine

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/engine/camera"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
	"github.com/Carmen-Shannon/beagle-go/engine/renderer"
	"github.com/Carmen-Shannon/beagle-go/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keySet map[common.KeyCode]bool

func (k keySet) IsKeyDown(key common.KeyCode) bool {
	return k[key]
}

// fakeWindow runs the update callback a bounded number of times.
type fakeWindow struct {
	keys       keySet
	dx, dy     float32
	onUpdate   func()
	onResize   func(width, height int)
	closed     bool
	closeCalls int
	maxFrames  int
}

func (w *fakeWindow) SetUpdateCallback(cb func())                  { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor   { return nil }
func (w *fakeWindow) IsKeyDown(key common.KeyCode) bool            { return w.keys[key] }
func (w *fakeWindow) IsRunning() bool                              { return !w.closed }
func (w *fakeWindow) Close() error                                 { return nil }
func (w *fakeWindow) Width() int                                   { return 800 }
func (w *fakeWindow) Height() int                                  { return 600 }
func (w *fakeWindow) RequestClose() {
	w.closed = true
	w.closeCalls++
}
func (w *fakeWindow) MouseDelta() (float32, float32) {
	dx, dy := w.dx, w.dy
	w.dx, w.dy = 0, 0
	return dx, dy
}
func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.maxFrames && !w.closed; i++ {
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

type fakeRenderer struct {
	model       model.Model
	setModelErr error
	beginErr    error
	draws       []scene.DrawCall
	frames      int
	presents    int
	resizes     [][2]int
}

func (r *fakeRenderer) Draw(call scene.DrawCall) error {
	r.draws = append(r.draws, call)
	return nil
}
func (r *fakeRenderer) SetModel(m model.Model) error {
	if r.setModelErr != nil {
		return r.setModelErr
	}
	r.model = m
	return nil
}
func (r *fakeRenderer) Model() model.Model { return r.model }
func (r *fakeRenderer) Resize(width, height int) error {
	r.resizes = append(r.resizes, [2]int{width, height})
	return nil
}
func (r *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (r *fakeRenderer) SetClearColor(common.Vector4)        {}
func (r *fakeRenderer) BeginFrame() error {
	if r.beginErr != nil {
		return r.beginErr
	}
	r.frames++
	return nil
}
func (r *fakeRenderer) EndFrame()      {}
func (r *fakeRenderer) Present()       { r.presents++ }
func (r *fakeRenderer) DrawCount() int { return len(r.draws) }
func (r *fakeRenderer) Release()       {}

type fakeController struct {
	steers []Steering
	resets int
}

func (c *fakeController) ViewMatrix() common.Mat4  { return common.Identity() }
func (c *fakeController) Position() common.Vector3 { return common.Vector3{} }
func (c *fakeController) Steer(pitch, yaw, roll float32, translate common.Vector3) {
	c.steers = append(c.steers, Steering{Pitch: pitch, Yaw: yaw, Roll: roll, Translate: translate})
}
func (c *fakeController) ResetOrientation() { c.resets++ }

type fakeWatcher struct {
	updates chan model.Model
	closed  bool
}

func (w *fakeWatcher) Updates() <-chan model.Model { return w.updates }
func (w *fakeWatcher) Close() error {
	w.closed = true
	return nil
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
	}
}

type fixture struct {
	engine   *engine
	window   *fakeWindow
	renderer *fakeRenderer
	ctrl     *fakeController
	scene    scene.Scene
}

func newFixture(t *testing.T, options ...EngineBuilderOption) fixture {
	t.Helper()
	f := fixture{
		window:   &fakeWindow{keys: keySet{}, maxFrames: 1},
		renderer: &fakeRenderer{},
		ctrl:     &fakeController{},
	}
	f.scene = scene.NewScene("test",
		scene.WithCamera(camera.NewCamera(camera.WithController(f.ctrl))),
	)

	opts := append([]EngineBuilderOption{
		WithWindow(f.window),
		WithRenderer(f.renderer),
		WithScene(f.scene),
	}, options...)
	e, err := NewEngine(opts...)
	require.NoError(t, err)
	f.engine = e.(*engine)

	require.NoError(t, f.engine.SetModel(model.NewModel(
		model.WithName("root"),
		model.WithMeshes([]model.ResolvedMesh{triangle("parent", 1), triangle("child")}),
	)))
	return f
}

func TestInputMappingMap(t *testing.T) {
	m := DefaultInputMapping()

	tests := []struct {
		name   string
		keys   keySet
		dx, dy float32
		want   Steering
	}{
		{name: "idle", keys: keySet{}},
		{name: "forward", keys: keySet{common.KeyW: true}, want: Steering{Translate: common.Vec3(0, 0, 0.02)}},
		{name: "forward and back", keys: keySet{common.KeyW: true, common.KeyS: true}, want: Steering{Translate: common.Vec3(0, 0, -0.02)}},
		{name: "strafe", keys: keySet{common.KeyD: true, common.KeyA: true}, want: Steering{Translate: common.Vec3(-0.02, 0, 0)}},
		{name: "vertical", keys: keySet{common.KeySpace: true}, want: Steering{Translate: common.Vec3(0, -0.02, 0)}},
		{name: "vertical both", keys: keySet{common.KeySpace: true, common.KeyLeftShift: true}, want: Steering{Translate: common.Vec3(0, 0.02, 0)}},
		{name: "roll", keys: keySet{common.KeyQ: true}, want: Steering{Roll: 0.05}},
		{name: "roll both", keys: keySet{common.KeyQ: true, common.KeyE: true}, want: Steering{Roll: -0.05}},
		{name: "mouse", keys: keySet{}, dx: 10, dy: 4, want: Steering{Pitch: -0.02, Yaw: 0.05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Map(tt.keys, tt.dx, tt.dy)
			assert.InDelta(t, tt.want.Pitch, got.Pitch, 1e-6)
			assert.InDelta(t, tt.want.Yaw, got.Yaw, 1e-6)
			assert.InDelta(t, tt.want.Roll, got.Roll, 1e-6)
			assert.Equal(t, tt.want.Translate, got.Translate)
		})
	}
}

func TestNewEngineRequiresCollaborators(t *testing.T) {
	w := &fakeWindow{keys: keySet{}}
	r := &fakeRenderer{}
	s := scene.NewScene("test")

	_, err := NewEngine(WithRenderer(r), WithScene(s))
	assert.ErrorIs(t, err, errNoWindow)
	_, err = NewEngine(WithWindow(w), WithScene(s))
	assert.ErrorIs(t, err, errNoRenderer)
	_, err = NewEngine(WithWindow(w), WithRenderer(r))
	assert.ErrorIs(t, err, errNoScene)

	e, err := NewEngine(WithWindow(w), WithRenderer(r), WithScene(s))
	require.NoError(t, err)
	assert.NotNil(t, w.onUpdate)
	assert.NotNil(t, w.onResize)
	assert.Same(t, s, e.Scene())
}

func TestEngineFrame(t *testing.T) {
	f := newFixture(t)
	f.window.keys[common.KeyW] = true
	f.window.dx = 2

	require.NoError(t, f.engine.frame())

	assert.Equal(t, 1, f.renderer.frames)
	assert.Equal(t, 1, f.renderer.presents)
	require.Len(t, f.renderer.draws, 2)
	assert.Equal(t, 0, f.renderer.draws[0].Index)
	assert.Equal(t, 1, f.renderer.draws[1].Index)

	require.Len(t, f.ctrl.steers, 1)
	assert.Equal(t, common.Vec3(0, 0, 0.02), f.ctrl.steers[0].Translate)
	assert.InDelta(t, 0.01, f.ctrl.steers[0].Yaw, 1e-6)
}

func TestEngineFrameSkipsUnavailableSurface(t *testing.T) {
	f := newFixture(t)
	f.renderer.beginErr = errors.New("surface lost")

	require.NoError(t, f.engine.frame())
	assert.Empty(t, f.renderer.draws)
	assert.Zero(t, f.renderer.presents)
	assert.Len(t, f.ctrl.steers, 1)
}

func TestEngineEscQuits(t *testing.T) {
	f := newFixture(t)
	f.window.keys[common.KeyEsc] = true
	f.window.maxFrames = 5

	require.NoError(t, f.engine.Run())
	assert.True(t, f.window.closed)
	assert.Equal(t, 1, f.window.closeCalls)
	assert.Zero(t, f.renderer.frames)

	f.engine.Quit()
	assert.Equal(t, 1, f.window.closeCalls)
}

func TestEngineCommandKeys(t *testing.T) {
	f := newFixture(t)

	f.window.keys[common.KeyC] = true
	require.NoError(t, f.engine.frame())
	assert.Equal(t, 1, f.ctrl.resets)
	delete(f.window.keys, common.KeyC)

	// N toggles once per press, not once per frame
	f.window.keys[common.KeyN] = true
	require.NoError(t, f.engine.frame())
	require.NoError(t, f.engine.frame())
	assert.True(t, f.scene.DebugNormals())
	assert.True(t, f.renderer.draws[len(f.renderer.draws)-1].DebugNormals)

	delete(f.window.keys, common.KeyN)
	require.NoError(t, f.engine.frame())
	f.window.keys[common.KeyN] = true
	require.NoError(t, f.engine.frame())
	assert.False(t, f.scene.DebugNormals())
}

func TestEngineReload(t *testing.T) {
	w := &fakeWatcher{updates: make(chan model.Model, 1)}
	f := newFixture(t, WithWatcher(w))
	original := f.scene.Model()

	reloaded := model.NewModel(model.WithName("reloaded"), model.WithMeshes([]model.ResolvedMesh{triangle("only")}))
	w.updates <- reloaded
	require.NoError(t, f.engine.frame())
	assert.Same(t, reloaded, f.scene.Model())
	assert.Same(t, reloaded, f.renderer.Model())
	assert.NotSame(t, original, f.scene.Model())

	// a rejected upload keeps the current model
	f.renderer.setModelErr = errors.New("out of memory")
	w.updates <- model.NewModel(model.WithName("broken"))
	require.NoError(t, f.engine.frame())
	assert.Same(t, reloaded, f.scene.Model())

	require.NoError(t, f.engine.Run())
	assert.True(t, w.closed)
}

func TestEngineDrawErrorStopsRun(t *testing.T) {
	f := newFixture(t)
	f.window.maxFrames = 5

	// every mesh is a child, so there is no root
	f.scene.SetModel(model.NewModel(
		model.WithName("cycle"),
		model.WithMeshes([]model.ResolvedMesh{triangle("a", 1), triangle("b", 0)}),
	))

	err := f.engine.Run()
	require.Error(t, err)
	var cyclic *scene.CyclicGraphError
	assert.ErrorAs(t, err, &cyclic)
	assert.Equal(t, 1, f.renderer.frames)
	assert.True(t, f.window.closed)
}

func TestEngineResize(t *testing.T) {
	f := newFixture(t)

	f.window.onResize(800, 400)
	f.window.onResize(0, 0)

	assert.Equal(t, [][2]int{{800, 400}}, f.renderer.resizes)
	assert.InDelta(t, 2.0, f.scene.Camera().Aspect(), 1e-6)
}

func TestSetRenderFrameLimit(t *testing.T) {
	f := newFixture(t, WithRenderFrameLimit(50))
	assert.Equal(t, int64(20_000_000), f.engine.renderFrameLimit.Nanoseconds())

	f.engine.SetRenderFrameLimit(0)
	assert.Zero(t, f.engine.renderFrameLimit)
}
