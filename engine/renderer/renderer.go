package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/beagle-go/common"
	"github.com/Carmen-Shannon/beagle-go/engine/model"
	"github.com/Carmen-Shannon/beagle-go/engine/scene"
	"github.com/Carmen-Shannon/beagle-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultNormalLength is the drawn length of debug normals when no other length is configured.
const DefaultNormalLength float32 = 0.1

var (
	errNoModel = errors.New("no model uploaded")
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	model         model.Model
	normalLength  float32
	slots         int
	drawCount     int
	lastDrawCount int
	inFrame       bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *common.Vector4
}

// Renderer draws resolved models to a window surface. It is the graphics device behind a scene:
// each frame is BeginFrame, one Draw per traversal draw call, EndFrame and Present.
//
// Draw uses one uniform slot per call, so a frame holds at most as many draws as one traversal of
// the uploaded model emits.
type Renderer interface {
	scene.DrawSink

	// SetModel uploads the vertex data of every mesh in m and sizes the per-draw uniform slots for
	// one traversal of it. The previous model stays active if the upload fails.
	//
	// Parameters:
	//   - m: the model to upload
	//
	// Returns:
	//   - error: the traversal error if m has a cyclic or malformed graph, or a device error
	SetModel(m model.Model) error

	// Model returns the uploaded model, or nil before the first SetModel.
	//
	// Returns:
	//   - model.Model: the uploaded model
	Model() model.Model

	// Resize reconfigures the surface for the new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: error if the render targets could not be recreated
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color each frame starts from.
	//
	// Parameters:
	//   - c: the RGBA clear color
	SetClearColor(c common.Vector4)

	// BeginFrame acquires the next surface texture and starts the main render pass.
	//
	// Returns:
	//   - error: error if the surface texture could not be acquired
	BeginFrame() error

	// EndFrame ends the render pass and submits the recorded draws.
	EndFrame()

	// Present displays the submitted frame.
	Present()

	// DrawCount returns the number of draws recorded in the last completed frame.
	//
	// Returns:
	//   - int: the draw count
	DrawCount() int

	// Release frees every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer on the surface of the given window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - w: the window whose surface the renderer presents to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: error if the device or pipelines could not be created
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:           &sync.Mutex{},
		backendType:  backendType,
		normalLength: DefaultNormalLength,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}
	if err != nil {
		return nil, err
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(toColor(*r.pendingClearColor))
	}

	if err := r.backend.ConfigureSurface(w.Width(), w.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) SetModel(m model.Model) error {
	draws, err := countDraws(m)
	if err != nil {
		return err
	}
	meshes, err := buildMeshData(m, r.normalLength)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.UploadMeshes(meshes, draws); err != nil {
		return fmt.Errorf("upload %q: %w", m.Name(), err)
	}
	r.model = m
	r.slots = max(draws, r.slots)
	log.Printf("[Renderer] uploaded %q: %d meshes, %d draws per frame", m.Name(), len(meshes), draws)
	return nil
}

func (r *renderer) Model() model.Model {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.model
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c common.Vector4) {
	r.backend.SetClearColor(toColor(c))
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.inFrame = true
	r.drawCount = 0
	return nil
}

// Draw records one mesh draw into the current frame.
//
// Parameters:
//   - call: the draw produced by scene traversal
//
// Returns:
//   - error: error if no frame is in progress, no model is uploaded, or the uniform slots are exhausted
func (r *renderer) Draw(call scene.DrawCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inFrame {
		return errNoFrame
	}
	if r.model == nil {
		return errNoModel
	}

	mesh := call.Mesh
	if mesh == nil {
		mesh = r.model.Mesh(call.Index)
	}
	if mesh == nil {
		return fmt.Errorf("%w: %d", errMeshNotUploaded, call.Index)
	}
	if r.drawCount >= r.slots {
		return fmt.Errorf("%w: draw %d with %d slots", errSlotOutOfRange, r.drawCount, r.slots)
	}

	constants := model.NewDrawConstants(call.WorldViewProjection, call.Model, call.CameraPosition, mesh.Material)
	if err := r.backend.DrawMesh(r.drawCount, constants.Marshal(), call.Index, call.DebugNormals); err != nil {
		return err
	}
	r.drawCount++
	return nil
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.backend.EndFrame()
	r.inFrame = false
	r.lastDrawCount = r.drawCount
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) DrawCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastDrawCount
}

func (r *renderer) Release() {
	r.backend.Release()
}

// toColor converts an RGBA vector to the device clear color.
func toColor(c common.Vector4) wgpu.Color {
	return wgpu.Color{R: float64(c.X), G: float64(c.Y), B: float64(c.Z), A: float64(c.W)}
}
