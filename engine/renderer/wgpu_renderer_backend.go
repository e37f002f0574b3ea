package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/beagle-go/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/flat_shaded.wgsl
var flatShadedSource string

//go:embed assets/debug_normals.wgsl
var debugNormalsSource string

var (
	errNoFrame           = errors.New("no frame in progress")
	errFrameInProgress   = errors.New("previous frame surface not yet presented")
	errSlotOutOfRange    = errors.New("uniform slot out of range")
	errNoSurfaceFormats  = errors.New("surface reports no supported formats")
	errMeshNotUploaded   = errors.New("mesh not uploaded")
	errConstantsTooLarge = errors.New("draw constants exceed uniform slot size")
)

// gpuMesh holds the device buffers of one uploaded mesh. Either buffer may be nil when the mesh
// has no vertices or no debug lines were built.
type gpuMesh struct {
	vertexBuffer *wgpu.Buffer
	vertexCount  uint32
	lineBuffer   *wgpu.Buffer
	lineCount    uint32
}

func (m *gpuMesh) release() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Release()
		m.vertexBuffer = nil
	}
	if m.lineBuffer != nil {
		m.lineBuffer.Release()
		m.lineBuffer = nil
	}
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	alphaMode            wgpu.CompositeAlphaMode
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	shadedPipeline  *wgpu.RenderPipeline
	normalsPipeline *wgpu.RenderPipeline
	uniformLayout   *wgpu.BindGroupLayout

	// Per-draw constants live in one uniform buffer of uniformSlots slots, each uniformStride
	// bytes apart, selected with a dynamic offset.
	uniformBuffer    *wgpu.Buffer
	uniformBindGroup *wgpu.BindGroup
	uniformStride    uint64
	uniformSlots     int

	meshes []gpuMesh

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	// A zero width or height (minimized window) is ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the MSAA or depth targets could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color the main render pass clears to.
	//
	// Parameters:
	//   - c: the RGBA clear color
	SetClearColor(c wgpu.Color)

	// UploadMeshes replaces every uploaded mesh with the given payloads and resizes the uniform
	// buffer to hold slots per-draw constant blocks.
	//
	// Parameters:
	//   - meshes: the vertex payloads, indexed like the model's meshes
	//   - slots: the number of draws per frame
	//
	// Returns:
	//   - error: an error if a buffer or bind group could not be created
	UploadMeshes(meshes []meshData, slots int) error

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Must be paired with EndFrame after all DrawMesh invocations.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawMesh writes constants into uniform slot and encodes the shaded draw of mesh, followed by
	// its normal lines when normals is set.
	//
	// Parameters:
	//   - slot: the uniform slot reserved for this draw
	//   - constants: the marshaled per-draw constant block
	//   - mesh: the index of the uploaded mesh
	//   - normals: whether to also draw the debug normal lines
	//
	// Returns:
	//   - error: an error if no frame is in progress or the slot or mesh is unknown
	DrawMesh(slot int, constants []byte, mesh int, normals bool) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// Release frees every GPU object owned by the backend.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the instance, surface, adapter and device, then builds both
// render pipelines against the surface's preferred format.
//
// Parameters:
//   - surfaceDescriptor: the platform surface of the target window
//   - forceFallbackAdapter: request a software adapter instead of hardware
//   - sampleCount: the MSAA sample count of the main pass
//
// Returns:
//   - wgpuRendererBackend: the initialized backend
//   - error: an error if any device object could not be created
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		clearColor:  wgpu.Color{R: 0.45, G: 0.6, B: 0.95, A: 1.0},
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		b.Release()
		return nil, errNoSurfaceFormats
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.alphaMode = wgpu.CompositeAlphaModeAuto
	if len(capabilities.AlphaModes) > 0 {
		b.alphaMode = capabilities.AlphaModes[0]
	}

	alignment := uint64(device.GetLimits().Limits.MinUniformBufferOffsetAlignment)
	if alignment == 0 {
		alignment = defaultUniformAlignment
	}
	b.uniformStride = alignUp(model.DrawConstantsSize, alignment)

	if err := b.createPipelines(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// createPipelines builds the uniform bind group layout and both render pipelines.
func (b *wgpuRendererBackendImpl) createPipelines() error {
	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Draw Constants Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    drawConstantsBinding,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   model.DrawConstantsSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}
	b.uniformLayout = layout

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Draw Constants Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	b.shadedPipeline, err = b.createRenderPipeline("Flat Shaded", flatShadedSource, pipelineLayout,
		wgpu.PrimitiveTopologyTriangleList,
		wgpu.VertexBufferLayout{
			ArrayStride: shadedVertexStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			},
		})
	if err != nil {
		return err
	}

	b.normalsPipeline, err = b.createRenderPipeline("Debug Normals", debugNormalsSource, pipelineLayout,
		wgpu.PrimitiveTopologyLineList,
		wgpu.VertexBufferLayout{
			ArrayStride: lineVertexStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		})
	return err
}

// createRenderPipeline compiles one annotated WGSL module and creates a depth-tested render
// pipeline from its vs_main and fs_main entry points.
func (b *wgpuRendererBackendImpl) createRenderPipeline(
	label, source string,
	layout *wgpu.PipelineLayout,
	topology wgpu.PrimitiveTopology,
	vertexLayout wgpu.VertexBufferLayout,
) (*wgpu.RenderPipeline, error) {
	code, err := prepareShader(label, source)
	if err != nil {
		return nil, err
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s shader: %w", label, err)
	}
	defer module.Release()

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s pipeline: %w", label, err)
	}
	return created, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		tex, view, err := b.createTarget("MSAA Texture", width, height, b.surfaceFormat)
		if err != nil {
			return err
		}
		b.msaaTexture, b.msaaTextureView = tex, view
	}

	// Depth texture sample count must match the color attachment.
	tex, view, err := b.createTarget("Depth Texture", width, height, wgpu.TextureFormatDepth24Plus)
	if err != nil {
		return err
	}
	b.depthTexture, b.depthTextureView = tex, view

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

// createTarget creates a single-mip render attachment with the backend's sample count.
func (b *wgpuRendererBackendImpl) createTarget(label string, width, height int, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   uint32(b.sampleCount),
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("failed to create %s view: %w", label, err)
	}
	return tex, view, nil
}

// releaseTargets frees the MSAA and depth attachments. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) SetClearColor(c wgpu.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearColor = c
	if b.renderPassDescriptor != nil {
		b.renderPassDescriptor.ColorAttachments[0].ClearValue = c
	}
}

func (b *wgpuRendererBackendImpl) UploadMeshes(meshes []meshData, slots int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	uploaded := make([]gpuMesh, len(meshes))
	fail := func(err error) error {
		for i := range uploaded {
			uploaded[i].release()
		}
		return err
	}

	for i, m := range meshes {
		if len(m.vertices) > 0 {
			buf, err := b.createVertexBuffer(m.label+" Vertex Buffer", m.vertices)
			if err != nil {
				return fail(err)
			}
			uploaded[i].vertexBuffer = buf
			uploaded[i].vertexCount = uint32(m.vertexCount)
		}
		if len(m.lines) > 0 {
			buf, err := b.createVertexBuffer(m.label+" Normal Lines", m.lines)
			if err != nil {
				return fail(err)
			}
			uploaded[i].lineBuffer = buf
			uploaded[i].lineCount = uint32(m.lineCount)
		}
	}

	if slots < 1 {
		slots = 1
	}
	if slots > b.uniformSlots {
		if err := b.resizeUniforms(slots); err != nil {
			return fail(err)
		}
	}

	for i := range b.meshes {
		b.meshes[i].release()
	}
	b.meshes = uploaded
	return nil
}

// createVertexBuffer creates a vertex buffer and queues data into it. Caller holds b.mu.
func (b *wgpuRendererBackendImpl) createVertexBuffer(label string, data []byte) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	if err := b.queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, fmt.Errorf("failed to write %s: %w", label, err)
	}
	return buf, nil
}

// resizeUniforms replaces the uniform buffer and its bind group with room for slots draws.
// Caller holds b.mu.
func (b *wgpuRendererBackendImpl) resizeUniforms(slots int) error {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Draw Constants Buffer",
		Size:  b.uniformStride * uint64(slots),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create uniform buffer: %w", err)
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Draw Constants Bind Group",
		Layout: b.uniformLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: drawConstantsBinding,
				Buffer:  buf,
				Offset:  0,
				Size:    model.DrawConstantsSize,
			},
		},
	})
	if err != nil {
		buf.Release()
		return fmt.Errorf("failed to create uniform bind group: %w", err)
	}

	if b.uniformBindGroup != nil {
		b.uniformBindGroup.Release()
	}
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
	}
	b.uniformBuffer = buf
	b.uniformBindGroup = bindGroup
	b.uniformSlots = slots
	return nil
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return errFrameInProgress
	}
	if b.renderPassDescriptor == nil {
		return errors.New("surface not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	// With MSAA the swapchain view is the resolve target, otherwise it is drawn into directly.
	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) DrawMesh(slot int, constants []byte, mesh int, normals bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return errNoFrame
	}
	if slot < 0 || slot >= b.uniformSlots {
		return fmt.Errorf("%w: %d of %d", errSlotOutOfRange, slot, b.uniformSlots)
	}
	if mesh < 0 || mesh >= len(b.meshes) {
		return fmt.Errorf("%w: %d", errMeshNotUploaded, mesh)
	}
	if uint64(len(constants)) > b.uniformStride {
		return errConstantsTooLarge
	}

	offset := uint64(slot) * b.uniformStride
	if err := b.queue.WriteBuffer(b.uniformBuffer, offset, constants); err != nil {
		return fmt.Errorf("failed to write draw constants: %w", err)
	}

	gm := b.meshes[mesh]
	dynamicOffsets := []uint32{uint32(offset)}

	if gm.vertexBuffer != nil && gm.vertexCount > 0 {
		b.framePass.SetPipeline(b.shadedPipeline)
		b.framePass.SetBindGroup(drawConstantsGroup, b.uniformBindGroup, dynamicOffsets)
		b.framePass.SetVertexBuffer(0, gm.vertexBuffer, 0, wgpu.WholeSize)
		b.framePass.Draw(gm.vertexCount, 1, 0, 0)
	}

	if normals && gm.lineBuffer != nil && gm.lineCount > 0 {
		b.framePass.SetPipeline(b.normalsPipeline)
		b.framePass.SetBindGroup(drawConstantsGroup, b.uniformBindGroup, dynamicOffsets)
		b.framePass.SetVertexBuffer(0, gm.lineBuffer, 0, wgpu.WholeSize)
		b.framePass.Draw(gm.lineCount, 1, 0, 0)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.meshes {
		b.meshes[i].release()
	}
	b.meshes = nil
	b.releaseTargets()

	if b.uniformBindGroup != nil {
		b.uniformBindGroup.Release()
		b.uniformBindGroup = nil
	}
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
		b.uniformBuffer = nil
	}
	if b.uniformLayout != nil {
		b.uniformLayout.Release()
		b.uniformLayout = nil
	}
	if b.shadedPipeline != nil {
		b.shadedPipeline.Release()
		b.shadedPipeline = nil
	}
	if b.normalsPipeline != nil {
		b.normalsPipeline.Release()
		b.normalsPipeline = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
